package model

import "time"

// ScheduleEntry assigns one driver to one location for one calendar day.
// Date is stored at UTC midnight; one entry exists per (driver, date).
// DriverName and LocationName are snapshots taken at generation time and
// are not kept in sync with later renames.
type ScheduleEntry struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	DriverID     string    `gorm:"size:36;not null;index:idx_schedule_driver_date,unique" json:"driver_id"`
	DriverName   string    `gorm:"size:128;not null" json:"driver_name"`
	Date         time.Time `gorm:"not null;index:idx_schedule_driver_date,unique;index" json:"date"`
	LocationID   string    `gorm:"size:36;not null" json:"location_id"`
	LocationName string    `gorm:"size:128;not null" json:"location_name"`
	CreatedAt    time.Time `json:"created_at"`
}
