package model

import "time"

// Setting is the single-row application settings table. Schedule
// generation falls back to RotationInterval and ExcludedWeekdays when
// the request leaves them unset; ExcludedWeekdays is a comma-separated
// list of weekday numbers (0 = Sunday .. 6 = Saturday).
type Setting struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyName      string    `gorm:"size:128" json:"company_name"`
	CurrencyCode     string    `gorm:"size:8;not null;default:USD" json:"currency_code"`
	RotationInterval int       `gorm:"not null;default:1" json:"rotation_interval"`
	ExcludedWeekdays string    `gorm:"size:32" json:"excluded_weekdays"`
	Timezone         string    `gorm:"size:64" json:"timezone"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
