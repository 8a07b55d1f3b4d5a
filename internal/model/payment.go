package model

import "time"

// Payment represents one payroll payment to a driver for a pay period.
// Amount is stored in cents.
type Payment struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	DriverID    string     `gorm:"size:36;not null;index" json:"driver_id"`
	DriverName  string     `gorm:"size:128;not null" json:"driver_name"`
	PeriodStart time.Time  `gorm:"not null;index" json:"period_start"`
	PeriodEnd   time.Time  `gorm:"not null" json:"period_end"`
	Amount      int64      `gorm:"not null" json:"amount"`
	Paid        bool       `gorm:"not null;default:false" json:"paid"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
