package model

import "time"

// Product represents a sellable product. Prices are stored in cents.
type Product struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null;index" json:"name"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
