package model

import "time"

// Location categories. Only rotation locations are part of the daily
// rotation pool; fixed locations are contact/base addresses.
const (
	CategoryRotation = "rotation"
	CategoryFixed    = "fixed"
)

// Location represents a delivery location.
type Location struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null;index" json:"name"`
	Category  string    `gorm:"size:16;not null;default:fixed" json:"category"`
	Address   string    `gorm:"size:256" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
