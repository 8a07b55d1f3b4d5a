package model

import "time"

// Driver classifications. Only dedicated drivers take part in the
// rotating schedule.
const (
	ClassDedicated = "dedicated"
	ClassContract  = "contract"
)

// Driver represents a delivery driver.
type Driver struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Name           string    `gorm:"size:128;not null;index" json:"name"`
	Classification string    `gorm:"size:16;not null;default:contract" json:"classification"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	Phone          string    `gorm:"size:32" json:"phone"`
	HomeLocationID string    `gorm:"size:36" json:"home_location_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Rotates reports whether the driver participates in schedule rotation.
func (d Driver) Rotates() bool {
	return d.Active && d.Classification == ClassDedicated
}
