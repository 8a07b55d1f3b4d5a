package model

import "time"

// Sale represents one recorded sale. DriverName and ProductName are
// denormalized snapshots taken at record time.
type Sale struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	DriverID    string    `gorm:"size:36;not null;index" json:"driver_id"`
	DriverName  string    `gorm:"size:128;not null" json:"driver_name"`
	ProductID   string    `gorm:"size:36;not null;index" json:"product_id"`
	ProductName string    `gorm:"size:128;not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Total       int64     `gorm:"not null" json:"total"` // cents
	SoldAt      time.Time `gorm:"not null;index" json:"sold_at"`
	CreatedAt   time.Time `json:"created_at"`
}
