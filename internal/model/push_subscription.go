package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Subscribers follow individual drivers and are notified when a driver's
// assignment changes.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Drivers []*Driver `gorm:"many2many:subscription_driver_mapping;"`
}
