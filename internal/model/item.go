package model

import "time"

// Item is a thing a user offers for booking.
type Item struct {
	ID          int64  `gorm:"primaryKey"`
	OwnerID     int64  `gorm:"index;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:1000;not null"`
	Available   bool   `gorm:"column:is_available;not null"`
	RequestID   *int64 `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Associations
	Owner   User         `gorm:"constraint:OnDelete:CASCADE"`
	Request *ItemRequest `gorm:"constraint:OnDelete:SET NULL"`
}
