package model

import "time"

// Comment is feedback left on an item by a user who has finished a booking of it.
type Comment struct {
	ID       int64     `gorm:"primaryKey"`
	Text     string    `gorm:"size:2000;not null"`
	ItemID   int64     `gorm:"index;not null"`
	AuthorID int64     `gorm:"index;not null"`
	Created  time.Time `gorm:"type:timestamp;not null"`

	// Associations
	Item   Item `gorm:"constraint:OnDelete:CASCADE"`
	Author User `gorm:"constraint:OnDelete:CASCADE"`
}
