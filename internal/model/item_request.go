package model

import "time"

// ItemRequest is a user's description of an item they would like someone to offer.
// Items created in answer to it carry its id.
type ItemRequest struct {
	ID          int64     `gorm:"primaryKey"`
	Description string    `gorm:"size:1000;not null"`
	RequestorID int64     `gorm:"index;not null"`
	Created     time.Time `gorm:"type:timestamp;not null;index"`

	// Associations
	Requestor User `gorm:"constraint:OnDelete:CASCADE"`
}
