package model

import "time"

// User is a marketplace account. Only its existence matters to bookings.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:512;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"-"`
}
