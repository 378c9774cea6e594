package model

import "time"

// BookingStatus is the persisted lifecycle state of a booking.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// bookingTransitions is the booking state machine. Decided bookings are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusWaiting:  {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := bookingTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking is a reservation of an item by a booker for [StartTime, EndTime].
// Times are timezone-naive with second precision.
type Booking struct {
	ID        int64         `gorm:"primaryKey"`
	ItemID    int64         `gorm:"not null;index;index:idx_bookings_item_status_start,priority:1"`
	BookerID  int64         `gorm:"not null;index"`
	StartTime time.Time     `gorm:"type:timestamp;not null;index:idx_bookings_item_status_start,priority:3"`
	EndTime   time.Time     `gorm:"type:timestamp;not null;check:chk_bookings_period,start_time < end_time"`
	Status    BookingStatus `gorm:"size:16;not null;index:idx_bookings_item_status_start,priority:2"`

	// Associations. Loaded only through explicit Preload calls.
	Item   Item `gorm:"constraint:OnDelete:CASCADE"`
	Booker User `gorm:"foreignKey:BookerID;constraint:OnDelete:CASCADE"`
}
