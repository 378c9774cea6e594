package booking

import (
	"time"

	"shareit-backend/internal/model"
)

// Window selects approved bookings of an item around "now" and orders them so the
// first candidate is the winner.
type Window struct {
	Match func(b model.Booking, now time.Time) bool
	Where func(now time.Time) (string, []any)
	// Order is the SQL ordering; Before is the same ordering in memory.
	Order  string
	Before func(a, b model.Booking) bool
}

// LastApproved picks the approved booking with the greatest start at or before now.
var LastApproved = Window{
	Match: func(b model.Booking, now time.Time) bool {
		return b.Status == model.StatusApproved && !b.StartTime.After(now)
	},
	Where: func(now time.Time) (string, []any) {
		return "bookings.status = ? AND bookings.start_time <= ?", []any{string(model.StatusApproved), now}
	},
	Order: "bookings.start_time DESC, bookings.id DESC",
	Before: func(a, b model.Booking) bool {
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.After(b.StartTime)
		}
		return a.ID > b.ID
	},
}

// NextApproved picks the approved booking with the smallest start after now.
var NextApproved = Window{
	Match: func(b model.Booking, now time.Time) bool {
		return b.Status == model.StatusApproved && b.StartTime.After(now)
	},
	Where: func(now time.Time) (string, []any) {
		return "bookings.status = ? AND bookings.start_time > ?", []any{string(model.StatusApproved), now}
	},
	Order: "bookings.start_time ASC, bookings.id DESC",
	Before: func(a, b model.Booking) bool {
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID > b.ID
	},
}

// FinishedApproved selects approved bookings that ended before now. It gates comments.
var FinishedApproved = Window{
	Match: func(b model.Booking, now time.Time) bool {
		return b.Status == model.StatusApproved && b.EndTime.Before(now)
	},
	Where: func(now time.Time) (string, []any) {
		return "bookings.status = ? AND bookings.end_time < ?", []any{string(model.StatusApproved), now}
	},
	Order: "bookings.end_time DESC, bookings.id DESC",
	Before: func(a, b model.Booking) bool {
		if !a.EndTime.Equal(b.EndTime) {
			return a.EndTime.After(b.EndTime)
		}
		return a.ID > b.ID
	},
}

// Pick returns the winning booking among candidates, or nil when none qualifies.
func (w Window) Pick(candidates []model.Booking, now time.Time) *model.Booking {
	var best *model.Booking
	for i := range candidates {
		b := candidates[i]
		if !w.Match(b, now) {
			continue
		}
		if best == nil || w.Before(b, *best) {
			best = &b
		}
	}
	return best
}

// FirstPerItem keeps the first booking seen for each item. The input must already be
// ordered by item and then by the window's order.
func FirstPerItem(ordered []model.Booking) map[int64]model.Booking {
	byItem := make(map[int64]model.Booking)
	for _, b := range ordered {
		if _, seen := byItem[b.ItemID]; !seen {
			byItem[b.ItemID] = b
		}
	}
	return byItem
}
