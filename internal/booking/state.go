package booking

import (
	"strings"
	"time"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/model"
)

// State is a query-time classification of bookings relative to "now". It is never stored.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts a query parameter into a State. An empty value means ALL.
func ParseState(raw string) (State, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := filters[s]; !ok {
		return "", apperror.Validation("Unknown state: %s", raw)
	}
	return s, nil
}

// Filter is the predicate of a State. Match and Where express the same condition, once for
// bookings held in memory and once for the store's SQL query.
type Filter struct {
	// Match reports whether b belongs to the state at now.
	Match func(b model.Booking, now time.Time) bool
	// Where returns the SQL condition over the bookings table and its arguments.
	// An empty condition selects every row.
	Where func(now time.Time) (string, []any)
}

// CURRENT/PAST/FUTURE ignore status; WAITING/REJECTED ignore timing. The filters may overlap.
var filters = map[State]Filter{
	StateAll: {
		Match: func(model.Booking, time.Time) bool { return true },
		Where: func(time.Time) (string, []any) { return "", nil },
	},
	StateCurrent: {
		Match: func(b model.Booking, now time.Time) bool {
			return !b.StartTime.After(now) && !b.EndTime.Before(now)
		},
		Where: func(now time.Time) (string, []any) {
			return "bookings.start_time <= ? AND bookings.end_time >= ?", []any{now, now}
		},
	},
	StatePast: {
		Match: func(b model.Booking, now time.Time) bool { return b.EndTime.Before(now) },
		Where: func(now time.Time) (string, []any) {
			return "bookings.end_time < ?", []any{now}
		},
	},
	StateFuture: {
		Match: func(b model.Booking, now time.Time) bool { return b.StartTime.After(now) },
		Where: func(now time.Time) (string, []any) {
			return "bookings.start_time > ?", []any{now}
		},
	},
	StateWaiting: {
		Match: func(b model.Booking, _ time.Time) bool { return b.Status == model.StatusWaiting },
		Where: func(time.Time) (string, []any) {
			return "bookings.status = ?", []any{string(model.StatusWaiting)}
		},
	},
	StateRejected: {
		Match: func(b model.Booking, _ time.Time) bool { return b.Status == model.StatusRejected },
		Where: func(time.Time) (string, []any) {
			return "bookings.status = ?", []any{string(model.StatusRejected)}
		},
	},
}

// Filter returns the predicate for s. Unknown states select nothing.
func (s State) Filter() Filter {
	if f, ok := filters[s]; ok {
		return f
	}
	return Filter{
		Match: func(model.Booking, time.Time) bool { return false },
		Where: func(time.Time) (string, []any) { return "1 = 0", nil },
	}
}

// Matches reports whether b belongs to s at now.
func (s State) Matches(b model.Booking, now time.Time) bool {
	return s.Filter().Match(b, now)
}

// ListOrder is the ordering of every booking listing: newest start first.
const ListOrder = "bookings.start_time DESC, bookings.id DESC"

// ListBefore reports whether a sorts before b under ListOrder.
func ListBefore(a, b model.Booking) bool {
	if !a.StartTime.Equal(b.StartTime) {
		return a.StartTime.After(b.StartTime)
	}
	return a.ID > b.ID
}
