package booking

import (
	"time"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/model"
)

// ValidateCreation checks whether bookerID may book item for [start, end].
// A zero time counts as absent.
func ValidateCreation(item model.Item, bookerID int64, start, end time.Time) error {
	if item.OwnerID == bookerID {
		// An owner's own item is reported as not bookable rather than forbidden.
		return apperror.NotFound("Owner cannot book own item")
	}
	if !item.Available {
		return apperror.Validation("Item %d is unavailable", item.ID)
	}
	if start.IsZero() || end.IsZero() {
		return apperror.Validation("Start/end must be provided")
	}
	if !start.Before(end) {
		return apperror.Validation("Start must be before end")
	}
	return nil
}

// ValidateApproval checks whether requesterID may decide b. item is the booked item.
// Decided bookings are terminal, so a repeated decision fails instead of being a no-op.
func ValidateApproval(b model.Booking, item model.Item, requesterID int64) error {
	if item.OwnerID != requesterID {
		return apperror.Forbidden("Only item owner can approve or reject booking %d", b.ID)
	}
	if b.Status.IsTerminal() {
		return apperror.Validation("Booking status must be WAITING but was: %s", b.Status)
	}
	return nil
}

// ValidateAccess checks whether requesterID may see b. Unrelated users get NotFound.
func ValidateAccess(b model.Booking, item model.Item, requesterID int64) error {
	if requesterID != item.OwnerID && requesterID != b.BookerID {
		return apperror.NotFound("Booking %d not accessible for user %d", b.ID, requesterID)
	}
	return nil
}

// decide returns the status a waiting booking moves to.
func decide(approve bool) model.BookingStatus {
	if approve {
		return model.StatusApproved
	}
	return model.StatusRejected
}
