package booking

import (
	"context"
	"fmt"
	"time"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/clock"
	"shareit-backend/internal/model"
)

// Store defines the persistence operations on bookings.
type Store interface {
	// Save inserts b when b.ID is zero and updates it otherwise. No validation is performed.
	Save(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id int64) (model.Booking, error)
	// FindByIDForUpdate is FindByID holding a row lock until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (model.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time) ([]model.Booking, error)
	ExistsFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
	FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindLastApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]model.Booking, error)
	FindNextApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]model.Booking, error)
	// Transaction runs fn against a Store bound to a single database transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// ItemDirectory resolves items. Missing items yield an apperror NotFound.
type ItemDirectory interface {
	GetItem(ctx context.Context, id int64) (model.Item, error)
}

// UserDirectory resolves users. Missing users yield an apperror NotFound from GetUser.
type UserDirectory interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
}

// Service implements the booking lifecycle. It holds no mutable state; concurrent
// decisions on one booking are serialized by the store's transaction.
type Service struct {
	store Store
	items ItemDirectory
	users UserDirectory
	clock clock.Clock
}

// NewService creates a new booking service.
func NewService(store Store, items ItemDirectory, users UserDirectory, clk clock.Clock) *Service {
	return &Service{
		store: store,
		items: items,
		users: users,
		clock: clk,
	}
}

// CreateBooking books itemID for bookerID. The new booking starts WAITING.
func (s *Service) CreateBooking(ctx context.Context, start, end time.Time, itemID, bookerID int64) (model.Booking, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return model.Booking{}, err
	}
	booker, err := s.users.GetUser(ctx, bookerID)
	if err != nil {
		return model.Booking{}, err
	}

	if err := ValidateCreation(item, bookerID, start, end); err != nil {
		return model.Booking{}, err
	}

	b := model.Booking{
		ItemID:    item.ID,
		BookerID:  booker.ID,
		StartTime: start,
		EndTime:   end,
		Status:    model.StatusWaiting,
	}
	if err := s.store.Save(ctx, &b); err != nil {
		return model.Booking{}, fmt.Errorf("failed to save booking: %w", err)
	}

	b.Item = item
	b.Booker = booker
	return b, nil
}

// DecideBooking approves or rejects a waiting booking on behalf of the item owner.
// Load, validation and write happen in one transaction with the booking row locked.
func (s *Service) DecideBooking(ctx context.Context, bookingID, requesterID int64, approve bool) (model.Booking, error) {
	var decided model.Booking
	err := s.store.Transaction(ctx, func(tx Store) error {
		b, err := tx.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		item, err := s.items.GetItem(ctx, b.ItemID)
		if err != nil {
			return err
		}

		if err := ValidateApproval(b, item, requesterID); err != nil {
			return err
		}

		b.Status = decide(approve)
		if err := tx.Save(ctx, &b); err != nil {
			return fmt.Errorf("failed to save booking %d: %w", b.ID, err)
		}

		b.Item = item
		decided = b
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return decided, nil
}

// GetBooking returns a booking visible to requesterID (its booker or the item owner).
func (s *Service) GetBooking(ctx context.Context, bookingID, requesterID int64) (model.Booking, error) {
	if err := s.ensureUser(ctx, requesterID); err != nil {
		return model.Booking{}, err
	}
	b, err := s.store.FindByID(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	item, err := s.items.GetItem(ctx, b.ItemID)
	if err != nil {
		return model.Booking{}, err
	}

	if err := ValidateAccess(b, item, requesterID); err != nil {
		return model.Booking{}, err
	}

	b.Item = item
	return b, nil
}

// ListForBooker returns the bookings made by userID that fall in state, newest start first.
func (s *Service) ListForBooker(ctx context.Context, userID int64, state State) ([]model.Booking, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListByBooker(ctx, userID, state, s.clock.Now())
}

// ListForOwner returns the bookings of items owned by userID that fall in state, newest start first.
func (s *Service) ListForOwner(ctx context.Context, userID int64, state State) ([]model.Booking, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListByOwner(ctx, userID, state, s.clock.Now())
}

func (s *Service) ensureUser(ctx context.Context, userID int64) error {
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	if !exists {
		return apperror.NotFound("User not found: %d", userID)
	}
	return nil
}
