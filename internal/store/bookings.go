package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shareit-backend/internal/booking"
	"shareit-backend/internal/model"
)

// Save inserts or updates the booking row. Associations are never written.
func (s *gormStore) Save(ctx context.Context, b *model.Booking) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (s *gormStore) FindByID(ctx context.Context, id int64) (model.Booking, error) {
	var b model.Booking
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return model.Booking{}, notFound(err, "Booking not found: %d", id)
	}
	return b, nil
}

// FindByIDForUpdate locks the booking row with SELECT ... FOR UPDATE.
// It only serializes writers when called inside Transaction.
func (s *gormStore) FindByIDForUpdate(ctx context.Context, id int64) (model.Booking, error) {
	var b model.Booking
	if err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return model.Booking{}, notFound(err, "Booking not found: %d", id)
	}
	return b, nil
}

func (s *gormStore) ListByBooker(ctx context.Context, bookerID int64, state booking.State, now time.Time) ([]model.Booking, error) {
	q := s.db.WithContext(ctx).Where("bookings.booker_id = ?", bookerID)
	return s.list(q, state, now)
}

func (s *gormStore) ListByOwner(ctx context.Context, ownerID int64, state booking.State, now time.Time) ([]model.Booking, error) {
	q := s.db.WithContext(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return s.list(q, state, now)
}

// list applies the state filter and the listing order in one query.
func (s *gormStore) list(q *gorm.DB, state booking.State, now time.Time) ([]model.Booking, error) {
	cond, args := state.Filter().Where(now)
	var bookings []model.Booking
	if err := where(q, cond, args).
		Preload("Item").
		Order(booking.ListOrder).
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s bookings: %w", state, err)
	}
	return bookings, nil
}

func (s *gormStore) ExistsFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	cond, args := booking.FinishedApproved.Where(now)
	var count int64
	if err := where(s.db.WithContext(ctx).Model(&model.Booking{}), cond, args).
		Where("bookings.item_id = ? AND bookings.booker_id = ?", itemID, bookerID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check finished bookings of item %d: %w", itemID, err)
	}
	return count > 0, nil
}

func (s *gormStore) FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return s.findFirst(ctx, booking.LastApproved, itemID, now)
}

func (s *gormStore) FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return s.findFirst(ctx, booking.NextApproved, itemID, now)
}

func (s *gormStore) findFirst(ctx context.Context, w booking.Window, itemID int64, now time.Time) (*model.Booking, error) {
	cond, args := w.Where(now)
	var found []model.Booking
	if err := where(s.db.WithContext(ctx), cond, args).
		Where("bookings.item_id = ?", itemID).
		Order(w.Order).
		Limit(1).
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to find approved booking of item %d: %w", itemID, err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (s *gormStore) FindLastApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]model.Booking, error) {
	return s.findFirstPerItem(ctx, booking.LastApproved, itemIDs, now)
}

func (s *gormStore) FindNextApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]model.Booking, error) {
	return s.findFirstPerItem(ctx, booking.NextApproved, itemIDs, now)
}

// findFirstPerItem loads every candidate of the window for the items in one query,
// ordered by item and then by the window, and keeps the first row per item.
func (s *gormStore) findFirstPerItem(ctx context.Context, w booking.Window, itemIDs []int64, now time.Time) (map[int64]model.Booking, error) {
	if len(itemIDs) == 0 {
		return map[int64]model.Booking{}, nil
	}
	cond, args := w.Where(now)
	var candidates []model.Booking
	if err := where(s.db.WithContext(ctx), cond, args).
		Where("bookings.item_id IN ?", itemIDs).
		Order("bookings.item_id ASC, " + w.Order).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find approved bookings of %d items: %w", len(itemIDs), err)
	}
	return booking.FirstPerItem(candidates), nil
}
