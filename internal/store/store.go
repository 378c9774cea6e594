package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/booking"
	"shareit-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	booking.Store

	// Directories
	GetItem(ctx context.Context, id int64) (model.Item, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	GetUser(ctx context.Context, id int64) (model.User, error)

	CreateUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateItem(ctx context.Context, it *model.Item) error
	UpdateItem(ctx context.Context, id int64, patch ItemPatch) (model.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	SearchItems(ctx context.Context, text string) ([]model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ListItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]model.Item, error)

	CreateRequest(ctx context.Context, r *model.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (model.ItemRequest, error)
	ListRequestsByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListOtherRequests(ctx context.Context, userID int64, offset, limit int) ([]model.ItemRequest, error)

	CreateComment(ctx context.Context, c *model.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
	ListCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Comment, error)

	UpsertPushSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
	ListPushSubscriptionsByUser(ctx context.Context, userID int64) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Transaction runs fn with a store bound to one database transaction.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx booking.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// notFound turns gorm.ErrRecordNotFound into a NotFound domain error and wraps anything else.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(format, args...)
	}
	return fmt.Errorf("database error: %w", err)
}

// where applies cond unless it is empty.
func where(q *gorm.DB, cond string, args []any) *gorm.DB {
	if cond == "" {
		return q
	}
	return q.Where(cond, args...)
}
