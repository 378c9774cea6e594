package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/model"
)

// CreateUser inserts u. A taken email is a Conflict.
func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	var taken int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", u.Email).
		Count(&taken).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken > 0 {
		return apperror.Conflict("Email already in use: %s", u.Email)
	}

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		// The unique index still catches a concurrent insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("Email already in use: %s", u.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return model.User{}, notFound(err, "User not found: %d", id)
	}
	return u, nil
}

func (s *gormStore) UserExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies patch to user id. An email held by another user is a Conflict.
func (s *gormStore) UpdateUser(ctx context.Context, id int64, patch UserPatch) (model.User, error) {
	if err := patch.Validate(); err != nil {
		return model.User{}, err
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return model.User{}, err
	}

	if patch.Email != nil {
		var taken int64
		if err := s.db.WithContext(ctx).Model(&model.User{}).
			Where("email = ? AND id <> ?", *patch.Email, id).
			Count(&taken).Error; err != nil {
			return model.User{}, fmt.Errorf("failed to check email: %w", err)
		}
		if taken > 0 {
			return model.User{}, apperror.Conflict("Email already in use: %s", *patch.Email)
		}
	}

	if cols := patch.columns(); len(cols) > 0 {
		if err := s.db.WithContext(ctx).Model(&model.User{ID: id}).Updates(cols).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return model.User{}, apperror.Conflict("Email already in use: %s", *patch.Email)
			}
			return model.User{}, fmt.Errorf("failed to update user %d: %w", id, err)
		}
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes user id together with everything that belongs to them: their items
// (with those items' bookings and comments), their own bookings, comments, requests and
// push subscriptions. Items answering their requests are kept and unlinked.
func (s *gormStore) DeleteUser(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.User{}, id).Error; err != nil {
			return notFound(err, "User not found: %d", id)
		}

		ownedItems := func() *gorm.DB {
			return tx.Model(&model.Item{}).Select("id").Where("owner_id = ?", id)
		}
		ownRequests := func() *gorm.DB {
			return tx.Model(&model.ItemRequest{}).Select("id").Where("requestor_id = ?", id)
		}

		steps := []struct {
			what string
			run  func() error
		}{
			{"comments", func() error {
				return tx.Where("author_id = ? OR item_id IN (?)", id, ownedItems()).Delete(&model.Comment{}).Error
			}},
			{"bookings", func() error {
				return tx.Where("booker_id = ? OR item_id IN (?)", id, ownedItems()).Delete(&model.Booking{}).Error
			}},
			{"request links", func() error {
				return tx.Model(&model.Item{}).Where("request_id IN (?)", ownRequests()).Update("request_id", nil).Error
			}},
			{"items", func() error {
				return tx.Where("owner_id = ?", id).Delete(&model.Item{}).Error
			}},
			{"requests", func() error {
				return tx.Where("requestor_id = ?", id).Delete(&model.ItemRequest{}).Error
			}},
			{"push subscriptions", func() error {
				return tx.Where("user_id = ?", id).Delete(&model.PushSubscription{}).Error
			}},
			{"user", func() error {
				return tx.Delete(&model.User{}, id).Error
			}},
		}
		for _, step := range steps {
			if err := step.run(); err != nil {
				return fmt.Errorf("failed to delete %s of user %d: %w", step.what, id, err)
			}
		}
		return nil
	})
}
