package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shareit-backend/internal/model"
)

func (s *gormStore) GetItem(ctx context.Context, id int64) (model.Item, error) {
	var it model.Item
	if err := s.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return model.Item{}, notFound(err, "Item not found: %d", id)
	}
	return it, nil
}

func (s *gormStore) CreateItem(ctx context.Context, it *model.Item) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(it).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// UpdateItem writes the set fields of patch and returns the stored item.
func (s *gormStore) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (model.Item, error) {
	if !patch.Empty() {
		if err := s.db.WithContext(ctx).
			Model(&model.Item{ID: id}).
			Updates(patch.columns()).Error; err != nil {
			return model.Item{}, fmt.Errorf("failed to update item %d: %w", id, err)
		}
	}
	return s.GetItem(ctx, id)
}

func (s *gormStore) ListItemsByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	var items []model.Item
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items of user %d: %w", ownerID, err)
	}
	return items, nil
}

// SearchItems returns available items whose name or description contains text, ignoring case.
func (s *gormStore) SearchItems(ctx context.Context, text string) ([]model.Item, error) {
	pattern := "%" + strings.ToLower(text) + "%"
	var items []model.Item
	if err := s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

// DeleteItem removes item id with its bookings and comments.
func (s *gormStore) DeleteItem(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Item{}, id).Error; err != nil {
			return notFound(err, "Item not found: %d", id)
		}
		if err := tx.Where("item_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of item %d: %w", id, err)
		}
		if err := tx.Where("item_id = ?", id).Delete(&model.Booking{}).Error; err != nil {
			return fmt.Errorf("failed to delete bookings of item %d: %w", id, err)
		}
		if err := tx.Delete(&model.Item{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete item %d: %w", id, err)
		}
		return nil
	})
}
