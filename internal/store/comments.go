package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"shareit-backend/internal/model"
)

func (s *gormStore) CreateComment(ctx context.Context, c *model.Comment) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (s *gormStore) ListCommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	var comments []model.Comment
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("item_id = ?", itemID).
		Order("created ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments of item %d: %w", itemID, err)
	}
	return comments, nil
}

// ListCommentsByItems groups the comments of several items by item id.
func (s *gormStore) ListCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Comment, error) {
	byItem := make(map[int64][]model.Comment)
	if len(itemIDs) == 0 {
		return byItem, nil
	}
	var comments []model.Comment
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("item_id ASC, created ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments of %d items: %w", len(itemIDs), err)
	}
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	return byItem, nil
}
