package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"shareit-backend/internal/model"
)

// requestOrder lists requests newest first.
const requestOrder = "created DESC, id DESC"

func (s *gormStore) CreateRequest(ctx context.Context, r *model.ItemRequest) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}
	return nil
}

func (s *gormStore) GetRequest(ctx context.Context, id int64) (model.ItemRequest, error) {
	var r model.ItemRequest
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return model.ItemRequest{}, notFound(err, "Request not found: %d", id)
	}
	return r, nil
}

// ListRequestsByRequestor returns the requests of userID, newest first.
func (s *gormStore) ListRequestsByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	var requests []model.ItemRequest
	if err := s.db.WithContext(ctx).
		Where("requestor_id = ?", userID).
		Order(requestOrder).
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests of user %d: %w", userID, err)
	}
	return requests, nil
}

// ListOtherRequests returns one page of the requests made by everyone except userID,
// newest first.
func (s *gormStore) ListOtherRequests(ctx context.Context, userID int64, offset, limit int) ([]model.ItemRequest, error) {
	var requests []model.ItemRequest
	if err := s.db.WithContext(ctx).
		Where("requestor_id <> ?", userID).
		Order(requestOrder).
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests of other users: %w", err)
	}
	return requests, nil
}

// ListItemsByRequestIDs groups the items answering the given requests by request id.
func (s *gormStore) ListItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]model.Item, error) {
	byRequest := make(map[int64][]model.Item)
	if len(requestIDs) == 0 {
		return byRequest, nil
	}
	var items []model.Item
	if err := s.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("request_id ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items of %d requests: %w", len(requestIDs), err)
	}
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}
	return byRequest, nil
}
