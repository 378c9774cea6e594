// Package item serves item pages: item CRUD, search, comments, and the
// last/next approved booking shown to an item's owner.
package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/clock"
	"shareit-backend/internal/model"
	"shareit-backend/internal/store"
)

// Store is the persistence the item service needs.
type Store interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	CreateItem(ctx context.Context, it *model.Item) error
	UpdateItem(ctx context.Context, id int64, patch store.ItemPatch) (model.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	SearchItems(ctx context.Context, text string) ([]model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	GetRequest(ctx context.Context, id int64) (model.ItemRequest, error)

	CreateComment(ctx context.Context, c *model.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
	ListCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Comment, error)

	ExistsFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
	FindLastApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindNextApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	FindLastApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]model.Booking, error)
	FindNextApprovedForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]model.Booking, error)
}

// Details is an item with its comments and, for the owner, the surrounding approved bookings.
type Details struct {
	Item        model.Item
	LastBooking *model.Booking
	NextBooking *model.Booking
	Comments    []model.Comment
}

// Service implements the item operations.
type Service struct {
	store Store
	clock clock.Clock
}

// NewService creates a new item service.
func NewService(s Store, clk clock.Clock) *Service {
	return &Service{store: s, clock: clk}
}

// Create stores a new item owned by ownerID. A set RequestID must name an existing request.
func (s *Service) Create(ctx context.Context, ownerID int64, it model.Item) (model.Item, error) {
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return model.Item{}, err
	}
	if isBlank(it.Name) || isBlank(it.Description) {
		return model.Item{}, apperror.Validation("Item name and description must not be blank")
	}
	if it.RequestID != nil {
		if _, err := s.store.GetRequest(ctx, *it.RequestID); err != nil {
			return model.Item{}, err
		}
	}

	it.ID = 0
	it.OwnerID = ownerID
	if err := s.store.CreateItem(ctx, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// Update applies patch to an item of ownerID.
func (s *Service) Update(ctx context.Context, ownerID, itemID int64, patch store.ItemPatch) (model.Item, error) {
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return model.Item{}, err
	}
	it, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return model.Item{}, err
	}
	if it.OwnerID != ownerID {
		return model.Item{}, apperror.Forbidden("Only the owner can edit item %d", itemID)
	}
	if (patch.Name != nil && isBlank(*patch.Name)) || (patch.Description != nil && isBlank(*patch.Description)) {
		return model.Item{}, apperror.Validation("Item name and description must not be blank")
	}
	return s.store.UpdateItem(ctx, itemID, patch)
}

// Delete removes an item of ownerID with its bookings and comments.
func (s *Service) Delete(ctx context.Context, ownerID, itemID int64) error {
	it, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if it.OwnerID != ownerID {
		return apperror.Forbidden("Only the owner can delete item %d", itemID)
	}
	return s.store.DeleteItem(ctx, itemID)
}

// Get returns an item page. Last and next bookings are only shown to the owner.
func (s *Service) Get(ctx context.Context, requesterID, itemID int64) (Details, error) {
	if _, err := s.store.GetUser(ctx, requesterID); err != nil {
		return Details{}, err
	}
	it, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return Details{}, err
	}

	d := Details{Item: it}
	if it.OwnerID == requesterID {
		now := s.clock.Now()
		if d.LastBooking, err = s.store.FindLastApproved(ctx, itemID, now); err != nil {
			return Details{}, err
		}
		if d.NextBooking, err = s.store.FindNextApproved(ctx, itemID, now); err != nil {
			return Details{}, err
		}
	}

	if d.Comments, err = s.store.ListCommentsByItem(ctx, itemID); err != nil {
		return Details{}, err
	}
	return d, nil
}

// ListByOwner returns every item of ownerID with last/next bookings and comments,
// using one query per concern rather than one per item.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Details, error) {
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.store.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []Details{}, nil
	}

	itemIDs := make([]int64, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}

	now := s.clock.Now()
	lasts, err := s.store.FindLastApprovedForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	nexts, err := s.store.FindNextApprovedForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.ListCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	out := make([]Details, len(items))
	for i, it := range items {
		out[i] = Details{Item: it, Comments: comments[it.ID]}
		if b, ok := lasts[it.ID]; ok {
			out[i].LastBooking = &b
		}
		if b, ok := nexts[it.ID]; ok {
			out[i].NextBooking = &b
		}
	}
	return out, nil
}

// Search finds available items by name or description. Blank text finds nothing.
func (s *Service) Search(ctx context.Context, text string) ([]model.Item, error) {
	if isBlank(text) {
		return []model.Item{}, nil
	}
	return s.store.SearchItems(ctx, strings.TrimSpace(text))
}

// AddComment stores a comment by authorID. Only users with a finished approved
// booking of the item may comment.
func (s *Service) AddComment(ctx context.Context, authorID, itemID int64, text string) (model.Comment, error) {
	author, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		return model.Comment{}, err
	}
	it, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return model.Comment{}, err
	}
	if isBlank(text) {
		return model.Comment{}, apperror.Validation("Comment text must not be blank")
	}

	now := s.clock.Now()
	eligible, err := s.store.ExistsFinishedApprovedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to check comment eligibility: %w", err)
	}
	if !eligible {
		return model.Comment{}, apperror.Validation("User %d has no finished booking of item %d", authorID, itemID)
	}

	c := model.Comment{
		Text:     text,
		ItemID:   it.ID,
		AuthorID: author.ID,
		Created:  now,
	}
	if err := s.store.CreateComment(ctx, &c); err != nil {
		return model.Comment{}, err
	}
	c.Author = author
	c.Item = it
	return c, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
