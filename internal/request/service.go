// Package request serves item requests: descriptions of wanted items that other
// users can answer by creating an item with the request's id.
package request

import (
	"context"
	"strings"

	"shareit-backend/internal/apperror"
	"shareit-backend/internal/clock"
	"shareit-backend/internal/model"
)

// Store is the persistence the request service needs.
type Store interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)

	CreateRequest(ctx context.Context, r *model.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (model.ItemRequest, error)
	ListRequestsByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListOtherRequests(ctx context.Context, userID int64, offset, limit int) ([]model.ItemRequest, error)
	ListItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]model.Item, error)
}

// Details is a request with the items offered in answer to it.
type Details struct {
	Request model.ItemRequest
	Items   []model.Item
}

// Service implements the item request operations.
type Service struct {
	store Store
	clock clock.Clock
}

// NewService creates a new request service.
func NewService(s Store, clk clock.Clock) *Service {
	return &Service{store: s, clock: clk}
}

// Create stores a request by requestorID. A new request has no items yet.
func (s *Service) Create(ctx context.Context, requestorID int64, description string) (Details, error) {
	if _, err := s.store.GetUser(ctx, requestorID); err != nil {
		return Details{}, err
	}
	if strings.TrimSpace(description) == "" {
		return Details{}, apperror.Validation("Request description must not be blank")
	}

	r := model.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     s.clock.Now(),
	}
	if err := s.store.CreateRequest(ctx, &r); err != nil {
		return Details{}, err
	}
	return Details{Request: r, Items: []model.Item{}}, nil
}

// Get returns one request with its items. Any existing user may look at any request.
func (s *Service) Get(ctx context.Context, userID, requestID int64) (Details, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return Details{}, err
	}
	r, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return Details{}, err
	}
	out, err := s.withItems(ctx, []model.ItemRequest{r})
	if err != nil {
		return Details{}, err
	}
	return out[0], nil
}

// ListOwn returns the requests of userID, newest first.
func (s *Service) ListOwn(ctx context.Context, userID int64) ([]Details, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.store.ListRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// ListOthers returns a page of the requests of every other user, newest first.
// The page holding index from is returned, so from is rounded down to a multiple of size.
func (s *Service) ListOthers(ctx context.Context, userID int64, from, size int) ([]Details, error) {
	if from < 0 || size <= 0 {
		return nil, apperror.Validation("Invalid page: from=%d size=%d", from, size)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.store.ListOtherRequests(ctx, userID, (from/size)*size, size)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// withItems attaches the answering items to each request with a single query.
func (s *Service) withItems(ctx context.Context, requests []model.ItemRequest) ([]Details, error) {
	out := make([]Details, len(requests))
	if len(requests) == 0 {
		return out, nil
	}
	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}
	items, err := s.store.ListItemsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, r := range requests {
		out[i] = Details{Request: r, Items: items[r.ID]}
		if out[i].Items == nil {
			out[i].Items = []model.Item{}
		}
	}
	return out, nil
}

func (s *Service) ensureUser(ctx context.Context, userID int64) error {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound("User not found: %d", userID)
	}
	return nil
}
