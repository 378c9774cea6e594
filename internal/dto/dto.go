// Package dto holds the JSON shapes exchanged with clients.
package dto

import (
	"shareit-backend/internal/item"
	"shareit-backend/internal/model"
	"shareit-backend/internal/request"
)

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  Timestamp `json:"start"`
	End    Timestamp `json:"end"`
}

type BookerRef struct {
	ID int64 `json:"id"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  Timestamp `json:"start"`
	End    Timestamp `json:"end"`
	Status string    `json:"status"`
	Booker BookerRef `json:"booker"`
	Item   ItemRef   `json:"item"`
}

// NewBookingResponse maps b. b.Item must be loaded for the item name.
func NewBookingResponse(b model.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  NewTimestamp(b.StartTime),
		End:    NewTimestamp(b.EndTime),
		Status: b.Status.String(),
		Booker: BookerRef{ID: b.BookerID},
		Item:   ItemRef{ID: b.ItemID, Name: b.Item.Name},
	}
}

func NewBookingResponses(bookings []model.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = NewBookingResponse(b)
	}
	return out
}

// BookingShort is the last/next booking embedded in an item page.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    Timestamp `json:"start"`
	End      Timestamp `json:"end"`
}

func newBookingShort(b *model.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID, Start: NewTimestamp(b.StartTime), End: NewTimestamp(b.EndTime)}
}

type UserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UserPatchRequest is the body of PATCH /users/:userId. Absent fields are kept.
type UserPatchRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

type ItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// ItemPatchRequest is the body of PATCH /items/:itemId. Absent fields are kept.
type ItemPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it model.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func NewItemResponses(items []model.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewItemResponse(it)
	}
	return out
}

// ItemDetailsResponse is an item page. LastBooking and NextBooking are null for non-owners.
type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingShort     `json:"lastBooking"`
	NextBooking *BookingShort     `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemDetailsResponse(d item.Details) ItemDetailsResponse {
	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(d.Item),
		LastBooking:  newBookingShort(d.LastBooking),
		NextBooking:  newBookingShort(d.NextBooking),
		Comments:     NewCommentResponses(d.Comments),
	}
}

func NewItemDetailsResponses(list []item.Details) []ItemDetailsResponse {
	out := make([]ItemDetailsResponse, len(list))
	for i, d := range list {
		out[i] = NewItemDetailsResponse(d)
	}
	return out
}

// RequestCreate is the body of POST /requests.
type RequestCreate struct {
	Description string `json:"description"`
}

// ItemShort is an item offered in answer to a request.
type ItemShort struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type RequestResponse struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	Created     Timestamp   `json:"created"`
	Items       []ItemShort `json:"items"`
}

func NewRequestResponse(d request.Details) RequestResponse {
	items := make([]ItemShort, len(d.Items))
	for i, it := range d.Items {
		items[i] = ItemShort{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID}
	}
	return RequestResponse{
		ID:          d.Request.ID,
		Description: d.Request.Description,
		Created:     NewTimestamp(d.Request.Created),
		Items:       items,
	}
}

func NewRequestResponses(list []request.Details) []RequestResponse {
	out := make([]RequestResponse, len(list))
	for i, d := range list {
		out[i] = NewRequestResponse(d)
	}
	return out
}

type CommentRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    Timestamp `json:"created"`
}

// NewCommentResponse maps c. c.Author must be loaded for the author name.
func NewCommentResponse(c model.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Text: c.Text, AuthorName: c.Author.Name, Created: NewTimestamp(c.Created)}
}

func NewCommentResponses(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = NewCommentResponse(c)
	}
	return out
}

// SubscriptionRequest registers a browser push subscription for the acting user.
type SubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

type DeleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}
