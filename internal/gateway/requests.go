package gateway

import "shareit-backend/internal/dto"

// Request bodies as the gateway validates them. The server receives the original bytes.

type bookingRequest struct {
	ItemID int64         `json:"itemId" binding:"required"`
	Start  dto.Timestamp `json:"start" binding:"required,futureorpresent"`
	End    dto.Timestamp `json:"end" binding:"required,future"`
}

type userRequest struct {
	Name  string `json:"name" binding:"notblank"`
	Email string `json:"email" binding:"required,email"`
}

type userPatchRequest struct {
	Name  *string `json:"name" binding:"omitempty,notblank"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type itemRequest struct {
	Name        string `json:"name" binding:"notblank"`
	Description string `json:"description" binding:"notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

type itemPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank"`
	Description *string `json:"description" binding:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

type commentRequest struct {
	Text string `json:"text" binding:"notblank,max=2000"`
}

type requestCreate struct {
	Description string `json:"description" binding:"notblank"`
}

type subscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}
