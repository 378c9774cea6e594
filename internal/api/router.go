package api

import (
	"github.com/gin-gonic/gin"

	"shareit-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	withUser := mw.RequireUserID()

	bookings := r.Group("/bookings", withUser)
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookerBookings)
		bookings.GET("/owner", h.ListOwnerBookings)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.PATCH("/:bookingId", h.DecideBooking)
	}

	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:userId", h.GetUser)
		users.PATCH("/:userId", h.UpdateUser)
		users.DELETE("/:userId", h.DeleteUser)
	}

	items := r.Group("/items")
	{
		items.GET("/search", h.SearchItems)
		items.POST("", withUser, h.CreateItem)
		items.GET("", withUser, h.ListOwnerItems)
		items.GET("/:itemId", withUser, h.GetItem)
		items.PATCH("/:itemId", withUser, h.UpdateItem)
		items.DELETE("/:itemId", withUser, h.DeleteItem)
		items.POST("/:itemId/comment", withUser, h.AddComment)
	}

	requests := r.Group("/requests", withUser)
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListOwnRequests)
		requests.GET("/all", h.ListOtherRequests)
		requests.GET("/:requestId", h.GetRequest)
	}

	push := r.Group("/push")
	{
		push.GET("/vapid_public_key", h.GetVAPIDPublicKey)
		push.GET("/subscriptions", withUser, h.GetSubscriptions)
		push.PUT("/subscriptions", withUser, h.PutSubscription)
		push.DELETE("/subscriptions", withUser, h.DeleteSubscription)
	}

	return r
}
