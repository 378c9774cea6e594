package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"shareit-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Store is the data the workers read and clean up.
type Store interface {
	FindByID(ctx context.Context, id int64) (model.Booking, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	ListPushSubscriptionsByUser(ctx context.Context, userID int64) ([]model.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// WorkerPool tells bookers about decisions on their bookings.
type WorkerPool struct {
	size    int
	jobs    chan int64
	store   Store
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool with a job queue of queueSize booking ids.
func NewWorkerPool(size, queueSize int, store Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, queueSize),
		store:   store,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case bookingID := <-wp.jobs:
			log.Printf("Worker %d processing booking %d", id, bookingID)
			wp.notifyBooker(ctx, bookingID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a decided booking. It never blocks the caller; when the queue is
// full the notification is dropped and false is returned.
func (wp *WorkerPool) Dispatch(bookingID int64) bool {
	select {
	case wp.jobs <- bookingID:
		return true
	default:
		log.Printf("Notification queue full, dropping booking %d", bookingID)
		return false
	}
}

// Message is the text pushed to the booker of b.
func Message(b model.Booking, itemName string) string {
	return fmt.Sprintf("Booking %d for %q was %s", b.ID, itemName, b.Status)
}

// notifyBooker sends the decision on a booking to every subscription of its booker.
func (wp *WorkerPool) notifyBooker(ctx context.Context, bookingID int64) {
	b, err := wp.store.FindByID(ctx, bookingID)
	if err != nil {
		log.Printf("Error fetching booking %d: %v", bookingID, err)
		return
	}
	if b.Status == model.StatusWaiting {
		log.Printf("Booking %d is still waiting, nothing to send", bookingID)
		return
	}

	subscriptions, err := wp.store.ListPushSubscriptionsByUser(ctx, b.BookerID)
	if err != nil {
		log.Printf("Error fetching subscriptions for user %d: %v", b.BookerID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	itemName := fmt.Sprintf("item %d", b.ItemID)
	if it, err := wp.store.GetItem(ctx, b.ItemID); err != nil {
		log.Printf("Error fetching item %d: %v", b.ItemID, err)
	} else if it.Name != "" {
		itemName = it.Name
	}

	log.Printf("Sending %d notifications for booking %d", len(subscriptions), bookingID)
	message := Message(b, itemName)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
