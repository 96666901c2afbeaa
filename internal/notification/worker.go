package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"studyseat-dashboard/internal/store"
)

// ExpiryAlert describes one student whose payment validity has lapsed.
type ExpiryAlert struct {
	StudentID   int64
	StudentName string
	RoomNumber  string
	TableNumber int
	DueDate     string
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender implementation using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending expiry alerts to
// subscribed admins.
type WorkerPool struct {
	size    int
	jobs    chan ExpiryAlert
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan ExpiryAlert, size),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
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
		case alert := <-wp.jobs:
			log.Printf("Worker %d processing expiry alert for student %d", id, alert.StudentID)
			wp.sendAlerts(ctx, alert)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an alert for delivery. When the queue is full the alert is
// dropped with a log line; a stalled pool must never block the caller.
func (wp *WorkerPool) Dispatch(alert ExpiryAlert) {
	select {
	case wp.jobs <- alert:
	default:
		log.Printf("Alert queue full, dropping expiry alert for student %d", alert.StudentID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan ExpiryAlert {
	return wp.jobs
}

// sendAlerts fetches the subscriptions scoped to the alert's room and pushes
// the expiry message to each.
func (wp *WorkerPool) sendAlerts(ctx context.Context, alert ExpiryAlert) {
	subscriptions, err := wp.store.SubscriptionsForRoom(ctx, alert.RoomNumber)
	if err != nil {
		log.Printf("Error fetching subscriptions for room %s: %v", alert.RoomNumber, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d expiry alerts for student %d", len(subscriptions), alert.StudentID)

	message := fmt.Sprintf("Payment expired for %s (room %s, table %d), due %s",
		alert.StudentName, alert.RoomNumber, alert.TableNumber, alert.DueDate)
	for _, sub := range subscriptions {
		wpSub := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256DH,
				Auth:   sub.Auth,
			},
		}

		resp, err := wp.sender.Send([]byte(message), wpSub, wp.webpush)
		if err != nil {
			log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
			continue
		}
		resp.Body.Close()

		// Handle expired subscriptions
		if resp.StatusCode == 410 {
			log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
			if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
				log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
			}
		}
	}
}
