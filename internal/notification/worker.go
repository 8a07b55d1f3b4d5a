package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"fleet-ops-backend/internal/model"
	"fleet-ops-backend/internal/schedule"
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

// WorkerPool manages a pool of workers that notify subscribers when a
// driver's schedule assignment changes.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	loc     *time.Location
}

// NewWorkerPool creates a new worker pool. loc is the timezone whose
// calendar day decides which schedule entry counts as today; it must
// match the one the schedule service generates with.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, loc *time.Location) *WorkerPool {
	if loc == nil {
		loc = time.Local
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size), // Buffered channel
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		loc:     loc,
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
		case driverID := <-wp.jobs:
			log.Printf("Worker %d processing driver %s", id, driverID)
			wp.sendNotificationsForDriver(ctx, driverID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(driverID string) {
	wp.jobs <- driverID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// sendNotificationsForDriver fetches the driver's subscribers and sends
// each of them the driver's current assignment for today.
func (wp *WorkerPool) sendNotificationsForDriver(ctx context.Context, driverID string) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_driver_mapping sdm ON sdm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("sdm.driver_id = ?", driverID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for driver %s: %v", driverID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for driver %s", len(subscriptions), driverID)

	var driver model.Driver
	driverLabel := driverID
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&driver, "id = ?", driverID).Error; err != nil {
		log.Printf("Error fetching driver %s: %v", driverID, err)
	} else if driver.Name != "" {
		driverLabel = driver.Name
	}

	message := fmt.Sprintf("Schedule updated for %s.", driverLabel)

	today := assignmentDay(time.Now(), wp.loc)
	var entry model.ScheduleEntry
	err = wp.db.WithContext(ctx).
		Where("driver_id = ? AND date = ?", driverID, today).
		First(&entry).Error
	if err == nil && entry.LocationName != "" {
		message = fmt.Sprintf("%s is assigned to %s today.", driverLabel, entry.LocationName)
	}

	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// assignmentDay resolves the instant to the schedule date for the
// current calendar day in loc. Entries are keyed by the calendar day of
// the generating timezone, so truncating in UTC would pick the wrong row
// for part of every day in any zone with a nonzero offset.
func assignmentDay(t time.Time, loc *time.Location) time.Time {
	return schedule.DateOnly(t.In(loc))
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	// Manually construct the webpush.Subscription object
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
	if resp.StatusCode == 410 {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
