package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

type EventType string

const (
	EventVaccinationCreated   EventType = "vaccination.created"
	EventVaccinationUpdated   EventType = "vaccination.updated"
	EventVaccinationCancelled EventType = "vaccination.cancelled"
	EventVaccinationDeleted   EventType = "vaccination.deleted"
)

// BookingEvent describes a change to a booking. Booking carries the full
// record for in-process sinks and is never serialized.
type BookingEvent struct {
	Type      EventType                  `json:"type"`
	BookingID string                     `json:"bookingId"`
	UserEmail string                     `json:"userEmail"`
	Status    models.BookingStatus       `json:"status"`
	Slot      models.Slot                `json:"slot"`
	Timestamp int64                      `json:"timestamp"`
	Booking   *models.VaccinationBooking `json:"-"`
}

func newBookingEvent(t EventType, b *models.VaccinationBooking) BookingEvent {
	return BookingEvent{
		Type:      t,
		BookingID: b.ID,
		UserEmail: b.UserEmail,
		Status:    b.Status,
		Slot:      b.Slot(),
		Timestamp: time.Now().Unix(),
		Booking:   b,
	}
}

// Notifier receives booking events after the store has accepted a change.
type Notifier interface {
	Notify(ctx context.Context, e BookingEvent) error
}

// MultiNotifier fans an event out to every sink. One failing sink does not
// stop the others.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, e BookingEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, e); err != nil {
			log.Printf("Failed to deliver %s event for booking %s: %v", e.Type, e.BookingID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AsyncNotifier delivers events on a separate goroutine and only logs failures.
type AsyncNotifier struct {
	Next Notifier
}

func (a AsyncNotifier) Notify(ctx context.Context, e BookingEvent) error {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := a.Next.Notify(ctx, e); err != nil {
			log.Printf("Failed to deliver %s event for booking %s: %v", e.Type, e.BookingID, err)
		}
	}()
	return nil
}
