package services

import (
	"context"
	"time"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

// SlotFinder is the read side of the store the conflict checker needs.
type SlotFinder interface {
	FindActiveInSlot(ctx context.Context, slot models.Slot, excludeID string) (*models.VaccinationBooking, error)
	FindActiveOnDate(ctx context.Context, date time.Time, center string) ([]models.VaccinationBooking, error)
}

// ConflictChecker decides whether a slot is already held by an active booking.
type ConflictChecker struct {
	finder SlotFinder
}

func NewConflictChecker(finder SlotFinder) *ConflictChecker {
	return &ConflictChecker{finder: finder}
}

// HasConflict reports whether another active booking holds slot.
// The booking with excludeID is never counted against itself.
func (c *ConflictChecker) HasConflict(ctx context.Context, slot models.Slot, excludeID string) (bool, error) {
	held, err := c.finder.FindActiveInSlot(ctx, slot, excludeID)
	if err != nil {
		return false, err
	}
	return held != nil, nil
}

type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Availability lists every bookable time at center on date and whether it is free.
func (c *ConflictChecker) Availability(ctx context.Context, date time.Time, center string) ([]SlotAvailability, error) {
	active, err := c.finder.FindActiveOnDate(ctx, date, center)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(active))
	for _, b := range active {
		taken[b.AppointmentTime] = true
	}

	out := make([]SlotAvailability, 0, len(models.TimeSlots))
	for _, t := range models.TimeSlots {
		out = append(out, SlotAvailability{Time: t, Available: !taken[t]})
	}
	return out, nil
}
