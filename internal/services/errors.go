package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/chachabrian/pawcare-backend/internal/repository"
)

var (
	ErrBookingNotFound = errors.New("vaccination booking not found")
	ErrSlotTaken       = errors.New("time slot already booked")
)

// ValidationError is a request the service refused to act on. The handlers
// render it as a 400 with MissingFields listed when there are any.
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// storeError maps repository failures onto service errors.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrBookingNotFound
	case errors.Is(err, repository.ErrDuplicateSlot):
		return ErrSlotTaken
	}
	log.Printf("Failed to %s vaccination booking: %v", op, err)
	return fmt.Errorf("failed to %s vaccination booking: %w", op, err)
}
