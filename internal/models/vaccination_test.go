package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentDate(t *testing.T) {
	june1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "calendar date", in: "2025-06-01", want: june1},
		{name: "utc timestamp", in: "2025-06-01T10:00:00Z", want: june1},
		{name: "negative offset late evening", in: "2025-06-01T23:30:00-05:00", want: june1},
		{name: "positive offset early morning", in: "2025-06-01T00:15:00+05:45", want: june1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAppointmentDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseAppointmentDate("01/06/2025")
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusScheduled.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusNoShow))
	assert.True(t, BookingStatusCompleted.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusScheduled.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusScheduled))
}
