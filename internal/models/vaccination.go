package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "Scheduled"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusNoShow    BookingStatus = "No-show"
)

// ActiveStatuses are the statuses that hold an appointment slot.
var ActiveStatuses = []BookingStatus{BookingStatusScheduled, BookingStatusConfirmed}

// statusTransitions lists where each status may move next. Terminal statuses have no entry.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusScheduled: {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow},
}

// IsValid reports whether s is one of the known booking statuses.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusScheduled, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether a booking in this status occupies its slot.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusScheduled || s == BookingStatusConfirmed
}

// CanTransitionTo reports whether a booking may move from s to next.
// Staying on the same status is always allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type DogBehaviour string

const (
	DogBehaviourFriendly   DogBehaviour = "Friendly"
	DogBehaviourPlayful    DogBehaviour = "Playful"
	DogBehaviourAggressive DogBehaviour = "Aggressive"
)

// TimeSlots are the bookable appointment times. 12:00 is the lunch gap.
var TimeSlots = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

type Patient struct {
	Name                string `json:"name" gorm:"not null" validate:"required"`
	PhoneNumber         string `json:"phoneNumber" gorm:"not null" validate:"required"`
	City                string `json:"city" gorm:"not null" validate:"required"`
	Address             string `json:"address" gorm:"not null" validate:"required"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

type Dog struct {
	Name      string       `json:"name" gorm:"not null" validate:"required"`
	Breed     string       `json:"breed" gorm:"not null" validate:"required"`
	Behaviour DogBehaviour `json:"behaviour" gorm:"not null" validate:"required,oneof=Friendly Playful Aggressive"`
}

type Vaccine struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	BookingID  string `json:"-" gorm:"type:uuid;not null;index"`
	Position   int    `json:"-" gorm:"not null"`
	Name       string `json:"name" gorm:"not null" validate:"required"`
	DoseNumber int    `json:"doseNumber" gorm:"not null" validate:"gte=1"`
}

// TableName specifies the table name
func (Vaccine) TableName() string {
	return "vaccination_booking_vaccines"
}

// VaccinationBooking is one scheduled vaccination appointment.
type VaccinationBooking struct {
	ID                string        `json:"id" gorm:"type:uuid;primaryKey"`
	Patient           Patient       `json:"patient" gorm:"embedded;embeddedPrefix:patient_"`
	Dog               Dog           `json:"dog" gorm:"embedded;embeddedPrefix:dog_"`
	Vaccines          []Vaccine     `json:"vaccines" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" validate:"required,min=1,dive"`
	UserEmail         string        `json:"userEmail" gorm:"not null;index" validate:"required"`
	Status            BookingStatus `json:"status" gorm:"not null;default:'Scheduled';index" validate:"required,oneof=Scheduled Confirmed Completed Cancelled No-show"`
	TotalAmount       float64       `json:"totalAmount" gorm:"not null;default:0" validate:"gte=0"`
	AppointmentDate   time.Time     `json:"appointmentDate" gorm:"type:date;not null" validate:"required"`
	AppointmentTime   string        `json:"appointmentTime" gorm:"not null" validate:"required,timeslot"`
	VaccinationCenter string        `json:"vaccinationCenter" gorm:"not null" validate:"required"`
	CreatedAt         time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// TableName specifies the table name
func (VaccinationBooking) TableName() string {
	return "vaccination_bookings"
}

// Slot returns the (date, time, center) triple the booking occupies.
func (b *VaccinationBooking) Slot() Slot {
	return Slot{Date: b.AppointmentDate, Time: b.AppointmentTime, Center: b.VaccinationCenter}
}

// Slot identifies a single bookable appointment at a center.
type Slot struct {
	Date   time.Time `json:"date"`
	Time   string    `json:"time"`
	Center string    `json:"center"`
}

// IsTimeSlot reports whether t is one of the bookable appointment times.
func IsTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// ParseAppointmentDate accepts a plain calendar date or an RFC3339 timestamp and
// returns midnight UTC of that calendar day. A timestamp keeps the day written
// in its own offset, so 2025-06-01T23:30:00-05:00 is June 1.
func ParseAppointmentDate(s string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
