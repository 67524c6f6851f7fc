package services

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

// VaccinationStore is the persistence the booking service runs on.
type VaccinationStore interface {
	SlotFinder
	Create(ctx context.Context, b *models.VaccinationBooking) error
	FindByID(ctx context.Context, id string) (*models.VaccinationBooking, error)
	FindAll(ctx context.Context) ([]models.VaccinationBooking, error)
	FindByUserEmail(ctx context.Context, email string) ([]models.VaccinationBooking, error)
	Update(ctx context.Context, b *models.VaccinationBooking) error
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.VaccinationBooking, error)
	Delete(ctx context.Context, id string) error
}

type PatientInput struct {
	Name                string `json:"name"`
	PhoneNumber         string `json:"phoneNumber"`
	City                string `json:"city"`
	Address             string `json:"address"`
	SpecialInstructions string `json:"specialInstructions"`
}

func (p *PatientInput) toModel() models.Patient {
	return models.Patient{
		Name:                p.Name,
		PhoneNumber:         p.PhoneNumber,
		City:                p.City,
		Address:             p.Address,
		SpecialInstructions: p.SpecialInstructions,
	}
}

type DogInput struct {
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Behaviour string `json:"behaviour"`
}

func (d *DogInput) toModel() models.Dog {
	return models.Dog{Name: d.Name, Breed: d.Breed, Behaviour: models.DogBehaviour(d.Behaviour)}
}

type VaccineInput struct {
	Name       string `json:"name"`
	DoseNumber int    `json:"doseNumber"`
}

func toVaccines(in []VaccineInput) []models.Vaccine {
	out := make([]models.Vaccine, 0, len(in))
	for _, v := range in {
		out = append(out, models.Vaccine{Name: v.Name, DoseNumber: v.DoseNumber})
	}
	return out
}

// CreateVaccinationInput is the body of a new booking request. Nil pointers
// and nil slices mean the field was absent.
type CreateVaccinationInput struct {
	Patient           *PatientInput  `json:"patient"`
	Dog               *DogInput      `json:"dog"`
	Vaccines          []VaccineInput `json:"vaccines"`
	UserEmail         string         `json:"userEmail"`
	AppointmentDate   string         `json:"appointmentDate"`
	AppointmentTime   string         `json:"appointmentTime"`
	VaccinationCenter string         `json:"vaccinationCenter"`
	TotalAmount       *float64       `json:"totalAmount"`
}

// missingFields lists absent top-level fields first, then absent members of
// the patient and dog objects that were supplied.
func (in *CreateVaccinationInput) missingFields() []string {
	var missing []string
	add := func(absent bool, name string) {
		if absent {
			missing = append(missing, name)
		}
	}

	add(in.Patient == nil, "patient")
	add(in.Dog == nil, "dog")
	add(in.Vaccines == nil, "vaccines")
	add(in.AppointmentDate == "", "appointmentDate")
	add(in.AppointmentTime == "", "appointmentTime")
	add(in.VaccinationCenter == "", "vaccinationCenter")

	if p := in.Patient; p != nil {
		add(p.Name == "", "patient.name")
		add(p.PhoneNumber == "", "patient.phoneNumber")
		add(p.City == "", "patient.city")
		add(p.Address == "", "patient.address")
	}
	if d := in.Dog; d != nil {
		add(d.Name == "", "dog.name")
		add(d.Breed == "", "dog.breed")
		add(d.Behaviour == "", "dog.behaviour")
	}
	return missing
}

// UpdateVaccinationInput is a partial update. Only non-nil fields are applied.
type UpdateVaccinationInput struct {
	Patient           *PatientInput  `json:"patient"`
	Dog               *DogInput      `json:"dog"`
	Vaccines          []VaccineInput `json:"vaccines"`
	Status            *string        `json:"status"`
	AppointmentDate   *string        `json:"appointmentDate"`
	AppointmentTime   *string        `json:"appointmentTime"`
	VaccinationCenter *string        `json:"vaccinationCenter"`
}

type VaccinationService struct {
	store    VaccinationStore
	checker  *ConflictChecker
	validate *validator.Validate
	notifier Notifier
}

func NewVaccinationService(store VaccinationStore, notifier Notifier) *VaccinationService {
	return &VaccinationService{
		store:    store,
		checker:  NewConflictChecker(store),
		validate: newValidator(),
		notifier: notifier,
	}
}

// Create validates a new booking, makes sure its slot is free and stores it as Scheduled.
func (s *VaccinationService) Create(ctx context.Context, in CreateVaccinationInput) (*models.VaccinationBooking, error) {
	if in.UserEmail == "" {
		return nil, &ValidationError{Message: "Email is required", MissingFields: []string{"userEmail"}}
	}
	if missing := in.missingFields(); len(missing) > 0 {
		return nil, &ValidationError{Message: "Missing required fields", MissingFields: missing}
	}
	if len(in.Vaccines) == 0 {
		return nil, invalid("Vaccines must be a non-empty array")
	}

	date, err := models.ParseAppointmentDate(in.AppointmentDate)
	if err != nil {
		return nil, invalid("Invalid appointmentDate %q, expected YYYY-MM-DD", in.AppointmentDate)
	}

	booking := &models.VaccinationBooking{
		Patient:           in.Patient.toModel(),
		Dog:               in.Dog.toModel(),
		Vaccines:          toVaccines(in.Vaccines),
		UserEmail:         in.UserEmail,
		Status:            models.BookingStatusScheduled,
		AppointmentDate:   date,
		AppointmentTime:   in.AppointmentTime,
		VaccinationCenter: in.VaccinationCenter,
	}
	if in.TotalAmount != nil {
		booking.TotalAmount = *in.TotalAmount
	}

	if err := s.validate.Struct(booking); err != nil {
		return nil, validationError(err)
	}
	if err := s.ensureSlotFree(ctx, booking.Slot(), ""); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, booking); err != nil {
		return nil, storeError("create", err)
	}

	log.Printf("Vaccination booking %s created for %s at %s %s %s",
		booking.ID, booking.UserEmail, booking.VaccinationCenter,
		booking.AppointmentDate.Format(models.DateLayout), booking.AppointmentTime)
	s.publish(ctx, EventVaccinationCreated, booking)
	return booking, nil
}

func (s *VaccinationService) Get(ctx context.Context, id string) (*models.VaccinationBooking, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("fetch", err)
	}
	return b, nil
}

// ListForUser returns the bookings owned by email, newest first.
func (s *VaccinationService) ListForUser(ctx context.Context, email string) ([]models.VaccinationBooking, error) {
	if email == "" {
		return nil, &ValidationError{Message: "Email is required", MissingFields: []string{"userEmail"}}
	}
	out, err := s.store.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, storeError("list", err)
	}
	return out, nil
}

// List returns every booking, newest first.
func (s *VaccinationService) List(ctx context.Context) ([]models.VaccinationBooking, error) {
	out, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, storeError("list", err)
	}
	return out, nil
}

// Update applies a partial change. A change to any schedule field of an
// active booking is checked against the other active bookings first.
func (s *VaccinationService) Update(ctx context.Context, id string, in UpdateVaccinationInput) (*models.VaccinationBooking, error) {
	booking, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("fetch", err)
	}

	if in.Status != nil {
		next := models.BookingStatus(*in.Status)
		if !next.IsValid() {
			return nil, invalid("Invalid status %q", *in.Status)
		}
		if !booking.Status.CanTransitionTo(next) {
			return nil, invalid("Cannot change status from %s to %s", booking.Status, next)
		}
		booking.Status = next
	}
	if in.Patient != nil {
		booking.Patient = in.Patient.toModel()
	}
	if in.Dog != nil {
		booking.Dog = in.Dog.toModel()
	}
	if in.Vaccines != nil {
		booking.Vaccines = toVaccines(in.Vaccines)
	}

	rescheduled := false
	if in.AppointmentDate != nil {
		date, err := models.ParseAppointmentDate(*in.AppointmentDate)
		if err != nil {
			return nil, invalid("Invalid appointmentDate %q, expected YYYY-MM-DD", *in.AppointmentDate)
		}
		booking.AppointmentDate = date
		rescheduled = true
	}
	if in.AppointmentTime != nil {
		booking.AppointmentTime = *in.AppointmentTime
		rescheduled = true
	}
	if in.VaccinationCenter != nil {
		booking.VaccinationCenter = *in.VaccinationCenter
		rescheduled = true
	}

	if err := s.validate.Struct(booking); err != nil {
		return nil, validationError(err)
	}
	if rescheduled && booking.Status.IsActive() {
		if err := s.ensureSlotFree(ctx, booking.Slot(), booking.ID); err != nil {
			return nil, err
		}
	}

	if err := s.store.Update(ctx, booking); err != nil {
		return nil, storeError("update", err)
	}

	s.publish(ctx, EventVaccinationUpdated, booking)
	return booking, nil
}

// Cancel moves an active booking to Cancelled, which frees its slot.
func (s *VaccinationService) Cancel(ctx context.Context, id string) (*models.VaccinationBooking, error) {
	booking, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("fetch", err)
	}
	if !booking.Status.IsActive() {
		return nil, invalid("Cannot cancel a booking that is already %s", booking.Status)
	}

	cancelled, err := s.store.UpdateStatus(ctx, id, models.BookingStatusCancelled)
	if err != nil {
		return nil, storeError("cancel", err)
	}

	log.Printf("Vaccination booking %s cancelled", id)
	s.publish(ctx, EventVaccinationCancelled, cancelled)
	return cancelled, nil
}

// Delete removes a booking permanently.
func (s *VaccinationService) Delete(ctx context.Context, id string) error {
	booking, err := s.store.FindByID(ctx, id)
	if err != nil {
		return storeError("fetch", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError("delete", err)
	}

	log.Printf("Vaccination booking %s deleted", id)
	s.publish(ctx, EventVaccinationDeleted, booking)
	return nil
}

// Availability reports which time slots are still free at center on date.
func (s *VaccinationService) Availability(ctx context.Context, date, center string) ([]SlotAvailability, error) {
	var missing []string
	if date == "" {
		missing = append(missing, "date")
	}
	if center == "" {
		missing = append(missing, "center")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "Missing required fields", MissingFields: missing}
	}

	day, err := models.ParseAppointmentDate(date)
	if err != nil {
		return nil, invalid("Invalid date %q, expected YYYY-MM-DD", date)
	}

	slots, err := s.checker.Availability(ctx, day, center)
	if err != nil {
		return nil, storeError("check availability for", err)
	}
	return slots, nil
}

// Receipt renders the booking confirmation PDF.
func (s *VaccinationService) Receipt(ctx context.Context, id string) (*models.VaccinationBooking, []byte, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := RenderReceiptPDF(booking, time.Now())
	if err != nil {
		log.Printf("Failed to render receipt for booking %s: %v", id, err)
		return nil, nil, err
	}
	return booking, pdf, nil
}

func (s *VaccinationService) ensureSlotFree(ctx context.Context, slot models.Slot, excludeID string) error {
	taken, err := s.checker.HasConflict(ctx, slot, excludeID)
	if err != nil {
		return storeError("check slot for", err)
	}
	if taken {
		return ErrSlotTaken
	}
	return nil
}

func (s *VaccinationService) publish(ctx context.Context, t EventType, b *models.VaccinationBooking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, newBookingEvent(t, b)); err != nil {
		log.Printf("Booking %s %s but notification failed: %v", b.ID, t, err)
	}
}
