package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

// MemoryVaccinationRepo keeps bookings in process memory. It enforces the
// same single-active-booking-per-slot rule as the partial unique index.
type MemoryVaccinationRepo struct {
	mu       sync.RWMutex
	bookings map[string]*memoryRecord
	seq      uint64
	now      func() time.Time
}

type memoryRecord struct {
	booking models.VaccinationBooking
	seq     uint64
}

func NewMemoryVaccinationRepo() *MemoryVaccinationRepo {
	return &MemoryVaccinationRepo{
		bookings: make(map[string]*memoryRecord),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryVaccinationRepo) Create(_ context.Context, b *models.VaccinationBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status.IsActive() && r.slotTakenLocked(b.Slot(), b.ID) {
		return ErrDuplicateSlot
	}

	now := r.now()
	b.CreatedAt, b.UpdatedAt = now, now
	prepareVaccines(b)
	for i := range b.Vaccines {
		b.Vaccines[i].ID = uint(i + 1)
	}

	r.seq++
	r.bookings[b.ID] = &memoryRecord{booking: clone(b), seq: r.seq}
	return nil
}

func (r *MemoryVaccinationRepo) FindByID(_ context.Context, id string) (*models.VaccinationBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b := clone(&rec.booking)
	return &b, nil
}

func (r *MemoryVaccinationRepo) FindAll(_ context.Context) ([]models.VaccinationBooking, error) {
	return r.list(func(*models.VaccinationBooking) bool { return true }), nil
}

func (r *MemoryVaccinationRepo) FindByUserEmail(_ context.Context, email string) ([]models.VaccinationBooking, error) {
	return r.list(func(b *models.VaccinationBooking) bool { return b.UserEmail == email }), nil
}

func (r *MemoryVaccinationRepo) FindActiveInSlot(_ context.Context, slot models.Slot, excludeID string) (*models.VaccinationBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, rec := range r.bookings {
		if id == excludeID || !rec.booking.Status.IsActive() {
			continue
		}
		if sameSlot(rec.booking.Slot(), slot) {
			b := clone(&rec.booking)
			return &b, nil
		}
	}
	return nil, nil
}

func (r *MemoryVaccinationRepo) FindActiveOnDate(_ context.Context, date time.Time, center string) ([]models.VaccinationBooking, error) {
	out := r.list(func(b *models.VaccinationBooking) bool {
		return b.Status.IsActive() && b.VaccinationCenter == center && b.AppointmentDate.Equal(date)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppointmentTime < out[j].AppointmentTime })
	return out, nil
}

func (r *MemoryVaccinationRepo) Update(_ context.Context, b *models.VaccinationBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	if b.Status.IsActive() && r.slotTakenLocked(b.Slot(), b.ID) {
		return ErrDuplicateSlot
	}

	b.CreatedAt = rec.booking.CreatedAt
	b.UpdatedAt = r.now()
	prepareVaccines(b)
	for i := range b.Vaccines {
		b.Vaccines[i].ID = uint(i + 1)
	}
	rec.booking = clone(b)
	return nil
}

func (r *MemoryVaccinationRepo) UpdateStatus(_ context.Context, id string, status models.BookingStatus) (*models.VaccinationBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if status.IsActive() && !rec.booking.Status.IsActive() && r.slotTakenLocked(rec.booking.Slot(), id) {
		return nil, ErrDuplicateSlot
	}

	rec.booking.Status = status
	rec.booking.UpdatedAt = r.now()
	b := clone(&rec.booking)
	return &b, nil
}

func (r *MemoryVaccinationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *MemoryVaccinationRepo) Ping(context.Context) error { return nil }

func (r *MemoryVaccinationRepo) slotTakenLocked(slot models.Slot, excludeID string) bool {
	for id, rec := range r.bookings {
		if id != excludeID && rec.booking.Status.IsActive() && sameSlot(rec.booking.Slot(), slot) {
			return true
		}
	}
	return false
}

// list returns matching bookings newest first; insertion order breaks timestamp ties.
func (r *MemoryVaccinationRepo) list(match func(*models.VaccinationBooking) bool) []models.VaccinationBooking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]*memoryRecord, 0, len(r.bookings))
	for _, rec := range r.bookings {
		if match(&rec.booking) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].booking.CreatedAt.Equal(recs[j].booking.CreatedAt) {
			return recs[i].booking.CreatedAt.After(recs[j].booking.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	out := make([]models.VaccinationBooking, 0, len(recs))
	for _, rec := range recs {
		out = append(out, clone(&rec.booking))
	}
	return out
}

func sameSlot(a, b models.Slot) bool {
	return a.Date.Equal(b.Date) && a.Time == b.Time && a.Center == b.Center
}

func clone(b *models.VaccinationBooking) models.VaccinationBooking {
	c := *b
	c.Vaccines = append([]models.Vaccine(nil), b.Vaccines...)
	return c
}
