package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

func newBooking(email, clock string) *models.VaccinationBooking {
	return &models.VaccinationBooking{
		Patient:           models.Patient{Name: "Alice", PhoneNumber: "9800000000", City: "Kathmandu", Address: "Thamel"},
		Dog:               models.Dog{Name: "Rex", Breed: "Husky", Behaviour: models.DogBehaviourFriendly},
		Vaccines:          []models.Vaccine{{Name: "Rabies", DoseNumber: 1}, {Name: "DHPP", DoseNumber: 2}},
		UserEmail:         email,
		Status:            models.BookingStatusScheduled,
		AppointmentDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime:   clock,
		VaccinationCenter: "Main Center",
	}
}

func TestMemoryRepoCreateAssignsIDAndOrdersVaccines(t *testing.T) {
	repo := NewMemoryVaccinationRepo()
	ctx := context.Background()

	b := newBooking("a@b.com", "09:00")
	require.NoError(t, repo.Create(ctx, b))
	assert.NotEmpty(t, b.ID)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got.Vaccines, 2)
	assert.Equal(t, "Rabies", got.Vaccines[0].Name)
	assert.Equal(t, 1, got.Vaccines[1].Position)
	assert.Equal(t, b.ID, got.Vaccines[1].BookingID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMemoryRepoRejectsSecondActiveBookingInSlot(t *testing.T) {
	repo := NewMemoryVaccinationRepo()
	ctx := context.Background()

	first := newBooking("a@b.com", "09:00")
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newBooking("c@d.com", "09:00"))
	assert.ErrorIs(t, err, ErrDuplicateSlot)

	_, err = repo.UpdateStatus(ctx, first.ID, models.BookingStatusCancelled)
	require.NoError(t, err)

	assert.NoError(t, repo.Create(ctx, newBooking("c@d.com", "09:00")))
}

func TestMemoryRepoFindActiveInSlotExcludesSelf(t *testing.T) {
	repo := NewMemoryVaccinationRepo()
	ctx := context.Background()

	b := newBooking("a@b.com", "10:00")
	require.NoError(t, repo.Create(ctx, b))

	held, err := repo.FindActiveInSlot(ctx, b.Slot(), "")
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.Equal(t, b.ID, held.ID)

	held, err = repo.FindActiveInSlot(ctx, b.Slot(), b.ID)
	require.NoError(t, err)
	assert.Nil(t, held)
}

func TestMemoryRepoListsNewestFirst(t *testing.T) {
	repo := NewMemoryVaccinationRepo()
	ctx := context.Background()

	first := newBooking("a@b.com", "09:00")
	second := newBooking("a@b.com", "10:00")
	other := newBooking("x@y.com", "11:00")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	mine, err := repo.FindByUserEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, other.ID, all[0].ID)

	none, err := repo.FindByUserEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryRepoUpdateAndDelete(t *testing.T) {
	repo := NewMemoryVaccinationRepo()
	ctx := context.Background()

	b := newBooking("a@b.com", "09:00")
	require.NoError(t, repo.Create(ctx, b))

	b.Vaccines = []models.Vaccine{{Name: "Leptospirosis", DoseNumber: 1}}
	b.AppointmentTime = "13:00"
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "13:00", got.AppointmentTime)
	require.Len(t, got.Vaccines, 1)
	assert.Equal(t, "Leptospirosis", got.Vaccines[0].Name)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrNotFound)
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryVaccinationRepo()
	ctx := context.Background()

	b := newBooking("a@b.com", "09:00")
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	got.Vaccines[0].Name = "changed"
	got.Status = models.BookingStatusCancelled

	again, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rabies", again.Vaccines[0].Name)
	assert.Equal(t, models.BookingStatusScheduled, again.Status)
}

func TestMemoryRepoFindActiveOnDate(t *testing.T) {
	repo := NewMemoryVaccinationRepo()
	ctx := context.Background()

	late := newBooking("a@b.com", "15:00")
	early := newBooking("a@b.com", "09:00")
	cancelled := newBooking("a@b.com", "10:00")
	cancelled.Status = models.BookingStatusCancelled
	elsewhere := newBooking("a@b.com", "11:00")
	elsewhere.VaccinationCenter = "Downtown Clinic"

	for _, b := range []*models.VaccinationBooking{late, early, cancelled, elsewhere} {
		require.NoError(t, repo.Create(ctx, b))
	}

	got, err := repo.FindActiveOnDate(ctx, early.AppointmentDate, "Main Center")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "09:00", got[0].AppointmentTime)
	assert.Equal(t, "15:00", got[1].AppointmentTime)
}
