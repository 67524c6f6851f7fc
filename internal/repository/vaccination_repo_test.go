package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

func newMockRepo(t *testing.T) (*VaccinationRepo, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewVaccinationRepo(db), mock
}

func TestFindByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "vaccination_bookings" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveInSlotReturnsNilWhenFree(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "vaccination_bookings" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	slot := models.Slot{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Time: "09:00", Center: "Main Center"}
	held, err := repo.FindActiveInSlot(context.Background(), slot, "self")
	require.NoError(t, err)
	assert.Nil(t, held)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveInSlotPropagatesQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "vaccination_bookings" WHERE`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindActiveInSlot(context.Background(), models.Slot{Time: "09:00", Center: "Main Center"}, "")
	assert.EqualError(t, err, "connection reset")
}

func TestDeleteMissingBooking(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "vaccination_bookings" WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBooking(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "vaccination_bookings" WHERE id = \$1`).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), "b-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "record not found", in: gorm.ErrRecordNotFound, want: ErrNotFound},
		{
			name: "active slot index",
			in:   &pgconn.PgError{Code: "23505", ConstraintName: ActiveSlotIndex},
			want: ErrDuplicateSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateError(tt.in))
		})
	}

	other := &pgconn.PgError{Code: "23505", ConstraintName: "vaccination_bookings_pkey"}
	assert.Same(t, other, translateError(other))
}

func repoBooking() *models.VaccinationBooking {
	return &models.VaccinationBooking{
		ID:                "b-1",
		Patient:           models.Patient{Name: "Alice", PhoneNumber: "9800000000", City: "Kathmandu", Address: "Thamel"},
		Dog:               models.Dog{Name: "Rex", Breed: "Husky", Behaviour: models.DogBehaviourFriendly},
		Vaccines:          []models.Vaccine{{Name: "Rabies", DoseNumber: 1}, {Name: "DHPP", DoseNumber: 1}},
		UserEmail:         "a@b.com",
		Status:            models.BookingStatusScheduled,
		AppointmentDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime:   "09:00",
		VaccinationCenter: "Main Center",
	}
}

func activeSlotViolation() error {
	return &pgconn.PgError{
		Code:           "23505",
		ConstraintName: ActiveSlotIndex,
		Message:        `duplicate key value violates unique constraint "` + ActiveSlotIndex + `"`,
	}
}

func TestCreateInsertsBookingAndVaccines(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "vaccination_bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "vaccination_booking_vaccines"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	b := repoBooking()
	b.ID = ""
	require.NoError(t, repo.Create(context.Background(), b))

	assert.NotEmpty(t, b.ID)
	for i, v := range b.Vaccines {
		assert.Equal(t, b.ID, v.BookingID)
		assert.Equal(t, i, v.Position)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateActiveSlotViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "vaccination_bookings"`).
		WillReturnError(activeSlotViolation())
	mock.ExpectRollback()

	err := repo.Create(context.Background(), repoBooking())
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReplacesVaccines(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vaccination_bookings" SET .* WHERE "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "vaccination_booking_vaccines" WHERE booking_id = \$1`).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "vaccination_booking_vaccines"`).
		WithArgs("b-1", 0, "Rabies", 1, "b-1", 1, "DHPP", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7).AddRow(8))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), repoBooking()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingBooking(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vaccination_bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), repoBooking())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateActiveSlotViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vaccination_bookings" SET`).
		WillReturnError(activeSlotViolation())
	mock.ExpectRollback()

	err := repo.Update(context.Background(), repoBooking())
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusReloadsBooking(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vaccination_bookings" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs("Cancelled", sqlmock.AnyArg(), "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "vaccination_bookings" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "appointment_time"}).
			AddRow("b-1", "Cancelled", "09:00"))
	mock.ExpectQuery(`SELECT \* FROM "vaccination_booking_vaccines"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "position", "name", "dose_number"}).
			AddRow(1, "b-1", 0, "Rabies", 1))
	mock.ExpectCommit()

	b, err := repo.UpdateStatus(context.Background(), "b-1", models.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)
	require.Len(t, b.Vaccines, 1)
	assert.Equal(t, "Rabies", b.Vaccines[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusMissingBooking(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vaccination_bookings" SET "status"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), "missing", models.BookingStatusCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
