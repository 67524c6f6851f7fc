package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

// ActiveSlotIndex is the partial unique index that keeps two active bookings off the same slot.
const ActiveSlotIndex = "idx_vaccination_bookings_active_slot"

const pgUniqueViolation = "23505"

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateSlot = errors.New("slot already held by an active booking")
)

type VaccinationRepo struct{ db *gorm.DB }

func NewVaccinationRepo(db *gorm.DB) *VaccinationRepo {
	return &VaccinationRepo{db: db}
}

func vaccinesByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the booking and its vaccines in one transaction.
func (r *VaccinationRepo) Create(ctx context.Context, b *models.VaccinationBooking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	prepareVaccines(b)
	return translateError(r.db.WithContext(ctx).Create(b).Error)
}

func (r *VaccinationRepo) FindByID(ctx context.Context, id string) (*models.VaccinationBooking, error) {
	var b models.VaccinationBooking
	err := r.db.WithContext(ctx).
		Preload("Vaccines", vaccinesByPosition).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

// FindAll returns every booking, newest first.
func (r *VaccinationRepo) FindAll(ctx context.Context) ([]models.VaccinationBooking, error) {
	out := []models.VaccinationBooking{}
	err := r.db.WithContext(ctx).
		Preload("Vaccines", vaccinesByPosition).
		Order("created_at DESC").
		Find(&out).Error
	return out, translateError(err)
}

// FindByUserEmail returns the bookings owned by email, newest first.
func (r *VaccinationRepo) FindByUserEmail(ctx context.Context, email string) ([]models.VaccinationBooking, error) {
	out := []models.VaccinationBooking{}
	err := r.db.WithContext(ctx).
		Preload("Vaccines", vaccinesByPosition).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&out).Error
	return out, translateError(err)
}

// FindActiveInSlot returns the active booking holding slot, or nil when the slot is free.
// excludeID, when set, is ignored so a booking never conflicts with itself.
func (r *VaccinationRepo) FindActiveInSlot(ctx context.Context, slot models.Slot, excludeID string) (*models.VaccinationBooking, error) {
	q := r.db.WithContext(ctx).
		Where("appointment_date = ? AND appointment_time = ? AND vaccination_center = ?",
			slot.Date, slot.Time, slot.Center).
		Where("status IN ?", models.ActiveStatuses)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var b models.VaccinationBooking
	err := q.Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindActiveOnDate lists the active bookings at center on the given day.
func (r *VaccinationRepo) FindActiveOnDate(ctx context.Context, date time.Time, center string) ([]models.VaccinationBooking, error) {
	out := []models.VaccinationBooking{}
	err := r.db.WithContext(ctx).
		Where("appointment_date = ? AND vaccination_center = ?", date, center).
		Where("status IN ?", models.ActiveStatuses).
		Order("appointment_time ASC").
		Find(&out).Error
	return out, translateError(err)
}

// Update writes every column of b and replaces its vaccine list.
func (r *VaccinationRepo) Update(ctx context.Context, b *models.VaccinationBooking) error {
	prepareVaccines(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(b).
			Select("*").
			Omit(clause.Associations, "CreatedAt").
			Updates(b)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("booking_id = ?", b.ID).Delete(&models.Vaccine{}).Error; err != nil {
			return err
		}
		if len(b.Vaccines) == 0 {
			return nil
		}
		return tx.Create(&b.Vaccines).Error
	})
	return translateError(err)
}

// UpdateStatus sets only the status column and returns the reloaded booking.
func (r *VaccinationRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.VaccinationBooking, error) {
	var b models.VaccinationBooking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VaccinationBooking{}).
			Where("id = ?", id).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Preload("Vaccines", vaccinesByPosition).First(&b, "id = ?", id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

// Delete removes the booking permanently. Vaccines go with it through the FK cascade.
func (r *VaccinationRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.VaccinationBooking{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks the underlying connection.
func (r *VaccinationRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func prepareVaccines(b *models.VaccinationBooking) {
	for i := range b.Vaccines {
		b.Vaccines[i].ID = 0
		b.Vaccines[i].BookingID = b.ID
		b.Vaccines[i].Position = i
	}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == ActiveSlotIndex {
		return ErrDuplicateSlot
	}
	return err
}
