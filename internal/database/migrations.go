package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/chachabrian/pawcare-backend/internal/models"
	"github.com/chachabrian/pawcare-backend/internal/repository"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.VaccinationBooking{},
		&models.Vaccine{},
	)
	if err != nil {
		return err
	}

	statements := []string{
		// Keep status values to the known set
		`ALTER TABLE vaccination_bookings DROP CONSTRAINT IF EXISTS vaccination_bookings_status_check`,
		`ALTER TABLE vaccination_bookings ADD CONSTRAINT vaccination_bookings_status_check
			CHECK (status IN ('Scheduled', 'Confirmed', 'Completed', 'Cancelled', 'No-show'))`,

		// At most one active booking per (date, time, center)
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s
			ON vaccination_bookings (appointment_date, appointment_time, vaccination_center)
			WHERE status IN ('Scheduled', 'Confirmed')`, repository.ActiveSlotIndex),
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
