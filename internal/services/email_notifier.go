package services

import (
	"context"

	"github.com/chachabrian/pawcare-backend/internal/models"
	"github.com/chachabrian/pawcare-backend/pkg/utils"
)

// EmailNotifier mails the booking owner when an appointment is scheduled or cancelled.
type EmailNotifier struct {
	mailer *utils.Mailer
}

func NewEmailNotifier(mailer *utils.Mailer) *EmailNotifier {
	return &EmailNotifier{mailer: mailer}
}

func (n *EmailNotifier) Notify(_ context.Context, e BookingEvent) error {
	if e.Booking == nil {
		return nil
	}
	switch e.Type {
	case EventVaccinationCreated:
		return n.mailer.SendVaccinationScheduledEmail(e.UserEmail, appointmentDetails(e.Booking))
	case EventVaccinationCancelled:
		return n.mailer.SendVaccinationCancelledEmail(e.UserEmail, appointmentDetails(e.Booking))
	}
	return nil
}

func appointmentDetails(b *models.VaccinationBooking) utils.AppointmentDetails {
	names := make([]string, 0, len(b.Vaccines))
	for _, v := range b.Vaccines {
		names = append(names, v.Name)
	}
	return utils.AppointmentDetails{
		BookingID: b.ID,
		DogName:   b.Dog.Name,
		Vaccines:  names,
		Date:      b.AppointmentDate.Format(models.DateLayout),
		Time:      b.AppointmentTime,
		Center:    b.VaccinationCenter,
	}
}
