package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/chachabrian/pawcare-backend/internal/services"
)

const (
	msgSlotTaken      = "This time slot is already booked. Please select another time."
	msgNotFound       = "Vaccination booking not found"
	msgInvalidBody    = "Invalid request body"
	msgInternalError  = "Something went wrong, please try again later"
	msgBookingDeleted = "Vaccination booking deleted successfully"
)

// respondError writes the {message, missingFields} body for a service error.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		body := gin.H{"message": ve.Message}
		if len(ve.MissingFields) > 0 {
			body["missingFields"] = ve.MissingFields
		}
		c.JSON(400, body)
	case errors.Is(err, services.ErrSlotTaken):
		c.JSON(400, gin.H{"message": msgSlotTaken})
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(404, gin.H{"message": msgNotFound})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(500, gin.H{"message": msgInternalError})
	}
}

// bindJSON decodes the request body into v. An empty body leaves v untouched
// so the service reports exactly which fields are missing.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("Invalid %s %s body: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(400, gin.H{"message": msgInvalidBody})
		return false
	}
	return true
}

// CreateVaccination books a new appointment
func CreateVaccination(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CreateVaccinationInput
		if !bindJSON(c, &input) {
			return
		}

		booking, err := svc.Create(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, booking)
	}
}

// GetVaccinations lists every booking, newest first
func GetVaccinations(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, bookings)
	}
}

// GetUserVaccinations lists the bookings made with the given email
func GetUserVaccinations(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.ListForUser(c.Request.Context(), c.Param("userEmail"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, bookings)
	}
}

func GetVaccination(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, booking)
	}
}

// UpdateVaccination applies a partial update to a booking
func UpdateVaccination(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.UpdateVaccinationInput
		if !bindJSON(c, &input) {
			return
		}

		booking, err := svc.Update(c.Request.Context(), c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, booking)
	}
}

func CancelVaccination(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := svc.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, booking)
	}
}

func DeleteVaccination(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"message": msgBookingDeleted})
	}
}

// GetAvailability reports which time slots are free at a center on a date
func GetAvailability(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, center := c.Query("date"), c.Query("center")

		slots, err := svc.Availability(c.Request.Context(), date, center)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"date":   date,
			"center": center,
			"slots":  slots,
		})
	}
}

// GetVaccinationReceipt serves the appointment slip as a PDF download
func GetVaccinationReceipt(svc *services.VaccinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, pdf, err := svc.Receipt(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="vaccination-%s.pdf"`, booking.ID))
		c.Data(200, "application/pdf", pdf)
	}
}
