package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Errors are impossible here: the tag is non-empty and the func is set.
	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return models.IsTimeSlot(fl.Field().String())
	})

	return v
}

// validationError turns validator output into a ValidationError. Fields that
// failed "required" also land in MissingFields.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if fe.Tag() == "required" {
			ve.MissingFields = append(ve.MissingFields, field)
		}
		msgs = append(msgs, describe(field, fe))
	}
	ve.Message = "Validation failed: " + strings.Join(msgs, "; ")
	return ve
}

// fieldPath drops the struct name so "VaccinationBooking.patient.name" reads "patient.name".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "timeslot":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.TimeSlots, ", "))
	}
	return fmt.Sprintf("%s is invalid", field)
}
