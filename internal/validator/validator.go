package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/DormLink-2025/repair-service/internal/models"
)

// AppointmentTimeLayout is the wire format for optional appointment times.
const AppointmentTimeLayout = "2006-01-02 15:04"

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with the domain rules used at
// every request boundary.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	// Role is a closed enumeration; reject anything outside it.
	validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})

	// Appointment times arrive as "YYYY-MM-DD HH:MM" strings.
	validate.RegisterValidation("appointment_time", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(AppointmentTimeLayout, fl.Field().String())
		return err == nil
	})

	return &Validator{validate: validate}
}

// Validate validates a struct and returns field-level errors, empty on
// success.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	var errs ValidationErrors

	err := v.validate.Struct(s)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: messageFor(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return errs
}

// ParseAppointmentTime parses an optional appointment time string.
// A nil or empty input yields a nil time without error.
func ParseAppointmentTime(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(AppointmentTimeLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment time %q: %w", *raw, err)
	}
	return &t, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "user_role":
		return "must be one of: student, repairman, admin"
	case "appointment_time":
		return "must match format " + AppointmentTimeLayout
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
