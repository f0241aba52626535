package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"

	ierr "github.com/deskhive/deskhive/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest runs struct-tag validation on a request object and
// converts the first failure into a validation error with field details.
func ValidateRequest(req any) error {
	if req == nil {
		return nil
	}

	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ierr.WithError(err).
			WithHint("Request validation failed").
			Mark(ierr.ErrValidation)
	}

	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldErr.Tag()
	}

	return ierr.NewError("request validation failed").
		WithHint("One or more fields failed validation").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}
