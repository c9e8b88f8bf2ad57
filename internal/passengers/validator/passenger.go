package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"skybook/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

type PassengerValidator struct {
	validate *validator.Validate
}

func NewPassengerValidator() *PassengerValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	return &PassengerValidator{
		validate: v,
	}
}

func (v *PassengerValidator) Validate(p *model.Passenger) error {
	if err := v.validate.Struct(p); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message(err),
		})
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	default:
		return fmt.Sprintf("failed %q check", err.Tag())
	}
}

func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, e := range v {
		details[e.Field] = e.Message
	}
	return details
}
