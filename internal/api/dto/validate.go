package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request struct against its validate tags and converts
// failures into the batched field-error shape the API returns.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}

	fieldErrors := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, apperrors.FieldError{Msg: fieldMessage(fe)})
	}
	return apperrors.NewValidationError(fieldErrors...)
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
