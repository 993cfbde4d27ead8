package trustedemployee

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var applicantValidator = newApplicantValidator()

func newApplicantValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ssn", func(fl validator.FieldLevel) bool {
		return len(digitsOnly(fl.Field().String())) == 9
	})
	return v
}

func validateApplicant(a *Applicant) error {
	err := applicantValidator.Struct(a)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return newValidationError(verrs[0])
	}

	return &ValidationError{Message: "invalid applicant"}
}

func newValidationError(fe validator.FieldError) *ValidationError {
	field := fe.StructField()

	var msg string
	switch fe.ActualTag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "len":
		msg = fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "ssn":
		msg = fmt.Sprintf("%s must contain exactly 9 digits", field)
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}

	return &ValidationError{Field: field, Message: msg}
}
