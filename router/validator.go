package router

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/go-playground/validator.v9"
)

// FormErrors maps form field names to a message for the user
type FormErrors map[string]string

func (f FormErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	return "invalid form fields: " + strings.Join(fields, ", ")
}

// NewValidator func
func NewValidator() *Validator {
	v := validator.New()
	// report fields by their form name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{
		validator: v,
	}
}

// Validator struct
type Validator struct {
	validator *validator.Validate
}

// Validate func. Constraint failures are returned as FormErrors.
func (v *Validator) Validate(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	formErrors := FormErrors{}
	for _, fe := range verrs {
		if _, seen := formErrors[fe.Field()]; !seen {
			formErrors[fe.Field()] = message(fe)
		}
	}
	return formErrors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "email":
		return "Invalid email address."
	case "eqfield":
		return "Passwords must match."
	case "alphanum":
		return "Only letters and numbers are allowed."
	default:
		return "Invalid value."
	}
}
