package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormValidator adapts go-playground/validator to echo.Validator.
type FormValidator struct {
	v *validator.Validate
}

// NewValidator returns a validator that reports fields by their form name.
func NewValidator() *FormValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &FormValidator{v: v}
}

// Validate implements echo.Validator.
func (fv *FormValidator) Validate(i interface{}) error {
	return fv.v.Struct(i)
}

// validationMessage turns a validator error into a message for the client.
// Missing required fields produce requiredMsg; other rule failures name the
// offending field.
func validationMessage(err error, requiredMsg string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid form"
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return requiredMsg
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
