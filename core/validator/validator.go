package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = newValidator()
	})
	return validate
}

// FieldError describes the first rule a value failed. Field is the json
// name of the struct field and empty for single values.
type FieldError struct {
	Field string
	Rule  string
	Param string
	Value interface{}
}

func (e FieldError) Error() string {
	if e.Rule == "oneof" {
		msg := fmt.Sprintf("error value \"%v\"", e.Value)
		if e.Field != "" {
			msg += fmt.Sprintf(" for key \"%s\"", e.Field)
		}
		return msg + " " + e.Reason()
	}
	if e.Field == "" {
		return fmt.Sprintf("value %s", e.Reason())
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason())
}

// Reason renders the failed rule without the field name.
func (e FieldError) Reason() string {
	switch e.Rule {
	case "oneof":
		return fmt.Sprintf("not recognized, only support \"%s\"", e.Param)
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("cannot be less than %s", e.Param)
	case "lte":
		return fmt.Sprintf("cannot be greater than %s", e.Param)
	case "max":
		return fmt.Sprintf("cannot be longer than %s", e.Param)
	case "url":
		return "is not a valid url"
	case "excludesall":
		return fmt.Sprintf("cannot contain any of %q", e.Param)
	}
	return fmt.Sprintf("failed on the '%s' rule", e.Rule)
}

// ValidateStruct checks the validate tags of f and returns the first
// violation as FieldError.
func ValidateStruct(f interface{}) error {
	return checkError(getValidator().Struct(f))
}

// ValidateVar checks a single value against tag.
func ValidateVar(value interface{}, tag string) error {
	return checkError(getValidator().Var(value, tag))
}

// ValidateOneOf accepts an empty value or one of enums.
func ValidateOneOf(value string, enums ...string) error {
	tags := "omitempty,oneof=" + strings.Join(enums, " ")
	return ValidateVar(value, tags)
}

func checkError(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	e := errs[0]
	return FieldError{
		Field: e.Field(),
		Rule:  e.Tag(),
		Param: e.Param(),
		Value: e.Value(),
	}
}
