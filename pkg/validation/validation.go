// Package validation configures go-playground/validator for the console:
// fields are reported by their wire name, shopspring decimals are compared
// exactly through the dgte tag, and failures read like form hints.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a validator with the console's field naming and decimal support.
// Callers register their own catalog tags on top.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(FieldName)
	v.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})
	if err := v.RegisterValidation("dgte", decimalGTE); err != nil {
		panic(err)
	}
	return v
}

// FieldName reports a struct field by its json (or form) name.
func FieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// OneOf builds a validation func admitting exactly the given values.
func OneOf(values ...string) validator.Func {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	}
}

// Errors unpacks the field failures of a Struct call. Any error that is not
// a ValidationErrors (a nil or non-struct argument) is returned as is.
func Errors(err error) (validator.ValidationErrors, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, nil
	}
	return nil, err
}

// Message renders fe for a field shown to the operator as label.
func Message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", label)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", label, fe.Param())
	case "dgte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "email":
		return "Please enter a valid email address"
	case "datetime":
		return fmt.Sprintf("%s must be a date (%s)", label, layoutHint(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func layoutHint(layout string) string {
	if layout == time.DateOnly {
		return "YYYY-MM-DD"
	}
	return layout
}

// decimalString lets string-kind tags (required, dgte) see a decimal's value.
func decimalString(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalGTE(fl validator.FieldLevel) bool {
	min, err := decimal.NewFromString(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("dgte: bad parameter %q", fl.Param()))
	}
	v, err := decimal.NewFromString(fl.Field().String())
	return err == nil && v.GreaterThanOrEqual(min)
}
