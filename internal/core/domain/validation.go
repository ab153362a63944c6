package domain

import (
	"fmt"
	"regexp"

	"secure-bank-console/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to a human-readable message.
type FieldErrors map[string]string

func (e FieldErrors) Required(field, label string) {
	e[field] = fmt.Sprintf("%s is required", label)
}

// Merge copies other into e; existing keys are overwritten.
func (e FieldErrors) Merge(other FieldErrors) FieldErrors {
	for k, v := range other {
		e[k] = v
	}
	return e
}

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validation.New()
	tags := map[string]validator.Func{
		"phone":           func(fl validator.FieldLevel) bool { return phonePattern.MatchString(fl.Field().String()) },
		"customer_type":   validation.OneOf(enumValues(CustomerTypes())...),
		"customer_status": validation.OneOf(enumValues(CustomerStatuses())...),
		"account_type":    validation.OneOf(presetCodes()...),
		"account_status":  validation.OneOf(enumValues(AccountStatuses())...),
		"freeze_type":     validation.OneOf(optionValues(FreezeTypes())...),
		"freeze_reason":   validation.OneOf(optionValues(FreezeReasons())...),
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// ValidateStruct checks s against its validate tags and reports the first
// failure of each field, labelled through labels.
func ValidateStruct(s any, labels map[string]string) FieldErrors {
	errs := FieldErrors{}
	verrs, err := validation.Errors(validate.Struct(s))
	if err != nil {
		panic(fmt.Sprintf("validate %T: %v", s, err))
	}
	for _, fe := range verrs {
		label, ok := labels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		errs[fe.Field()] = message(fe, label)
	}
	return errs
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "phone":
		return "Please enter a valid phone number"
	case "customer_type", "customer_status", "account_type", "account_status", "freeze_type", "freeze_reason":
		return fmt.Sprintf("%s is not a recognised option", label)
	}
	return validation.Message(fe, label)
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func optionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func presetCodes() []string {
	presets := Presets()
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = string(p.Code)
	}
	return out
}
