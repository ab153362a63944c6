package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"secure-bank-console/internal/core/wizard"
	"secure-bank-console/pkg/apperror"
	"secure-bank-console/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeIDRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

var sortFields = map[wizard.SortField]bool{
	wizard.SortByFirstName:    true,
	wizard.SortByLastName:     true,
	wizard.SortByCustomerType: true,
	wizard.SortByStatus:       true,
	wizard.SortByCreatedAt:    true,
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("sort_field", validateSortField)
		v.RegisterTagNameFunc(validation.FieldName)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeIDRe.MatchString(fl.Field().String())
}

func validateSortField(fl validator.FieldLevel) bool {
	return sortFields[wizard.SortField(fl.Field().String())]
}

// IsSafeID reports whether a route parameter is a plausible backend identifier.
func IsSafeID(s string) bool {
	return len(s) <= 64 && safeIDRe.MatchString(s)
}

// BindError turns a gin binding failure into an AppError. Validator failures
// become VAL_002 with per-field messages; anything else is a malformed body.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("Malformed request: " + err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperror.ValidationFields("Please correct the highlighted fields", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "safe_id":
		return fmt.Sprintf("%s contains invalid characters", fe.Field())
	case "sort_field":
		return fmt.Sprintf("%s is not a sortable field", fe.Field())
	default:
		return validation.Message(fe, fe.Field())
	}
}

// SanitizeStruct trims whitespace and drops control characters from every
// exported string field (including *string) of a struct pointer. Values are
// forwarded to the banking backend verbatim otherwise, so no escaping is applied.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
