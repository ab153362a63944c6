package apperror

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultRedirectDelay is how long a client should wait before following RedirectTo.
const DefaultRedirectDelay = 2 * time.Second

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string            `json:"error_code"`
	Message    string            `json:"message"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"` // Wrapped internal error (not exposed to client)
	Fields     map[string]string `json:"field_errors,omitempty"`
	// RedirectTo is a navigation hint for the UI, paired with RedirectAfter.
	RedirectTo    string        `json:"redirect_to,omitempty"`
	RedirectAfter time.Duration `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithFields attaches a field -> message map and returns the same error.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	e.Fields = fields
	return e
}

// WithRedirect attaches a navigation hint and returns the same error.
func (e *AppError) WithRedirect(to string, after time.Duration) *AppError {
	e.RedirectTo = to
	e.RedirectAfter = after
	return e
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication & Authorization (AUTH) ----

func ErrUnauthenticated() *AppError {
	return New("AUTH_001", "Authentication required", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrTokenRevoked() *AppError {
	return New("AUTH_003", "Token has been revoked", http.StatusUnauthorized)
}

func ErrIdentityProvider(err error) *AppError {
	return Wrap("AUTH_004", "Identity provider unavailable", http.StatusBadGateway, err)
}

// ErrForbidden is a role denial; the UI is sent to /unauthorized.
func ErrForbidden() *AppError {
	return New("AUTH_005", "Insufficient role for this resource", http.StatusForbidden).
		WithRedirect("/unauthorized", 0)
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001 error for malformed input.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ValidationFields returns a VAL_002 error carrying per-field messages.
func ValidationFields(message string, fields map[string]string) *AppError {
	return New("VAL_002", message, http.StatusUnprocessableEntity).WithFields(fields)
}

func ErrPayloadTooLarge(limit int64) *AppError {
	return New("VAL_003", fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// ---- Wizard (WIZ) ----

func ErrWizardNotFound() *AppError {
	return New("WIZ_001", "Wizard session not found or expired", http.StatusNotFound)
}

func ErrInvalidTransition(message string) *AppError {
	return New("WIZ_002", message, http.StatusConflict)
}

func ErrSubmissionInProgress() *AppError {
	return New("WIZ_003", "Submission already in progress", http.StatusConflict)
}

func ErrUnknownAccountType(code string) *AppError {
	return New("WIZ_004", fmt.Sprintf("Unknown account type %q", code), http.StatusBadRequest)
}

// ---- Navigation (NAV) ----

// ErrMissingParam reports a missing route parameter with a redirect hint.
func ErrMissingParam(param, redirectTo string) *AppError {
	return New("NAV_001", fmt.Sprintf("%s is required", param), http.StatusBadRequest).
		WithRedirect(redirectTo, DefaultRedirectDelay)
}

// ---- Banking backend (BANK) ----

func ErrBackend(err error) *AppError {
	return Wrap("BANK_001", "Banking service request failed", http.StatusBadGateway, err)
}

func ErrNotFound(entity string) *AppError {
	return New("BANK_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrCacheError(err error) *AppError {
	return Wrap("SYS_002", "Session store failure", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
