package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// SessionExpiredText is shown when the backend rejects a credential without saying why.
const SessionExpiredText = "Your session has expired. Please log in again."

var (
	// ErrNotAuthenticated is returned before any network call when no credential is available.
	ErrNotAuthenticated = &AuthError{Message: "User not authenticated"}

	// ErrInvalidDraft is the cause of every ValidationError built from a ValidationResult.
	ErrInvalidDraft = errors.New("invalid form data")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// Result returns the field errors keyed by field name.
func (err ValidationError) Result() ValidationResult {
	res := make(ValidationResult, len(err.Fields))
	for _, fe := range err.Fields {
		if _, ok := res[fe.Field]; !ok {
			res[fe.Field] = fe.Error
		}
	}
	return res
}

// AuthError means the credential is missing, expired or was rejected (401/403).
type AuthError struct {
	StatusCode int
	Message    string
}

func (err *AuthError) Error() string {
	if err.StatusCode == 0 {
		return "auth: " + err.Message
	}
	return fmt.Sprintf("auth: %d %s", err.StatusCode, err.Message)
}

// APIError is a non-2xx answer from the backend that is neither an auth nor a server failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", err.StatusCode, err.Message)
}

// NetworkError means the call did not complete: connectivity, timeout or a 5xx answer.
type NetworkError struct {
	Err        error
	StatusCode int
	Message    string
}

func (err *NetworkError) Error() string {
	if err.Err != nil {
		return "network: " + err.Err.Error()
	}
	return fmt.Sprintf("network: %d %s", err.StatusCode, err.Message)
}

func (err *NetworkError) Unwrap() error { return err.Err }

func IsAuthError(err error) bool {
	_, ok := errors.Cause(err).(*AuthError)
	return ok
}

// Reason returns the user facing message for a failed call: the server message if there is one, else fallback.
func Reason(err error, fallback string) string {
	switch e := errors.Cause(err).(type) {
	case *AuthError:
		if e.Message != "" {
			return e.Message
		}
		return SessionExpiredText
	case *APIError:
		if e.Message != "" {
			return e.Message
		}
	case *NetworkError:
		if e.Message != "" {
			return e.Message
		}
	}
	return fallback
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
