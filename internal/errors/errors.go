package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Validation errors (VALIDATION-001 to VALIDATION-099)
	// Client-detected bad input. Never reaches the network.
	ErrCodeValidationQuantity ErrorCode = "VALIDATION-001"
	ErrCodeValidationField    ErrorCode = "VALIDATION-002"

	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRejected   ErrorCode = "AUTH-001"
	ErrCodeAuthNoSession  ErrorCode = "AUTH-002"
	ErrCodeAuthRoleDenied ErrorCode = "AUTH-003"

	// Profile errors (PROFILE-001 to PROFILE-099)
	// A failed profile fetch does not imply an invalid token.
	ErrCodeProfileFetch ErrorCode = "PROFILE-001"

	// Commerce errors (COMMERCE-001 to COMMERCE-099)
	ErrCodeCommerceRejected ErrorCode = "COMMERCE-001"
	ErrCodeCommerceLoad     ErrorCode = "COMMERCE-002"
	ErrCodeCommerceExport   ErrorCode = "COMMERCE-003"

	// Network errors (NETWORK-001 to NETWORK-099)
	ErrCodeNetworkTransport ErrorCode = "NETWORK-001"
	ErrCodeNetworkDecode    ErrorCode = "NETWORK-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
)

// OutletError represents an error with a stable code, a user-facing message,
// and, for server-rejected operations, the HTTP status the server answered with.
type OutletError struct {
	Code    ErrorCode
	Message string
	Status  int
	Cause   error
}

// Error implements the error interface
func (e *OutletError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *OutletError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message alone, without the code prefix.
// Inline alerts render this; logs render Error().
func (e *OutletError) UserMessage() string {
	return e.Message
}

// New creates a new OutletError
func New(code ErrorCode, message string) *OutletError {
	return &OutletError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new OutletError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *OutletError {
	return &OutletError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithStatus attaches the HTTP status the server responded with
func (e *OutletError) WithStatus(status int) *OutletError {
	e.Status = status
	return e
}

// Constructors for the error taxonomy

// NewValidationError creates a client-side input validation error.
func NewValidationError(message string) *OutletError {
	return New(ErrCodeValidationField, message)
}

// NewAuthError creates a login-rejection error carrying the server's message.
func NewAuthError(message string, status int) *OutletError {
	return New(ErrCodeAuthRejected, message).WithStatus(status)
}

// NewProfileFetchError wraps a failed profile reconciliation.
func NewProfileFetchError(cause error) *OutletError {
	return Wrap(ErrCodeProfileFetch, "Failed to fetch profile", cause)
}

// NewCommerceError creates a server-rejected commerce error. The message is
// the server-supplied reason when available.
func NewCommerceError(message string, status int) *OutletError {
	return New(ErrCodeCommerceRejected, message).WithStatus(status)
}

// NewNetworkError wraps a transport failure with a generic user message.
func NewNetworkError(cause error) *OutletError {
	return Wrap(ErrCodeNetworkTransport, "Unexpected error", cause)
}

// Category predicates

// IsValidation reports whether err is a client-detected input error.
func IsValidation(err error) bool { return hasPrefix(err, "VALIDATION-") }

// IsAuth reports whether err is a login or role rejection.
func IsAuth(err error) bool { return hasPrefix(err, "AUTH-") }

// IsProfileFetch reports whether err is a failed profile reconciliation.
func IsProfileFetch(err error) bool { return hasPrefix(err, "PROFILE-") }

// IsCommerce reports whether err is a server-rejected commerce operation.
func IsCommerce(err error) bool { return hasPrefix(err, "COMMERCE-") }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return hasPrefix(err, "NETWORK-") }

func hasPrefix(err error, prefix string) bool {
	var oe *OutletError
	if !errors.As(err, &oe) {
		return false
	}
	code := string(oe.Code)
	return len(code) >= len(prefix) && code[:len(prefix)] == prefix
}

// MessageOf extracts the user-facing message from any error. Server-supplied
// reasons pass through; everything else collapses to the generic sentinel.
func MessageOf(err error) string {
	var oe *OutletError
	if errors.As(err, &oe) {
		return oe.UserMessage()
	}
	return "Unexpected error"
}
