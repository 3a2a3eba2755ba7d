// Package exitcode maps CLI outcomes to process exit codes.
package exitcode

import (
	"os"

	"github.com/primarytix/outlet/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates rejected user input
	ValidationError = 3

	// AuthError indicates an authentication or role failure
	AuthError = 4

	// ProfileError indicates the profile fetch failed
	ProfileError = 5

	// CommerceError indicates the server rejected a commerce request
	CommerceError = 6

	// NetworkError indicates a transport-level failure
	NetworkError = 7

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.IsValidation(err):
		return ValidationError
	case errors.IsAuth(err):
		return AuthError
	case errors.IsProfileFetch(err):
		return ProfileError
	case errors.IsCommerce(err):
		return CommerceError
	case errors.IsNetwork(err):
		return NetworkError
	default:
		return GeneralError
	}
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "success"
	case GeneralError:
		return "general error"
	case UsageError:
		return "usage error"
	case ValidationError:
		return "validation error"
	case AuthError:
		return "authentication error"
	case ProfileError:
		return "profile fetch error"
	case CommerceError:
		return "commerce error"
	case NetworkError:
		return "network error"
	default:
		return "unknown"
	}
}
