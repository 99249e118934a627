package errors

import (
	"errors"
	"fmt"
)

// Exit codes for gosandbox
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsage        = 1
	ExitInvalidRef   = 1
	ExitConfigError  = 1
	ExitFetchFailed  = 2
	ExitLaunchFailed = 3
)

// SandboxError is the base error type for gosandbox
type SandboxError struct {
	Code    int
	Message string
	Cause   error
}

func (e *SandboxError) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SandboxError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SandboxError) ExitCode() int {
	return e.Code
}

// New creates a new SandboxError
func New(code int, message string) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SandboxError
func Wrap(code int, message string, cause error) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// UsageError returns an error for bad flags or arguments
func UsageError(message string) *SandboxError {
	return New(ExitUsage, message)
}

// ClassificationFailed returns an error for an unrecognized repository reference
func ClassificationFailed(cause error) *SandboxError {
	return Wrap(ExitInvalidRef, "", cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *SandboxError {
	return Wrap(ExitConfigError, message, cause)
}

// FetchFailed returns an error for a failed clone or go get
func FetchFailed(target string, cause error) *SandboxError {
	return Wrap(ExitFetchFailed, fmt.Sprintf("fetch %s failed", target), cause)
}

// LaunchFailed returns an error for a shell or command that could not be started
func LaunchFailed(message string, cause error) *SandboxError {
	return Wrap(ExitLaunchFailed, message, cause)
}

// Exit returns an error that only carries an exit code. main prints nothing
// for it; used to propagate a child's exit status and for -h.
func Exit(code int) *SandboxError {
	return New(code, "")
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var sandboxErr *SandboxError
	if errors.As(err, &sandboxErr) {
		return sandboxErr.ExitCode()
	}
	return ExitGeneralError
}

// IsSilent reports whether err carries no message worth printing.
func IsSilent(err error) bool {
	var sandboxErr *SandboxError
	if errors.As(err, &sandboxErr) {
		return sandboxErr.Message == "" && sandboxErr.Cause == nil
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
