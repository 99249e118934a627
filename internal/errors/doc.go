// Package errors provides typed errors with exit codes for gosandbox.
//
// # Error Types
//
// SandboxError is the base error type that wraps an error with an exit code:
//
//	type SandboxError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess      = 0  // Success
//	ExitGeneralError = 1  // General/unknown errors
//	ExitUsage        = 1  // Bad flags or arguments
//	ExitInvalidRef   = 1  // Unrecognized repository reference
//	ExitConfigError  = 1  // Malformed configuration file
//	ExitFetchFailed  = 2  // Clone or go get failed
//	ExitLaunchFailed = 3  // Shell or command could not be started
//
// In command mode the exit status of the spawned command is propagated
// through Exit(code).
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
