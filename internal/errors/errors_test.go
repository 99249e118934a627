package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSandboxError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *SandboxError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
		{
			name:    "cause only",
			err:     Wrap(ExitInvalidRef, "", fmt.Errorf("invalid reference")),
			wantMsg: "invalid reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestSandboxError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("exit status 128")

	tests := []struct {
		name     string
		err      *SandboxError
		wantCode int
		wantMsg  string
	}{
		{"usage", UsageError("missing REPO"), ExitUsage, "missing REPO"},
		{"classification", ClassificationFailed(cause), ExitInvalidRef, "exit status 128"},
		{"config", ConfigError("failed to parse config", cause), ExitConfigError, "failed to parse config: exit status 128"},
		{"fetch", FetchFailed("pkg/errors", cause), ExitFetchFailed, "fetch pkg/errors failed: exit status 128"},
		{"launch", LaunchFailed("SHELL is not set", nil), ExitLaunchFailed, "SHELL is not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "SandboxError",
			err:      FetchFailed("x", fmt.Errorf("boom")),
			wantCode: ExitFetchFailed,
		},
		{
			name:     "wrapped SandboxError",
			err:      fmt.Errorf("outer: %w", LaunchFailed("spawn", nil)),
			wantCode: ExitLaunchFailed,
		},
		{
			name:     "propagated exit",
			err:      Exit(7),
			wantCode: 7,
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("some error"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestIsSilent(t *testing.T) {
	if !IsSilent(Exit(1)) {
		t.Error("Exit(1) should be silent")
	}
	if IsSilent(UsageError("missing REPO")) {
		t.Error("UsageError should not be silent")
	}
	if IsSilent(fmt.Errorf("plain")) {
		t.Error("plain errors should not be silent")
	}
}

func TestErrorChaining(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := Wrap(ExitConfigError, "config error", root)
	outer := fmt.Errorf("operation failed: %w", middle)

	if !errors.Is(outer, root) {
		t.Error("errors.Is should find root cause")
	}

	var sandboxErr *SandboxError
	if !As(outer, &sandboxErr) {
		t.Fatal("As should find SandboxError")
	}
	if sandboxErr.Code != ExitConfigError {
		t.Errorf("Code = %d, want %d", sandboxErr.Code, ExitConfigError)
	}
	if !Is(outer, root) {
		t.Error("Is should find root cause")
	}
}
