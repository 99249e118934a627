// Package logging provides logging utilities for gosandbox.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("resolved workspace", "root", layout.RootDir)
//	logging.Warn("shell exited", "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Cloning %s...", url)
//	logging.UserSuccess("Workspace ready at %s", layout.PackageRoot)
//	logging.UserWarning("FORCE_GIT set, skipping %s", client)
//	logging.UserError("%v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// SetUserOutput redirects both streams; quiet mode sends user output to
// stderr so stdout stays consumable by eval.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
