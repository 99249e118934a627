// Package testutil provides a test environment and fixtures.
//
// # Test Environment
//
// NewTestEnv builds a temporary WORKSPACE on the real filesystem, a mock
// executor that simulates fetches and shells, and an app.App wired to both.
// The app is installed as app.Default for the duration of the test:
//
//	env := testutil.NewTestEnv(t)
//	env.AddWorkspace("pkg/errors")          // pre-fetched workspace
//	env.FetchErr = errors.New("offline")    // make fetches fail
//	env.ShellErr = &system.ExitError{Code: 7}
//
//	// run the command under test, then inspect
//	env.Fetches()   // git/gh/hub/go invocations
//	env.Shells()    // shell invocations
//	env.Stdout.String()
//
// # Fixtures
//
// TOML config fixtures are embedded using go:embed:
//
//	fixtures/valid_config.toml
//	fixtures/force_git_config.toml
//	fixtures/invalid_client_config.toml
//	fixtures/unknown_key_config.toml
//
// WriteFixture copies one into a directory for config.Load or --config:
//
//	path := testutil.WriteFixture(t, t.TempDir(), testutil.ValidConfig)
package testutil
