package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/gosandbox/internal/app"
	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/launch"
	"github.com/firefly-engineering/gosandbox/internal/logging"
	"github.com/firefly-engineering/gosandbox/internal/system"
	"github.com/firefly-engineering/gosandbox/internal/testutil"
)

// run executes the command line against the test environment's app.
func run(t *testing.T, env *testutil.TestEnv, args ...string) error {
	t.Helper()
	t.Cleanup(logging.ResetUserOutput)
	return execute(context.Background(), env.App, args)
}

func TestHelp(t *testing.T) {
	env := testutil.NewTestEnv(t)

	err := run(t, env, "-h")
	if got := errors.GetExitCode(err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
	if !errors.IsSilent(err) {
		t.Errorf("help should exit without a message, got %v", err)
	}
	if !strings.Contains(env.Stdout.String(), "Usage:") {
		t.Errorf("usage should be printed to stdout, got %q", env.Stdout.String())
	}
	if len(env.Exec.Commands) != 0 {
		t.Error("help must not run anything")
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing repo", nil, "missing REPO"},
		{"extra positional", []string{"pkg/errors", "go", "test"}, `unexpected argument "go"`},
		{"unknown flag", []string{"--bogus", "pkg/errors"}, "unknown flag: --bogus"},
		{"unknown shorthand", []string{"-x", "pkg/errors"}, "unknown shorthand flag"},
		{"list with repo", []string{"--list", "pkg/errors"}, "take no arguments"},
		{"pick with command", []string{"--pick", "--", "ls"}, "take no arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnv(t)

			err := run(t, env, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.GetExitCode(err); got != errors.ExitUsage {
				t.Errorf("exit code = %d, want %d", got, errors.ExitUsage)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
			if len(env.Exec.Commands) != 0 {
				t.Error("usage errors must have no side effects")
			}
		})
	}
}

func TestUnknownFlagHint(t *testing.T) {
	env := testutil.NewTestEnv(t)

	err := run(t, env, "--bogus")
	if err == nil || !strings.Contains(err.Error(), "gosandbox -h") {
		t.Errorf("error = %v, want a pointer to -h", err)
	}
}

func TestInvalidReference(t *testing.T) {
	env := testutil.NewTestEnv(t)

	err := run(t, env, "not a valid ref")
	if got := errors.GetExitCode(err); got != errors.ExitInvalidRef {
		t.Errorf("exit code = %d, want %d", got, errors.ExitInvalidRef)
	}
	if !strings.Contains(err.Error(), "invalid repository reference") {
		t.Errorf("error = %v", err)
	}
	if len(env.Exec.Commands) != 0 {
		t.Error("classification errors must have no side effects")
	}
}

func TestQuiet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	layout := env.Layout("pkg/errors")

	if err := run(t, env, "-q", "pkg/errors"); err != nil {
		t.Fatalf("run error: %v", err)
	}

	if diff := cmp.Diff(launch.QuietScript(layout), env.Stdout.String()); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if lines := strings.Count(env.Stdout.String(), "\n"); lines != 3 {
		t.Errorf("stdout has %d lines, want 3", lines)
	}
	if got := len(env.Fetches()); got != 1 {
		t.Errorf("fetches = %d, want 1", got)
	}
	if got := len(env.Shells()); got != 0 {
		t.Errorf("quiet mode spawned %d shells", got)
	}
	if !strings.Contains(env.Stderr.String(), "Fetching pkg/errors") {
		t.Errorf("fetch notice should go to stderr, got %q", env.Stderr.String())
	}
}

func TestExecuteUsesGivenApp(t *testing.T) {
	env := testutil.NewTestEnv(t)

	var decoyOut, decoyErr bytes.Buffer
	decoyExec := system.NewMockExecutor()
	app.SetDefault(app.New(
		app.WithExecutor(decoyExec),
		app.WithEnviron([]string{"HOME=" + t.TempDir(), "WORKSPACE=" + t.TempDir()}),
		app.WithStdio(strings.NewReader(""), &decoyOut, &decoyErr),
	))

	if err := run(t, env, "-q", "pkg/errors"); err != nil {
		t.Fatalf("run error: %v", err)
	}

	if !env.WorkspaceExists("pkg/errors") {
		t.Error("workspace should be created under the given app's WORKSPACE")
	}
	if env.Stdout.Len() == 0 {
		t.Error("setup lines should go to the given app's stdout")
	}
	if len(decoyExec.Commands) != 0 || decoyOut.Len() != 0 || decoyErr.Len() != 0 {
		t.Errorf("default app was used: commands=%v stdout=%q stderr=%q", decoyExec.Commands, decoyOut.String(), decoyErr.String())
	}
}

func TestFetchOnce(t *testing.T) {
	env := testutil.NewTestEnv(t)

	for i := 0; i < 3; i++ {
		if err := run(t, env, "-q", "pkg/errors"); err != nil {
			t.Fatalf("run #%d error: %v", i, err)
		}
	}

	fetches := env.Fetches()
	if len(fetches) != 1 {
		t.Fatalf("fetches = %d, want 1", len(fetches))
	}
	want := []string{"clone", "https://github.com/pkg/errors.git", env.Layout("pkg/errors").PackageRoot}
	if diff := cmp.Diff(want, fetches[0].Args); diff != "" {
		t.Errorf("clone args mismatch (-want +got):\n%s", diff)
	}
}

func TestReferenceForms(t *testing.T) {
	tests := []struct {
		input   string
		wantCmd string
		wantArg string
	}{
		{"pkg/errors", "git", "https://github.com/pkg/errors.git"},
		{"git@github.com:ahmetb/govvv.git", "git", "git@github.com:ahmetb/govvv.git"},
		{"https://github.com/pkg/errors.git", "git", "https://github.com/pkg/errors.git"},
		{"labix.org/mgo.v1", "git", "https://labix.org/mgo.v1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env := testutil.NewTestEnv(t)

			if err := run(t, env, "-q", tt.input); err != nil {
				t.Fatalf("run error: %v", err)
			}

			fetches := env.Fetches()
			if len(fetches) != 1 {
				t.Fatalf("fetches = %d, want 1", len(fetches))
			}
			f := fetches[0]
			if f.Name != tt.wantCmd {
				t.Errorf("fetch command = %q, want %q", f.Name, tt.wantCmd)
			}
			if f.Args[len(f.Args)-1] != tt.wantArg && f.Args[1] != tt.wantArg {
				t.Errorf("fetch args = %v, want %q", f.Args, tt.wantArg)
			}
			if !env.WorkspaceExists(tt.input) {
				t.Error("package root should exist")
			}
		})
	}
}

func TestImportPathClone(t *testing.T) {
	env := testutil.NewTestEnv(t)
	layout := env.Layout("labix.org/mgo.v1")

	if err := run(t, env, "-q", "labix.org/mgo.v1"); err != nil {
		t.Fatalf("run error: %v", err)
	}

	f := env.Fetches()[0]
	if diff := cmp.Diff([]string{"clone", "https://labix.org/mgo.v1", layout.PackageRoot}, f.Args); diff != "" {
		t.Errorf("git args mismatch (-want +got):\n%s", diff)
	}
	if filepath.Base(layout.RootDir) != "gopath-labix-org-mgo-v1" {
		t.Errorf("RootDir = %q", layout.RootDir)
	}
}

func TestPreferredClient(t *testing.T) {
	tests := []struct {
		name     string
		forceGit bool
		want     string
	}{
		{"gh preferred", false, "gh"},
		{"forced to git", true, "git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnv(t)
			env.Exec.AddBinary("gh", "/usr/bin/gh")
			if tt.forceGit {
				env.SetEnv("FORCE_GIT", "1")
			}

			if err := run(t, env, "-q", "pkg/errors"); err != nil {
				t.Fatalf("run error: %v", err)
			}
			if got := env.Fetches()[0].Name; got != tt.want {
				t.Errorf("client = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Exec.AddBinary("gh", "/usr/bin/gh")
	env.Exec.AddBinary("hub", "/usr/bin/hub")
	path := testutil.WriteFixture(t, env.TmpDir, testutil.ValidConfig)

	if err := run(t, env, "--config", path, "-q", "pkg/errors"); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := env.Fetches()[0].Name; got != "hub" {
		t.Errorf("client = %q, want hub from the config file", got)
	}
	// WORKSPACE from the environment beats the file
	if !env.WorkspaceExists("pkg/errors") {
		t.Error("workspace should be created under $WORKSPACE")
	}
}

func TestConfigFileInvalid(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := testutil.WriteFixture(t, env.TmpDir, testutil.UnknownKeyConfig)

	err := run(t, env, "--config", path, "pkg/errors")
	if got := errors.GetExitCode(err); got != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", got, errors.ExitConfigError)
	}
	if len(env.Exec.Commands) != 0 {
		t.Error("config errors must have no side effects")
	}
}

func TestFetchFailure(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.FetchErr = fmt.Errorf("repository not found")

	err := run(t, env, "pkg/nope")
	if got := errors.GetExitCode(err); got != errors.ExitFetchFailed {
		t.Errorf("exit code = %d, want %d", got, errors.ExitFetchFailed)
	}
	if env.WorkspaceExists("pkg/nope") {
		t.Error("partial clone should be removed")
	}
	if got := len(env.Shells()); got != 0 {
		t.Error("no shell should start after a failed fetch")
	}
}

func TestCommandMode(t *testing.T) {
	env := testutil.NewTestEnv(t)
	layout := env.AddWorkspace("pkg/errors")

	if err := run(t, env, "pkg/errors", "--", "go", "test", "-v", "./..."); err != nil {
		t.Fatalf("run error: %v", err)
	}

	if got := len(env.Fetches()); got != 0 {
		t.Errorf("existing workspace should not be fetched, got %d fetches", got)
	}
	shells := env.Shells()
	if len(shells) != 1 {
		t.Fatalf("shells = %d, want 1", len(shells))
	}
	sh := shells[0]
	if sh.Name != "/bin/sh" {
		t.Errorf("shell = %q, want /bin/sh", sh.Name)
	}
	if diff := cmp.Diff([]string{"-c", "go test -v ./..."}, sh.Args); diff != "" {
		t.Errorf("shell args mismatch (-want +got):\n%s", diff)
	}
	if sh.Dir != layout.PackageRoot {
		t.Errorf("Dir = %q, want %q", sh.Dir, layout.PackageRoot)
	}
	if got := system.GetEnv(sh.Env, "GOPATH"); got != layout.RootDir {
		t.Errorf("GOPATH = %q, want %q", got, layout.RootDir)
	}
	if got := system.GetEnv(sh.Env, "PATH"); !strings.HasPrefix(got, layout.BinDir()+":") {
		t.Errorf("PATH = %q, want %s prepended", got, layout.BinDir())
	}
}

func TestCommandExitCode(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddWorkspace("pkg/errors")
	env.ShellErr = &system.ExitError{Code: 7}

	err := run(t, env, "pkg/errors", "--", "exit", "7")
	if got := errors.GetExitCode(err); got != 7 {
		t.Errorf("exit code = %d, want 7", got)
	}
	if !errors.IsSilent(err) {
		t.Errorf("a command's exit status should not print a message, got %v", err)
	}
}

func TestQuietBeatsCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddWorkspace("pkg/errors")

	if err := run(t, env, "-q", "pkg/errors", "--", "make"); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := len(env.Shells()); got != 0 {
		t.Errorf("quiet mode spawned %d shells", got)
	}
}

func TestInteractive(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		shellErr error
	}{
		{"clean exit", []string{"pkg/errors"}, nil},
		{"non-zero exit is informational", []string{"pkg/errors"}, &system.ExitError{Code: 130}},
		{"empty command after dash", []string{"pkg/errors", "--"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnv(t)
			env.AddWorkspace("pkg/errors")
			env.ShellErr = tt.shellErr

			if err := run(t, env, tt.args...); err != nil {
				t.Fatalf("run error: %v", err)
			}
			shells := env.Shells()
			if len(shells) != 1 || len(shells[0].Args) != 0 {
				t.Errorf("shells = %+v, want one bare interactive shell", shells)
			}
		})
	}
}

func TestNoShell(t *testing.T) {
	for _, args := range [][]string{{"pkg/errors"}, {"pkg/errors", "--", "ls"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			env := testutil.NewTestEnv(t)
			env.AddWorkspace("pkg/errors")
			env.UnsetEnv("SHELL")

			err := run(t, env, args...)
			if got := errors.GetExitCode(err); got != errors.ExitLaunchFailed {
				t.Errorf("exit code = %d, want %d", got, errors.ExitLaunchFailed)
			}
		})
	}
}

func TestNoShellQuiet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.UnsetEnv("SHELL")

	if err := run(t, env, "-q", "pkg/errors"); err != nil {
		t.Errorf("quiet mode does not need SHELL, got %v", err)
	}
}

func TestList(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddWorkspace("pkg/errors")
	env.AddWorkspace("labix.org/mgo.v1")

	if err := run(t, env, "--list"); err != nil {
		t.Fatalf("run error: %v", err)
	}

	out := env.Stdout.String()
	for _, want := range []string{"errors (pkg/errors)", "labix-org-mgo-v1 (labix.org/mgo.v1)", "Status: cloned"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output should contain %q:\n%s", want, out)
		}
	}
	if len(env.Fetches()) != 0 || len(env.Shells()) != 0 {
		t.Error("--list must not fetch or launch anything")
	}
}

func TestList_Empty(t *testing.T) {
	env := testutil.NewTestEnv(t)

	if err := run(t, env, "-l"); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(env.Stdout.String(), "No workspaces found") {
		t.Errorf("output = %q", env.Stdout.String())
	}
}

func TestPick_Empty(t *testing.T) {
	env := testutil.NewTestEnv(t)

	if err := run(t, env, "--pick"); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(env.Stdout.String(), "No workspaces found") {
		t.Errorf("output = %q", env.Stdout.String())
	}
}

func TestLaunchMode(t *testing.T) {
	tests := []struct {
		quiet   bool
		command []string
		want    launch.Mode
	}{
		{false, nil, launch.ModeInteractive},
		{false, []string{"ls"}, launch.ModeCommand},
		{true, nil, launch.ModeQuiet},
		{true, []string{"ls"}, launch.ModeQuiet},
	}

	for _, tt := range tests {
		if got := launchMode(tt.quiet, tt.command); got != tt.want {
			t.Errorf("launchMode(%v, %v) = %v, want %v", tt.quiet, tt.command, got, tt.want)
		}
	}
}
