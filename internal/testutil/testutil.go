// Package testutil provides test utilities for integration tests
package testutil

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/firefly-engineering/gosandbox/internal/app"
	"github.com/firefly-engineering/gosandbox/internal/ref"
	"github.com/firefly-engineering/gosandbox/internal/system"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// TestEnv holds the test environment
type TestEnv struct {
	T         *testing.T
	TmpDir    string
	Workspace string
	Exec      *system.MockExecutor
	Stdout    *bytes.Buffer
	Stderr    *bytes.Buffer
	App       *app.App

	// FetchErr, when set, makes every simulated fetch fail after leaving a
	// partial checkout behind.
	FetchErr error

	// ShellErr is returned by every simulated shell run.
	ShellErr error

	// ShellOutput is written to the shell's stdout.
	ShellOutput string

	mu          sync.Mutex
	importRoots map[string]string

	cleanup func()
}

// NewTestEnv creates a new test environment backed by a temporary
// WORKSPACE on the real filesystem, a mock executor that simulates clones
// and shells, and a local server answering go-import lookups for any host.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	ws := filepath.Join(tmpDir, "workspace")
	home := filepath.Join(tmpDir, "home")

	for _, dir := range []string{ws, home} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	env := &TestEnv{
		T:         t,
		TmpDir:    tmpDir,
		Workspace: ws,
		Exec:      system.NewMockExecutor(),
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},

		importRoots: make(map[string]string),
	}
	env.Exec.OnRun = env.simulate
	env.Exec.AddBinary("git", "/usr/bin/git")

	srv := httptest.NewServer(http.HandlerFunc(env.serveGoImport))
	t.Cleanup(srv.Close)
	client := &http.Client{Transport: hostRewriter{addr: srv.Listener.Addr().String()}}

	env.App = app.New(
		app.WithExecutor(env.Exec),
		app.WithEnviron([]string{
			"HOME=" + home,
			"PATH=/usr/bin:/bin",
			"WORKSPACE=" + ws,
			"SHELL=/bin/sh",
		}),
		app.WithStdio(strings.NewReader(""), env.Stdout, env.Stderr),
		app.WithHTTPClient(client),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(env.App)
	env.cleanup = func() {
		app.SetDefault(originalDefault)
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// SetEnv sets a variable in the app's environment
func (e *TestEnv) SetEnv(key, value string) {
	e.App.Environ = system.SetEnv(e.App.Environ, key, value)
}

// UnsetEnv removes a variable from the app's environment
func (e *TestEnv) UnsetEnv(key string) {
	var out []string
	for _, kv := range e.App.Environ {
		if !strings.HasPrefix(kv, key+"=") {
			out = append(out, kv)
		}
	}
	e.App.Environ = out
}

// Layout returns the layout of a reference in the test workspace
func (e *TestEnv) Layout(input string) workspace.Layout {
	e.T.Helper()

	d, err := ref.Classify(input)
	if err != nil {
		e.T.Fatalf("Failed to classify %q: %v", input, err)
	}
	return workspace.Resolve(d, e.Workspace)
}

// AddWorkspace creates an already-fetched workspace for a reference
func (e *TestEnv) AddWorkspace(input string) workspace.Layout {
	e.T.Helper()

	layout := e.Layout(input)
	if err := os.MkdirAll(filepath.Join(layout.PackageRoot, ".git"), 0755); err != nil {
		e.T.Fatalf("Failed to create workspace: %v", err)
	}
	return layout
}

// WorkspaceExists checks if the package root of a reference exists
func (e *TestEnv) WorkspaceExists(input string) bool {
	info, err := os.Stat(e.Layout(input).PackageRoot)
	return err == nil && info.IsDir()
}

// Fetches returns the clone commands that ran
func (e *TestEnv) Fetches() []system.Command {
	var out []system.Command
	for _, c := range e.Exec.Commands {
		if isClient(c.Name) && !isQuery(c) {
			out = append(out, c)
		}
	}
	return out
}

// Shells returns the shell commands that ran
func (e *TestEnv) Shells() []system.Command {
	var out []system.Command
	for _, c := range e.Exec.Commands {
		if !isClient(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

func isClient(name string) bool {
	switch name {
	case "git", "gh", "hub", "hg":
		return true
	}
	return false
}

// isQuery reports a read-only git call such as the status age lookup.
func isQuery(c system.Command) bool {
	return len(c.Args) > 0 && c.Args[0] == "-C"
}

// SetImportRoot makes go-import lookups under prefix answer with the given
// repository. Other import paths are served as their own git repository at
// https://<importpath>.
func (e *TestEnv) SetImportRoot(prefix, vcs, url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.importRoots[prefix] = vcs + " " + url
}

func (e *TestEnv) serveGoImport(w http.ResponseWriter, r *http.Request) {
	path := r.Host + r.URL.Path
	content := path + " git https://" + path

	e.mu.Lock()
	best := ""
	for prefix, repo := range e.importRoots {
		if (path == prefix || strings.HasPrefix(path, prefix+"/")) && len(prefix) > len(best) {
			best = prefix
			content = prefix + " " + repo
		}
	}
	e.mu.Unlock()

	fmt.Fprintf(w, "<html><head><meta name=\"go-import\" content=\"%s\"></head></html>\n", content)
}

// hostRewriter sends every request to the local server and keeps the Host
// header of the original URL.
type hostRewriter struct {
	addr string
}

func (h hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = "http"
	req.URL.Host = h.addr
	return http.DefaultTransport.RoundTrip(req)
}

func (e *TestEnv) simulate(cmd system.Command) error {
	if !isClient(cmd.Name) {
		if cmd.Stdout != nil && e.ShellOutput != "" {
			_, _ = cmd.Stdout.Write([]byte(e.ShellOutput))
		}
		return e.ShellErr
	}
	dest := cmd.Args[len(cmd.Args)-1]

	if err := os.MkdirAll(filepath.Join(dest, ".git"), 0755); err != nil {
		return err
	}
	return e.FetchErr
}
