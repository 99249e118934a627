// Package app provides the application context for gosandbox.
// It allows dependency injection for testing.
package app

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/firefly-engineering/gosandbox/internal/config"
	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/launch"
	"github.com/firefly-engineering/gosandbox/internal/system"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// App holds the application dependencies
type App struct {
	// FS is the filesystem used to inspect and prepare workspaces
	FS system.FileSystem

	// Exec runs fetch clients and launched shells
	Exec system.CommandExecutor

	// Environ is the caller environment; config and children derive from it
	Environ []string

	// Lock serializes fetches into one workspace root
	Lock func(dir string) (func(), error)

	// HTTPClient resolves go-import meta tags for generic import paths
	HTTPClient *http.Client

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Option is a function that configures the App
type Option func(*App)

// WithFS sets a custom filesystem
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Exec = exec
	}
}

// WithEnviron sets the caller environment
func WithEnviron(environ []string) Option {
	return func(a *App) {
		a.Environ = environ
	}
}

// WithLock sets the fetch lock
func WithLock(lock func(dir string) (func(), error)) Option {
	return func(a *App) {
		a.Lock = lock
	}
}

// WithHTTPClient sets the client used for go-import lookups
func WithHTTPClient(client *http.Client) Option {
	return func(a *App) {
		a.HTTPClient = client
	}
}

// WithStdio sets the standard streams
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.Stdin = stdin
		a.Stdout = stdout
		a.Stderr = stderr
	}
}

// New creates a new App with the given options.
// Anything not provided is backed by the real OS.
func New(opts ...Option) *App {
	app := &App{
		FS:         system.DefaultFS(),
		Exec:       system.DefaultExecutor(),
		Environ:    os.Environ(),
		Lock:       workspace.LockDir,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Getenv looks up key in the app's environment
func (a *App) Getenv(key string) string {
	return system.GetEnv(a.Environ, key)
}

// LoadConfig loads the effective configuration. path may be empty.
func (a *App) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path, a.Getenv)
	if err != nil {
		return nil, errors.ConfigError("failed to load config", err)
	}
	return cfg, nil
}

// Ensurer returns a workspace Ensurer wired to the app. Fetch output goes to
// stderr.
func (a *App) Ensurer(cfg *config.Config) *workspace.Ensurer {
	return &workspace.Ensurer{
		FS:       a.FS,
		Exec:     a.Exec,
		Client:   cfg.Client(),
		Environ:  a.Environ,
		Stdin:    a.Stdin,
		Output:   a.Stderr,
		Lock:     a.Lock,
		Resolver: &workspace.ImportResolver{Client: a.HTTPClient},
	}
}

// Launcher returns a Launcher wired to the app
func (a *App) Launcher(cfg *config.Config) *launch.Launcher {
	return &launch.Launcher{
		Exec:    a.Exec,
		Shell:   cfg.Shell,
		Environ: a.Environ,
		Stdin:   a.Stdin,
		Stdout:  a.Stdout,
		Stderr:  a.Stderr,
	}
}

// Discover lists the workspaces under the configured workspace root
func (a *App) Discover(cfg *config.Config) ([]workspace.Entry, error) {
	return workspace.Discover(a.FS, cfg.Workspace)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
