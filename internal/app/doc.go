// Package app provides the application context for gosandbox.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    FS      system.FileSystem       // workspace inspection
//	    Exec    system.CommandExecutor  // fetch clients and shells
//	    Environ []string                // caller environment
//	    Lock    func(dir string) (func(), error)
//	    Stdin, Stdout, Stderr
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithFS(system.NewMockFS()),
//	    app.WithExecutor(system.NewMockExecutor()),
//	    app.WithEnviron([]string{"WORKSPACE=/ws", "SHELL=/bin/sh"}),
//	)
//
// # Wiring
//
// The App builds the per-invocation components from a loaded config:
//
//	cfg, err := a.LoadConfig(configPath)
//	err = a.Ensurer(cfg).EnsurePresent(ctx, d, layout)
//	code, err := a.Launcher(cfg).Launch(ctx, layout, mode, command)
package app
