package workspace

import (
	"context"
	"fmt"
	"io"

	"github.com/firefly-engineering/gosandbox/internal/system"
)

// Clone clients understood by CLIFetcher.
const (
	ClientGit = "git"
	ClientGH  = "gh"
	ClientHub = "hub"
	ClientHg  = "hg"
)

// CLIFetcher clones with an external command-line client (git, gh, hub
// or hg).
type CLIFetcher struct {
	// Client is the binary to run.
	Client string

	Exec    system.CommandExecutor
	Environ []string
	Stdin   io.Reader

	// Output receives the client's stdout and stderr.
	Output io.Writer
}

// CLI returns a CLIFetcher for the given client.
func CLI(client string, exec system.CommandExecutor, environ []string, stdin io.Reader, output io.Writer) Fetcher {
	return &CLIFetcher{Client: client, Exec: exec, Environ: environ, Stdin: stdin, Output: output}
}

func (f *CLIFetcher) Name() string {
	return f.Client
}

// Args returns the client arguments for cloning url into dest.
func (f *CLIFetcher) Args(url, dest string) []string {
	if f.Client == ClientGH {
		return []string{"repo", "clone", url, dest}
	}
	// git, hub and hg share the clone syntax
	return []string{"clone", url, dest}
}

func (f *CLIFetcher) Fetch(ctx context.Context, req FetchRequest) error {
	if req.URL == "" {
		return fmt.Errorf("%s: no clone URL", f.Client)
	}

	err := f.Exec.Run(ctx, system.Command{
		Name:   f.Client,
		Args:   f.Args(req.URL, req.Dest),
		Env:    f.Environ,
		Stdin:  f.Stdin,
		Stdout: f.Output,
		Stderr: f.Output,
	})
	if err != nil {
		return fmt.Errorf("%s clone %s: %w", f.Client, req.URL, err)
	}
	return nil
}
