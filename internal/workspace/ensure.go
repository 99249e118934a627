package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/logging"
	"github.com/firefly-engineering/gosandbox/internal/ref"
	"github.com/firefly-engineering/gosandbox/internal/system"
)

// Ensurer makes sure a workspace's package root exists, fetching it at most
// once.
type Ensurer struct {
	FS   system.FileSystem
	Exec system.CommandExecutor

	// Client is the preferred clone client for GitHub references ("gh",
	// "hub"), or "" to go straight to git.
	Client string

	// Environ is the environment handed to fetch children.
	Environ []string
	Stdin   io.Reader

	// Output receives fetch progress. The CLI points it at stderr so that
	// quiet-mode stdout stays machine-readable.
	Output io.Writer

	// Lock serializes fetches into the same root directory. It only prevents
	// a double fetch: an invocation that finds the package root already
	// present skips the lock and may see a clone still in progress.
	Lock func(dir string) (func(), error)

	// Resolver maps generic import paths to repositories.
	Resolver *ImportResolver
}

// NewEnsurer creates an Ensurer backed by the real OS.
func NewEnsurer(client string) *Ensurer {
	return &Ensurer{
		FS:       system.DefaultFS(),
		Exec:     system.DefaultExecutor(),
		Client:   client,
		Environ:  os.Environ(),
		Stdin:    os.Stdin,
		Output:   os.Stderr,
		Lock:     LockDir,
		Resolver: &ImportResolver{},
	}
}

// EnsurePresent fetches d into layout unless its package root already
// exists. On failure whatever the fetch created is removed and the error
// carries the fetch-failed exit code.
func (e *Ensurer) EnsurePresent(ctx context.Context, d ref.Descriptor, layout Layout) error {
	if e.FS.IsDir(layout.PackageRoot) {
		logging.Debug("workspace present", "package_root", layout.PackageRoot)
		return nil
	}

	if err := e.FS.MkdirAll(layout.RootDir, 0755); err != nil {
		return errors.FetchFailed(d.String(), fmt.Errorf("failed to create %s: %w", layout.RootDir, err))
	}

	unlock, err := e.lock(layout.RootDir)
	if err != nil {
		return errors.FetchFailed(d.String(), err)
	}
	defer unlock()

	// Another invocation may have finished the fetch while we waited.
	if e.FS.IsDir(layout.PackageRoot) {
		logging.Debug("workspace fetched concurrently", "package_root", layout.PackageRoot)
		return nil
	}

	if err := CheckContained(layout, d.ImportPath()); err != nil {
		return errors.FetchFailed(d.String(), err)
	}

	created := e.missingTop(layout)
	fetcher := e.Select(d)
	req := FetchRequest{
		URL:        d.CloneURL(),
		ImportPath: d.ImportPath(),
		RootDir:    layout.RootDir,
		Dest:       layout.PackageRoot,
	}

	logging.Debug("fetching", "ref", d.String(), "fetcher", fetcher.Name(), "dest", req.Dest)
	logging.UserInfo("Fetching %s with %s", d, fetcher.Name())

	if err := fetcher.Fetch(ctx, req); err != nil {
		e.cleanup(created)
		return errors.FetchFailed(d.String(), err)
	}
	if !e.FS.IsDir(layout.PackageRoot) {
		e.cleanup(created)
		return errors.FetchFailed(d.String(), fmt.Errorf("%s did not create %s", fetcher.Name(), layout.PackageRoot))
	}

	logging.UserSuccess("Fetched %s into %s", d, layout.PackageRoot)
	return nil
}

// Select picks the fetcher for d: go-import resolution for generic paths;
// for GitHub references the preferred client if installed, then git, then
// go-git.
func (e *Ensurer) Select(d ref.Descriptor) Fetcher {
	if !d.Kind.IsGitHub() {
		resolver := e.Resolver
		if resolver == nil {
			resolver = &ImportResolver{}
		}
		return &ImportPathFetcher{Resolver: resolver, Cloner: e.cloner}
	}

	if e.Client != "" {
		if _, err := e.Exec.LookPath(e.Client); err == nil {
			return CLI(e.Client, e.Exec, e.Environ, e.Stdin, e.Output)
		}
		logging.Debug("preferred client not installed", "client", e.Client)
	}
	return e.gitFetcher()
}

// gitFetcher clones with the git binary, or in-process without one.
func (e *Ensurer) gitFetcher() Fetcher {
	if _, err := e.Exec.LookPath(ClientGit); err == nil {
		return CLI(ClientGit, e.Exec, e.Environ, e.Stdin, e.Output)
	}
	return &GoGitFetcher{Progress: e.Output}
}

// cloner returns the fetcher for a repository found through a go-import tag.
func (e *Ensurer) cloner(vcs string) (Fetcher, error) {
	switch vcs {
	case ClientGit:
		return e.gitFetcher(), nil
	case ClientHg:
		if _, err := e.Exec.LookPath(ClientHg); err != nil {
			return nil, fmt.Errorf("repository is hosted on hg, which is not installed")
		}
		return CLI(ClientHg, e.Exec, e.Environ, e.Stdin, e.Output), nil
	default:
		return nil, fmt.Errorf("unsupported version control system %q", vcs)
	}
}

func (e *Ensurer) lock(dir string) (func(), error) {
	if e.Lock == nil {
		return func() {}, nil
	}
	return e.Lock(dir)
}

// missingTop returns the topmost directory between the root directory and
// the package root that does not exist yet, which is what a fetch creates.
// It is "" when the package root path is already taken.
func (e *Ensurer) missingTop(layout Layout) string {
	top := ""
	prefix := layout.RootDir + string(filepath.Separator)
	for dir := layout.PackageRoot; strings.HasPrefix(dir, prefix) && !e.FS.Exists(dir); dir = filepath.Dir(dir) {
		top = dir
	}
	return top
}

// cleanup removes what a failed fetch created. Paths that existed before
// the fetch are left alone.
func (e *Ensurer) cleanup(created string) {
	if created == "" {
		return
	}
	if err := e.FS.RemoveAll(created); err != nil {
		logging.Warn("failed to remove partial fetch", "path", created, "error", err)
	}
}

// CheckContained verifies that the package root resolves inside the root
// directory even if a component of the path is a symlink.
func CheckContained(layout Layout, importPath string) error {
	joined, err := securejoin.SecureJoin(layout.RootDir, filepath.Join("src", filepath.FromSlash(importPath)))
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", layout.PackageRoot, err)
	}
	if joined != layout.PackageRoot {
		return fmt.Errorf("package root %s escapes %s (resolves to %s)", layout.PackageRoot, layout.RootDir, joined)
	}
	return nil
}
