// Package workspace places, fetches and discovers isolated GOPATH
// workspaces.
//
// # Layout
//
// Every classified reference maps to one directory under the workspace
// root:
//
//	<workspace>/gopath-<name>/                 Layout.RootDir (the GOPATH)
//	<workspace>/gopath-<name>/src/<importpath> Layout.PackageRoot
//
// where <name> is the repository name for GitHub references and the
// sanitized import path for generic ones:
//
//	pkg/errors                -> gopath-errors/src/github.com/pkg/errors
//	labix.org/mgo.v1          -> gopath-labix-org-mgo-v1/src/labix.org/mgo.v1
//
// Resolve is pure; it never touches the filesystem.
//
// # Fetchers
//
// The Fetcher interface abstracts how sources are acquired:
//
//	type Fetcher interface {
//	    Name() string                                    // "gh", "git", "go-git", "go-import"
//	    Fetch(ctx context.Context, req FetchRequest) error
//	}
//
// Ensurer.Select picks one per reference:
//
//   - generic import paths: ImportPathFetcher, which reads the go-import
//     meta tag at https://<importpath>?go-get=1 and clones the repository
//     root it names into src/<prefix> with git (or hg)
//   - GitHub references: the preferred client (gh or hub) when installed,
//     then the git CLI, then an in-process go-git clone
//
// # Fetch If Absent
//
// Ensurer.EnsurePresent returns immediately when the package root exists.
// Otherwise it creates the root directory, takes an exclusive flock on it,
// re-checks, and fetches exactly once. The lock only prevents a double
// fetch: an invocation that finds the package root already present does not
// wait for a clone that is still running. A failed fetch removes the
// directories it created so that the next invocation retries from scratch;
// anything that was already at the package root path is left alone.
//
// # Discovery
//
// Discover inverts the layout to list existing workspaces:
//
//	entries, err := workspace.Discover(fs, cfg.Workspace)
//	for _, e := range entries {
//	    fmt.Println(e.Name, e.Ref, e.Layout.PackageRoot)
//	}
package workspace
