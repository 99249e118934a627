// Package workspace resolves, fetches and discovers isolated GOPATH workspaces.
package workspace

import (
	"context"
)

// FetchRequest describes one fetch into a workspace.
type FetchRequest struct {
	// URL is the clone URL.
	URL string

	// ImportPath is the import path being fetched.
	ImportPath string

	// RootDir is the workspace GOPATH.
	RootDir string

	// Dest is the package root the sources must end up in.
	Dest string
}

// Fetcher acquires package sources for a workspace
type Fetcher interface {
	// Name returns the fetcher name (e.g., "git", "gh", "go-git", "go-import")
	Name() string

	// Fetch places the sources at req.Dest. It is attempted once; a
	// non-nil error means the workspace must be treated as absent.
	Fetch(ctx context.Context, req FetchRequest) error
}
