package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/firefly-engineering/gosandbox/internal/logging"
)

// ImportPathFetcher fetches a generic import path. The repository root
// comes from the path's go-import meta tag, and the repository is cloned
// into the matching directory under src, so the package ends up where a
// GOPATH build looks for it.
type ImportPathFetcher struct {
	Resolver *ImportResolver

	// Cloner returns the fetcher for a repository of the given VCS.
	Cloner func(vcs string) (Fetcher, error)
}

func (f *ImportPathFetcher) Name() string {
	return "go-import"
}

// RepoDest returns the directory a repository rooted at prefix is cloned
// into.
func RepoDest(rootDir, prefix string) string {
	return filepath.Join(rootDir, "src", filepath.FromSlash(prefix))
}

func (f *ImportPathFetcher) Fetch(ctx context.Context, req FetchRequest) error {
	if req.ImportPath == "" {
		return fmt.Errorf("go-import: no import path")
	}

	root, err := f.Resolver.Resolve(ctx, req.ImportPath)
	if err != nil {
		return err
	}
	logging.Debug("resolved import path", "import_path", req.ImportPath, "prefix", root.Prefix, "vcs", root.VCS, "repo", root.URL)

	cloner, err := f.Cloner(root.VCS)
	if err != nil {
		return fmt.Errorf("%s: %w", req.ImportPath, err)
	}
	return cloner.Fetch(ctx, FetchRequest{
		URL:        root.URL,
		ImportPath: root.Prefix,
		RootDir:    req.RootDir,
		Dest:       RepoDest(req.RootDir, root.Prefix),
	})
}
