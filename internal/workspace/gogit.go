package workspace

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
)

// GoGitFetcher clones in-process when no git binary is installed.
type GoGitFetcher struct {
	// Progress receives the remote's sideband progress messages.
	Progress io.Writer
}

func (f *GoGitFetcher) Name() string {
	return "go-git"
}

func (f *GoGitFetcher) Fetch(ctx context.Context, req FetchRequest) error {
	if req.URL == "" {
		return fmt.Errorf("go-git: no clone URL")
	}

	_, err := git.PlainCloneContext(ctx, req.Dest, false, &git.CloneOptions{
		URL:      req.URL,
		Progress: f.Progress,
	})
	if err != nil {
		return fmt.Errorf("go-git clone %s: %w", req.URL, err)
	}
	return nil
}
