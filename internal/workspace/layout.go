package workspace

import (
	"path/filepath"

	"github.com/firefly-engineering/gosandbox/internal/config"
	"github.com/firefly-engineering/gosandbox/internal/ref"
)

// Layout is the on-disk placement of one isolated workspace.
type Layout struct {
	// RootDir is the GOPATH of the workspace: <workspace>/gopath-<name>.
	RootDir string

	// PackageRoot is where the package sources live: RootDir/src/<import path>.
	PackageRoot string
}

// BinDir returns the directory prepended to PATH.
func (l Layout) BinDir() string {
	return filepath.Join(l.RootDir, "bin")
}

// SrcDir returns the GOPATH src directory.
func (l Layout) SrcDir() string {
	return filepath.Join(l.RootDir, "src")
}

// Resolve derives the layout for d under workspaceRoot. It is a pure
// function: no filesystem access, and the same inputs always give the same
// paths.
func Resolve(d ref.Descriptor, workspaceRoot string) Layout {
	root := filepath.Join(workspaceRoot, config.RootDirPrefix+d.WorkspaceName())
	return Layout{
		RootDir:     root,
		PackageRoot: filepath.Join(root, "src", filepath.FromSlash(d.ImportPath())),
	}
}
