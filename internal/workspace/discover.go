package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/firefly-engineering/gosandbox/internal/config"
	"github.com/firefly-engineering/gosandbox/internal/ref"
	"github.com/firefly-engineering/gosandbox/internal/system"
)

// Entry is a workspace found under the workspace root.
type Entry struct {
	// Name is the gopath-<name> suffix.
	Name string

	// Ref is the reference the workspace was created for. Its Kind is
	// KindUnknown when no package root could be matched to Name.
	Ref ref.Descriptor

	// Layout locates the workspace. PackageRoot is empty when Ref is unknown.
	Layout Layout
}

// Resolved reports whether the entry's package root was identified.
func (e Entry) Resolved() bool {
	return e.Ref.Kind != ref.KindUnknown
}

// Discover lists the workspaces under workspaceRoot, sorted by name. A
// missing workspace root yields no entries.
func Discover(fsys system.FileSystem, workspaceRoot string) ([]Entry, error) {
	dirEntries, err := fsys.ReadDir(workspaceRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workspace %s: %w", workspaceRoot, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if !de.IsDir() || !strings.HasPrefix(de.Name(), config.RootDirPrefix) {
			continue
		}
		name := strings.TrimPrefix(de.Name(), config.RootDirPrefix)
		if name == "" {
			continue
		}

		rootDir := filepath.Join(workspaceRoot, de.Name())
		entry := Entry{Name: name, Layout: Layout{RootDir: rootDir}}
		if d, ok := findPackage(fsys, rootDir, name); ok {
			entry.Ref = d
			entry.Layout = Resolve(d, workspaceRoot)
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// findPackage inverts Resolve for one root directory.
func findPackage(fsys system.FileSystem, rootDir, name string) (ref.Descriptor, bool) {
	src := filepath.Join(rootDir, "src")

	// GitHub references live at src/github.com/<owner>/<name>.
	owners := sortedDirs(fsys, filepath.Join(src, ref.GitHubHost))
	for _, owner := range owners {
		if fsys.IsDir(filepath.Join(src, ref.GitHubHost, owner, name)) {
			if d, err := ref.Classify("https://" + ref.GitHubHost + "/" + owner + "/" + name); err == nil {
				return d, true
			}
		}
	}

	// Generic paths: walk src, only descending where the sanitized
	// relative path is still a prefix of the name.
	queue := []string{""}
	for len(queue) > 0 {
		rel := queue[0]
		queue = queue[1:]

		for _, child := range sortedDirs(fsys, filepath.Join(src, filepath.FromSlash(rel))) {
			candidate := path.Join(rel, child)
			sanitized := ref.Sanitize(candidate)
			switch {
			case sanitized == name:
				if d, err := ref.Classify(candidate); err == nil && d.Kind == ref.GenericGoGet {
					return d, true
				}
			case strings.HasPrefix(name, sanitized+"-"):
				queue = append(queue, candidate)
			}
		}
	}

	return ref.Descriptor{}, false
}

func sortedDirs(fsys system.FileSystem, dir string) []string {
	dirEntries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, de := range dirEntries {
		if de.IsDir() {
			names = append(names, de.Name())
		}
	}
	slices.Sort(names)
	return names
}
