package health

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/firefly-engineering/gosandbox/internal/system"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// Status represents the state of a workspace on disk
type Status string

const (
	StatusCloned  Status = "cloned"
	StatusPartial Status = "partial"
	StatusMissing Status = "missing"
)

// vcsDirs are the metadata directories that mark a complete checkout.
var vcsDirs = []struct {
	dir  string
	name string
}{
	{".git", "git"},
	{".hg", "hg"},
	{".bzr", "bzr"},
	{".svn", "svn"},
}

// commitTimeout bounds the git log call behind a workspace's age.
const commitTimeout = 5 * time.Second

// CheckResult contains the results of workspace checks
type CheckResult struct {
	RootExists     bool
	PackagePresent bool
	VCS            string
	// RepoRoot is the checkout holding the package. A go get subpackage
	// shares it with its parent packages.
	RepoRoot string
	Age      string
}

// DetectVCS returns the version control system of the checkout at dir, or
// "" if none is recognized.
func DetectVCS(fs system.FileSystem, dir string) string {
	for _, v := range vcsDirs {
		if fs.Exists(filepath.Join(dir, v.dir)) {
			return v.name
		}
	}
	return ""
}

// FindRepoRoot walks up from the package root to the workspace's src
// directory and returns the first directory carrying VCS metadata.
func FindRepoRoot(fs system.FileSystem, layout workspace.Layout) (dir, vcs string) {
	src := layout.SrcDir()
	for dir = layout.PackageRoot; dir != src && strings.HasPrefix(dir, src+string(filepath.Separator)); dir = filepath.Dir(dir) {
		if vcs = DetectVCS(fs, dir); vcs != "" {
			return dir, vcs
		}
	}
	return "", ""
}

// LastCommitAge returns how long ago the last commit of the git checkout at
// dir was made.
func LastCommitAge(ctx context.Context, exec system.CommandExecutor, dir string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, commitTimeout)
	defer cancel()

	out, err := exec.Execute(ctx, "git", "-C", dir, "log", "-1", "--format=%ct")
	if err != nil {
		return 0, fmt.Errorf("git log in %s: %w", dir, err)
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected git log output %q: %w", out, err)
	}
	d := time.Since(time.Unix(secs, 0))
	if d < 0 {
		d = 0
	}
	return d, nil
}

// GetAge returns how long ago the package root was last modified, in
// human-readable format.
func GetAge(fs system.FileSystem, dir string) string {
	info, err := fs.Stat(dir)
	if err != nil {
		return "unknown"
	}
	d := time.Since(info.ModTime())
	if d < 0 {
		d = 0
	}
	return formatDuration(d)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}

// Check inspects a workspace layout. exec may be nil; when set, the age of a
// git checkout is taken from its last commit instead of the directory's
// modification time.
func Check(fs system.FileSystem, exec system.CommandExecutor, layout workspace.Layout) *CheckResult {
	result := &CheckResult{}

	result.RootExists = fs.IsDir(layout.RootDir)
	if !result.RootExists || layout.PackageRoot == "" {
		return result
	}

	result.PackagePresent = fs.IsDir(layout.PackageRoot)
	if !result.PackagePresent {
		return result
	}

	result.RepoRoot, result.VCS = FindRepoRoot(fs, layout)
	result.Age = GetAge(fs, layout.PackageRoot)
	if exec != nil && result.VCS == "git" {
		if d, err := LastCommitAge(context.Background(), exec, result.RepoRoot); err == nil {
			result.Age = formatDuration(d)
		}
	}
	return result
}

// Summary returns the status for a check result. A package root without
// VCS metadata is partial: an interrupted clone or a fetch that never got
// as far as the checkout.
func (r *CheckResult) Summary() Status {
	switch {
	case r.PackagePresent && r.VCS != "":
		return StatusCloned
	case r.PackagePresent:
		return StatusPartial
	default:
		return StatusMissing
	}
}

// GetSummary returns a summary status for a workspace layout.
func GetSummary(fs system.FileSystem, layout workspace.Layout) Status {
	return Check(fs, nil, layout).Summary()
}
