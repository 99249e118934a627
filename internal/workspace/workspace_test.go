package workspace

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/firefly-engineering/gosandbox/internal/system"
)

// requireGit skips the test if git is not available
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH, skipping test")
	}
}

func setupGitRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	tmpDir := t.TempDir()

	// Initialize git repo
	cmd := exec.Command("git", "init", tmpDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init git repo: %s: %v", output, err)
	}

	// Configure git user for commits
	exec.Command("git", "-C", tmpDir, "config", "user.email", "test@test.com").Run()
	exec.Command("git", "-C", tmpDir, "config", "user.name", "Test User").Run()

	// Create an initial commit
	testFile := filepath.Join(tmpDir, "errors.go")
	if err := os.WriteFile(testFile, []byte("package errors\n"), 0644); err != nil {
		t.Fatal(err)
	}
	exec.Command("git", "-C", tmpDir, "add", ".").Run()
	cmd = exec.Command("git", "-C", tmpDir, "commit", "-m", "Initial commit")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create initial commit: %s: %v", output, err)
	}

	return tmpDir
}

func TestFetcher_Interface(t *testing.T) {
	var _ Fetcher = &CLIFetcher{}
	var _ Fetcher = &GoGitFetcher{}
	var _ Fetcher = &ImportPathFetcher{}
	var _ = CLI(ClientGit, nil, nil, nil, nil)
}

func TestCLIFetcher_RealGit(t *testing.T) {
	src := setupGitRepo(t)
	dest := filepath.Join(t.TempDir(), "gopath-errors", "src", "github.com", "pkg", "errors")

	var out bytes.Buffer
	f := CLI(ClientGit, system.DefaultExecutor(), os.Environ(), nil, &out)
	if err := f.Fetch(context.Background(), FetchRequest{URL: src, Dest: dest}); err != nil {
		t.Fatalf("Fetch error: %v\n%s", err, out.String())
	}

	if _, err := os.Stat(filepath.Join(dest, "errors.go")); err != nil {
		t.Errorf("cloned file missing: %v", err)
	}
}

func TestCLIFetcher_RealGitFailure(t *testing.T) {
	requireGit(t)
	dest := filepath.Join(t.TempDir(), "dest")

	f := CLI(ClientGit, system.DefaultExecutor(), os.Environ(), nil, &bytes.Buffer{})
	err := f.Fetch(context.Background(), FetchRequest{URL: filepath.Join(t.TempDir(), "does-not-exist"), Dest: dest})
	if err == nil {
		t.Fatal("cloning a missing repository should fail")
	}
}

func TestGoGitFetcher_LocalRepo(t *testing.T) {
	src := setupGitRepo(t)
	dest := filepath.Join(t.TempDir(), "src", "github.com", "pkg", "errors")

	f := &GoGitFetcher{}
	if err := f.Fetch(context.Background(), FetchRequest{URL: src, Dest: dest}); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		t.Errorf(".git missing after clone: %v", err)
	}
}

func TestFetchers_RequireTarget(t *testing.T) {
	ctx := context.Background()
	mockExec := system.NewMockExecutor()

	if err := CLI(ClientGit, mockExec, nil, nil, nil).Fetch(ctx, FetchRequest{Dest: "/d"}); err == nil {
		t.Error("CLIFetcher without URL should fail")
	}
	if err := (&GoGitFetcher{}).Fetch(ctx, FetchRequest{Dest: "/d"}); err == nil {
		t.Error("GoGitFetcher without URL should fail")
	}
	if len(mockExec.Commands) != 0 {
		t.Errorf("nothing should run, got %+v", mockExec.Commands)
	}
}

func TestLockDir_Exclusive(t *testing.T) {
	dir := t.TempDir()

	unlock, err := LockDir(dir)
	if err != nil {
		t.Fatalf("LockDir error: %v", err)
	}

	acquired := make(chan func(), 1)
	go func() {
		u, err := LockDir(dir)
		if err != nil {
			t.Errorf("second LockDir error: %v", err)
			acquired <- func() {}
			return
		}
		acquired <- u
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first is held")
	case <-time.After(100 * time.Millisecond):
	}

	unlock()

	select {
	case u := <-acquired:
		u()
	case <-time.After(5 * time.Second):
		t.Fatal("second lock not acquired after release")
	}
}

func TestLockDir_Missing(t *testing.T) {
	if _, err := LockDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("locking a missing directory should fail")
	}
}

func TestCheckContained(t *testing.T) {
	ws := t.TempDir()
	d := mustClassify(t, "pkg/errors")
	layout := Resolve(d, ws)

	if err := CheckContained(layout, d.ImportPath()); err != nil {
		t.Errorf("plain layout should be contained: %v", err)
	}

	// A symlinked src/github.com pointing elsewhere must be rejected.
	outside := t.TempDir()
	if err := os.MkdirAll(filepath.Join(layout.RootDir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(layout.RootDir, "src", "github.com")); err != nil {
		t.Fatal(err)
	}
	if err := CheckContained(layout, d.ImportPath()); err == nil {
		t.Error("symlinked package root should be rejected")
	}
}

func TestEnsurePresent_RealFilesystem(t *testing.T) {
	src := setupGitRepo(t)
	quietUserOutput(t)
	ws := t.TempDir()
	d := mustClassify(t, "pkg/errors")
	layout := Resolve(d, ws)

	// Route the clone to the local repository.
	mockExec := system.NewMockExecutor()
	mockExec.AddBinary("git", "/usr/bin/git")
	mockExec.OnRun = func(cmd system.Command) error {
		args := append([]string{"clone", src}, cmd.Args[2:]...)
		return system.DefaultExecutor().Run(context.Background(), system.Command{Name: "git", Args: args, Env: os.Environ()})
	}

	e := NewEnsurer("")
	e.Exec = mockExec
	e.Output = &bytes.Buffer{}

	for i := 0; i < 2; i++ {
		if err := e.EnsurePresent(context.Background(), d, layout); err != nil {
			t.Fatalf("EnsurePresent #%d error: %v", i, err)
		}
	}
	if got := mockExec.Count("git"); got != 1 {
		t.Errorf("git ran %d times, want 1", got)
	}
	if _, err := os.Stat(filepath.Join(layout.PackageRoot, "errors.go")); err != nil {
		t.Errorf("cloned file missing: %v", err)
	}
}
