//go:build !unix

package workspace

// LockDir is a no-op where flock is unavailable.
func LockDir(dir string) (func(), error) {
	return func() {}, nil
}
