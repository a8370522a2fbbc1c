package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"cinetree/internal/config"
)

const lockFileName = ".cinetree.lock"

// resolveLibRoot expands and validates the library root positional arg.
func resolveLibRoot(arg string) (string, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("library root %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("library root %q is not a directory", path)
	}
	return path, nil
}

// acquireLibraryLock takes the per-library run lock. Index and tree
// writes assume a single process; a second invocation fails fast here
// instead of interleaving store writes.
func acquireLibraryLock(libroot string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(libroot, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another cinetree run is active for %s", libroot)
	}
	return lock, nil
}

func releaseLibraryLock(lock *flock.Flock) {
	if lock != nil {
		_ = lock.Unlock()
	}
}
