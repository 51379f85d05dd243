// Package workspace manages the scratch directory an issue is assembled
// in before conversion. Each run gets its own hidden directory, locked
// for the lifetime of the run and removed afterwards.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const lockName = ".lock"

// ErrBusy is returned when another process holds the workspace lock.
var ErrBusy = errors.New("workspace is locked by another process")

// Workspace is a locked scratch directory.
type Workspace struct {
	Dir  string
	lock *flock.Flock
}

// New creates and locks a fresh directory named .<uuid> below base.
// An empty base means the user's home directory.
func New(base string) (*Workspace, error) {
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		base = home
	}
	return Open(filepath.Join(base, "."+uuid.NewString()))
}

// Open locks dir as a workspace, creating it when missing.
func Open(dir string) (*Workspace, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	lock := flock.New(filepath.Join(dir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock workspace: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, ErrBusy)
	}
	return &Workspace{Dir: dir, lock: lock}, nil
}

// Close releases the lock and removes the directory with everything in it.
func (w *Workspace) Close() error {
	unlockErr := w.lock.Unlock()
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	if unlockErr != nil {
		return fmt.Errorf("unlock workspace: %w", unlockErr)
	}
	return nil
}

// Path joins elem onto the workspace directory.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Dir}, elem...)...)
}
