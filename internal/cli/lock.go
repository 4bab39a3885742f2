package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// acquireRunLock takes the per-state-directory lock that keeps two
// tickdup processes from reconciling the same state concurrently. The
// returned func releases the lock.
func acquireRunLock(stateDir string) (func(), error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}

	lock := flock.New(filepath.Join(stateDir, "tickdup.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another tickdup instance is already running against %s", stateDir)
	}

	return func() { _ = lock.Unlock() }, nil
}
