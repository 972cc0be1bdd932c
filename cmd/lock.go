package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/config"
	"github.com/gofrs/flock"
)

// acquireDataLock obtains the data-tree lock so that concurrent pipeline
// runs cannot interleave artifact writes.
func acquireDataLock(cfg *config.Config, timeout time.Duration) (func(), error) {
	lockPath := cfg.LockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return func() {}, fmt.Errorf("cannot create data dir: %w", err)
	}
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire data lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("another pipeline run is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
