package executor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gkze/multilint/internal/filelock"
)

// LockFileName is the run lock created next to the config file when
// multilint.lock is enabled.
const LockFileName = ".multilint.lock"

// ErrRunInProgress indicates another multilint run holds the run lock.
var ErrRunInProgress = errors.New("another multilint run is in progress")

// acquire takes the run lock when the config enables it. The returned
// function releases it and is safe to call when no lock was taken.
func (o *Orchestrator) acquire() (func(), error) {
	if !o.cfg.Settings.Lock {
		return func() {}, nil
	}

	lock := filelock.NewFileLock(filepath.Join(o.cfg.Dir(), LockFileName))
	if err := lock.Acquire(); err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return nil, fmt.Errorf("%w: %s", ErrRunInProgress, lock.Path())
		}
		return nil, err
	}
	o.log.Debugf("acquired run lock %s", lock.Path())

	return func() {
		if err := lock.Unlock(); err != nil {
			o.log.Warnf("%v", err)
		}
	}, nil
}
