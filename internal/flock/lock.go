package flock

import (
	"context"
	"os"
	"time"

	flowerrors "github.com/mrz1836/flow/internal/errors"
)

// retryInterval is the pause between lock acquisition attempts.
const retryInterval = 50 * time.Millisecond

// Lock represents a held exclusive file lock.
type Lock struct {
	file *os.File
}

// Acquire opens (creating if needed) the lock file at path and acquires an
// exclusive lock on it, retrying until timeout elapses or ctx is canceled.
// Returns ErrLockTimeout when the deadline passes without acquisition.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // lock file path is internal
	if err != nil {
		return nil, flowerrors.Wrap(err, "failed to open lock file")
	}

	deadline := time.Now().Add(timeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		// Attempt to acquire exclusive non-blocking lock
		if err := exclusive(f.Fd()); err == nil {
			return &Lock{file: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, flowerrors.Wrap(flowerrors.ErrLockTimeout, "failed to acquire lock")
		}

		// Wait a bit before retrying
		time.Sleep(retryInterval)
	}
}

// Release unlocks and closes the underlying lock file.
// Safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	unlockErr := unlock(l.file.Fd())
	closeErr := l.file.Close()
	l.file = nil

	if unlockErr != nil {
		return flowerrors.Wrap(unlockErr, "failed to release lock")
	}
	return flowerrors.Wrap(closeErr, "failed to close lock file")
}
