// Package flock provides cross-platform file locking utilities.
//
// Flow uses an exclusive lock around settings-file writes so concurrent
// `flow config set` invocations cannot interleave a read-modify-write and
// drop fields. Locks are exclusive and non-blocking at the syscall level;
// Acquire layers a bounded retry loop on top.
//
// Usage:
//
//	lock, err := flock.Acquire(ctx, path+".lock", constants.LockTimeout)
//	if err != nil {
//	    // Lock not acquired - another flow process holds it
//	}
//	defer lock.Release()
package flock
