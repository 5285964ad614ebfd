//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package flock

import (
	"errors"
	"fmt"
	"os"

	"github.com/jaryaman/gpgedit/internal/core"
	"golang.org/x/sys/unix"
)

// Lock is a held advisory lock.
type Lock struct {
	file *os.File
	path string
}

// maxAttempts bounds how often Acquire retries after losing a race with a
// Release that unlinked the lock file.
const maxAttempts = 5

// Acquire takes the lock for target or fails with core.ErrLocked when another
// process holds it.
func Acquire(target string) (*Lock, error) {
	path := PathFor(target)

	for range maxAttempts {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
		if err != nil {
			return nil, fmt.Errorf("%w: open lock file: %w", core.ErrIO, err)
		}

		if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			_ = file.Close()
			if errors.Is(err, unix.EWOULDBLOCK) {
				return nil, fmt.Errorf("%w: %s", core.ErrLocked, target)
			}
			return nil, fmt.Errorf("%w: lock %s: %w", core.ErrIO, target, err)
		}

		// The holder unlinks the file on release. A lock on an inode that is
		// no longer at path guards nothing, start over with the current one.
		if isCurrent(file, path) {
			return &Lock{file: file, path: path}, nil
		}
		_ = file.Close()
	}

	return nil, fmt.Errorf("%w: %s", core.ErrLocked, target)
}

// isCurrent reports whether file is still the inode linked at path.
func isCurrent(file *os.File, path string) bool {
	held, err := file.Stat()
	if err != nil {
		return false
	}

	onDisk, err := os.Stat(path)
	if err != nil {
		return false
	}

	return os.SameFile(held, onDisk)
}

// Release removes the lock file and drops the lock. The file is unlinked while
// still locked, Acquire detects a lock taken on the unlinked inode.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	rmErr := os.Remove(l.path)
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	return errors.Join(rmErr, closeErr)
}
