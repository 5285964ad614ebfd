//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package flock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_Exclusive(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a.gpg")

	first, err := Acquire(target)
	require.NoError(t, err)

	// flock locks belong to the open file description, a second open in the
	// same process conflicts just like another process would
	_, err = Acquire(target)
	assert.True(t, errors.Is(err, core.ErrLocked))

	require.NoError(t, first.Release())

	_, err = os.Stat(PathFor(target))
	assert.True(t, os.IsNotExist(err))

	second, err := Acquire(target)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestRelease_Nil(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "/a/b/.c.gpg.gpgedit.lock", PathFor("/a/b/c.gpg"))
}

func TestIsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".a.gpg.gpgedit.lock")

	old, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)
	defer func() { _ = old.Close() }()
	assert.True(t, isCurrent(old, path))

	// released by its holder
	require.NoError(t, os.Remove(path))
	assert.False(t, isCurrent(old, path))

	// and recreated by a newcomer
	fresh, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)
	defer func() { _ = fresh.Close() }()
	assert.False(t, isCurrent(old, path))
	assert.True(t, isCurrent(fresh, path))
}

func TestAcquire_AfterReleaseByAnotherHolder(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a.gpg")

	first, err := Acquire(target)
	require.NoError(t, err)

	// a waiter that opened the lock file before the release
	waiter, err := os.Open(PathFor(target))
	require.NoError(t, err)
	defer func() { _ = waiter.Close() }()

	require.NoError(t, first.Release())

	second, err := Acquire(target)
	require.NoError(t, err)
	defer func() { _ = second.Release() }()

	// the waiter's inode is gone from the path, a lock on it guards nothing
	assert.False(t, isCurrent(waiter, PathFor(target)))
	assert.True(t, isCurrent(second.file, PathFor(target)))
}
