// Package tracked detects whether a file changed between two points in time by
// comparing metadata snapshots.
//
// Detection compares modification time and size only, not content. Two writes
// that leave the size unchanged within the filesystem's timestamp resolution
// are reported as unchanged.
package tracked

import (
	"fmt"
	"os"
	"time"

	"github.com/jaryaman/gpgedit/internal/core"
)

// Snapshot is the metadata of a file at the instant it was taken.
type Snapshot struct {
	ModTime time.Time
	Size    int64
}

// Take stats path and returns its current snapshot.
func Take(path string) (Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: stat %s: %w", core.ErrIO, path, err)
	}

	return Snapshot{
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// Differs reports whether either the modification time or the size differ.
func (s Snapshot) Differs(o Snapshot) bool {
	return !s.ModTime.Equal(o.ModTime) || s.Size != o.Size
}

// File is a path with a before/after pair of snapshots.
type File struct {
	Path string

	before *Snapshot
	after  *Snapshot
}

// Track records the "before" snapshot of path.
func Track(path string) (*File, error) {
	s, err := Take(path)
	if err != nil {
		return nil, err
	}

	return &File{Path: path, before: &s}, nil
}

// Before returns the snapshot taken by Track.
func (f *File) Before() (Snapshot, bool) {
	if f.before == nil {
		return Snapshot{}, false
	}
	return *f.before, true
}

// After returns the snapshot taken by the most recent call to Changed.
func (f *File) After() (Snapshot, bool) {
	if f.after == nil {
		return Snapshot{}, false
	}
	return *f.after, true
}

// Changed takes a fresh "after" snapshot and compares it with "before".
func (f *File) Changed() (bool, error) {
	if f.before == nil {
		return false, fmt.Errorf("%w: %s", core.ErrInsufficientHistory, f.Path)
	}

	s, err := Take(f.Path)
	if err != nil {
		return false, err
	}
	f.after = &s

	return f.before.Differs(s), nil
}
