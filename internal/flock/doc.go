// Package flock provides an advisory, non-blocking exclusive lock that
// serializes edits of the same target file across processes.
//
// The lock is taken on a sibling file named ".<name>.gpgedit.lock" rather
// than on the target itself, because cipher backends may replace the target
// inode while it is being rewritten. The lock file is removed on release.
//
// On platforms without flock(2) Acquire always succeeds and locks nothing.
package flock

import "path/filepath"

// PathFor returns the lock file used for target.
func PathFor(target string) string {
	return filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+".gpgedit.lock")
}
