// Package backup keeps a sibling copy of a target file for the duration of an
// edit so a failed re-encryption can be undone.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/rs/zerolog/log"
)

type Manager struct {
	Suffix string
}

// Backup is a copy of Target stored at Path.
type Backup struct {
	Path   string
	Target string

	discarded bool
}

// PathFor returns where the backup of target is stored.
func (m Manager) PathFor(target string) string {
	return filepath.Join(filepath.Dir(target), filepath.Base(target)+m.Suffix)
}

// Make copies the current bytes of target next to it.
func (m Manager) Make(target string) (*Backup, error) {
	if m.Suffix == "" {
		return nil, errors.New("backup suffix must not be empty")
	}

	b := &Backup{
		Path:   m.PathFor(target),
		Target: target,
	}

	// A leftover backup may be the only intact copy after a crash, never
	// overwrite it.
	if _, err := os.Lstat(b.Path); err == nil {
		return nil, fmt.Errorf("%w: stale backup %s exists, restore or remove it first", core.ErrIO, b.Path)
	}

	if err := copyFile(target, b.Path, os.O_EXCL); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			_ = os.Remove(b.Path)
		}
		return nil, fmt.Errorf("%w: backup %s: %w", core.ErrIO, target, err)
	}

	log.Debug().Str("target", target).Str("backup", b.Path).Msg("backup created")
	return b, nil
}

// Restore copies the backup bytes back over the target.
func (b *Backup) Restore() error {
	if b.discarded {
		return fmt.Errorf("%w: backup %s was already discarded", core.ErrIO, b.Path)
	}

	if err := copyFile(b.Path, b.Target, os.O_TRUNC); err != nil {
		return fmt.Errorf("%w: restore %s: %w", core.ErrIO, b.Target, err)
	}

	log.Debug().Str("target", b.Target).Str("backup", b.Path).Msg("target restored from backup")
	return nil
}

// Discard removes the backup file. Calls after the first are no-ops.
func (b *Backup) Discard() error {
	if b.discarded {
		return nil
	}

	if err := os.Remove(b.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove backup %s: %w", core.ErrIO, b.Path, err)
	}
	b.discarded = true

	log.Debug().Str("backup", b.Path).Msg("backup removed")
	return nil
}

// copyFile writes the contents of src to dst and syncs it to disk. flag is
// os.O_EXCL to require a new dst or os.O_TRUNC to replace an existing one. An
// existing dst keeps its mode, a new one is created owner-only.
func copyFile(src, dst string, flag int) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|flag, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
