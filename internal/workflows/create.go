package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jaryaman/gpgedit/internal/backup"
	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/internal/flock"
	"github.com/jaryaman/gpgedit/internal/tracked"
	"github.com/rs/zerolog/log"
)

// Create encrypts message, followed by a newline, into target. The target is
// written exactly once, by the cipher. If encryption fails, a target that did
// not exist before is removed and an existing one is restored from a backup.
func (r *Runner) Create(ctx context.Context, target, message string, passphrase []byte) (err error) {
	logger := log.With().Str("target", target).Logger()

	if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
		return fmt.Errorf("%w: create parent directory: %w", core.ErrIO, err)
	}

	if r.Lock {
		lock, err := flock.Acquire(target)
		if err != nil {
			return err
		}
		defer func() {
			if rerr := lock.Release(); rerr != nil {
				logger.Warn().Err(rerr).Msg("failed to release lock")
			}
		}()
	}

	_, statErr := os.Lstat(target)
	existed := !errors.Is(statErr, fs.ErrNotExist)

	// Overwriting an existing file gets the same backup and restore as Edit.
	if existed {
		var (
			targetFile *tracked.File
			bak        *backup.Backup
		)
		if targetFile, err = tracked.Track(target); err != nil {
			return err
		}
		if bak, err = r.Backup.Make(target); err != nil {
			return err
		}
		defer func() {
			err = r.finishEdit(logger, targetFile, bak, err)
		}()
	}

	area, err := r.Scratch.Prepare()
	if err != nil {
		return err
	}
	defer func() {
		err = keepPrimary(logger, err, area.Teardown(), "failed to remove scratch area")
	}()

	if err := area.WritePlaintext([]byte(message + "\n")); err != nil {
		return err
	}

	err = guard(func() error {
		return r.Cipher.Encrypt(ctx, area.File, target, passphrase)
	})
	if err != nil {
		if !existed {
			if rmErr := os.Remove(target); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				logger.Warn().Err(rmErr).Msg("failed to remove partially written file")
			}
		}
		return err
	}

	logger.Info().Str("cipher", r.Cipher.Name()).Msg("encrypted file created")
	return nil
}
