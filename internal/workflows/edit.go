package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaryaman/gpgedit/internal/backup"
	"github.com/jaryaman/gpgedit/internal/flock"
	"github.com/jaryaman/gpgedit/internal/tracked"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Outcome is the result of a successful Edit.
type Outcome int

const (
	// Unchanged means the user left the plaintext as it was and nothing was
	// written.
	Unchanged Outcome = iota
	// Changed means the edited plaintext was encrypted over the target.
	Changed
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// RecoveryError wraps the error that aborted an Edit after the target was
// modified.
type RecoveryError struct {
	Cause error
	// Restored is true when the target was copied back from the backup.
	Restored bool
	// BackupPath is where the backup lives. When Restored is false the file
	// is kept there.
	BackupPath string
	RestoreErr error
}

func (e *RecoveryError) Error() string {
	if e.Restored {
		return fmt.Sprintf("%v (encrypted file restored from backup)", e.Cause)
	}
	return fmt.Sprintf("%v (restoring from backup failed: %v; backup kept at %s)", e.Cause, e.RestoreErr, e.BackupPath)
}

// Hint tells the user what to do about the backup.
func (e *RecoveryError) Hint() string {
	if e.Restored {
		return "The encrypted file is unchanged, your edits were discarded."
	}
	return fmt.Sprintf("The encrypted file may be damaged. Copy %s over it before editing again.", e.BackupPath)
}

func (e *RecoveryError) Unwrap() []error {
	if e.RestoreErr == nil {
		return []error{e.Cause}
	}
	return []error{e.Cause, e.RestoreErr}
}

// Edit decrypts target into the scratch area, runs the editor on the
// plaintext and, if it changed, encrypts it back over target.
func (r *Runner) Edit(ctx context.Context, target string, passphrase []byte) (outcome Outcome, err error) {
	logger := log.With().Str("txn", uuid.NewString()).Str("target", target).Logger()

	if r.Lock {
		lock, err := flock.Acquire(target)
		if err != nil {
			return Unchanged, err
		}
		defer func() {
			if rerr := lock.Release(); rerr != nil {
				logger.Warn().Err(rerr).Msg("failed to release lock")
			}
		}()
	}

	// Start -> Backed Up. Nothing has been touched yet, so failures here
	// need no cleanup.
	targetFile, err := tracked.Track(target)
	if err != nil {
		return Unchanged, err
	}

	bak, err := r.Backup.Make(target)
	if err != nil {
		return Unchanged, err
	}
	logger.Debug().Str("backup", bak.Path).Msg("backed up")

	defer func() {
		err = r.finishEdit(logger, targetFile, bak, err)
	}()

	// Backed Up -> Scratch Ready
	area, err := r.Scratch.Prepare()
	if err != nil {
		return Unchanged, err
	}
	defer func() {
		err = keepPrimary(logger, err, area.Teardown(), "failed to remove scratch area")
	}()

	// Scratch Ready -> Decrypted. Decryption only reads the target.
	err = guard(func() error {
		return r.Cipher.Decrypt(ctx, target, area.File, passphrase)
	})
	if err != nil {
		return Unchanged, err
	}
	logger.Debug().Str("cipher", r.Cipher.Name()).Msg("decrypted")

	// Decrypted -> Edited
	outcome, err = r.editPlaintext(ctx, area.File)
	if err != nil {
		return Unchanged, err
	}
	if outcome == Unchanged {
		logger.Info().Msg("plaintext unchanged, not re-encrypting")
		return Unchanged, nil
	}

	// Edited -> Encrypted. This overwrites the target in place.
	err = guard(func() error {
		return r.Cipher.Encrypt(ctx, area.File, target, passphrase)
	})
	if err != nil {
		return Unchanged, err
	}

	logger.Info().Str("cipher", r.Cipher.Name()).Msg("encrypted file updated")
	return Changed, nil
}

func (r *Runner) editPlaintext(ctx context.Context, path string) (Outcome, error) {
	plain, err := tracked.Track(path)
	if err != nil {
		return Unchanged, err
	}

	err = guard(func() error {
		return r.Editor.Edit(ctx, path)
	})
	if err != nil {
		return Unchanged, err
	}

	changed, err := plain.Changed()
	if err != nil {
		return Unchanged, err
	}
	if !changed {
		return Unchanged, nil
	}

	return Changed, nil
}

// finishEdit restores the target if a failed transaction modified it, then
// discards the backup. A backup that could not be restored is kept.
func (r *Runner) finishEdit(logger zerolog.Logger, target *tracked.File, bak *backup.Backup, cause error) error {
	if cause != nil {
		mutated, cerr := target.Changed()
		if cerr != nil {
			// Can't tell, restoring identical bytes is harmless.
			logger.Warn().Err(cerr).Msg("could not check target after failure")
			mutated = true
		}

		if mutated {
			if rerr := bak.Restore(); rerr != nil {
				logger.Error().Err(rerr).Str("backup", bak.Path).Msg("failed to restore encrypted file, keeping backup")
				return &RecoveryError{
					Cause:      cause,
					BackupPath: bak.Path,
					RestoreErr: rerr,
				}
			}

			logger.Warn().Str("backup", bak.Path).Msg("restored encrypted file from backup")
			cause = &RecoveryError{
				Cause:      cause,
				Restored:   true,
				BackupPath: bak.Path,
			}
		}
	}

	return keepPrimary(logger, cause, bak.Discard(), "failed to remove backup")
}

// IsRecovered reports whether err is an Edit failure after which the target
// was restored from its backup.
func IsRecovered(err error) bool {
	var re *RecoveryError
	return errors.As(err, &re) && re.Restored
}
