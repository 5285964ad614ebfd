package workflows

import (
	"context"
	"fmt"

	"github.com/jaryaman/gpgedit/internal/backup"
	"github.com/jaryaman/gpgedit/internal/cipher"
	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/internal/scratch"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"
)

// Editor lets the user modify the file at path and returns once they are done.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(ctx context.Context, path string) error

func (f EditorFunc) Edit(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Runner carries the collaborators shared by Edit, Create and View.
type Runner struct {
	Cipher  cipher.Cipher
	Editor  Editor
	Scratch scratch.Manager
	Backup  backup.Manager

	// Lock holds an advisory lock on the target for the whole operation.
	Lock bool
}

// NewRunner wires a Runner from the loaded configuration.
func NewRunner(c cipher.Cipher, e Editor, cfg core.ConfigFile) *Runner {
	return &Runner{
		Cipher: c,
		Editor: e,
		Scratch: scratch.Manager{
			Root:     cfg.Scratch.Dir,
			FileName: cfg.Scratch.File,
			Strict:   cfg.Scratch.Strict,
		},
		Backup: backup.Manager{Suffix: cfg.BackupSuffix},
		Lock:   cfg.Lock,
	}
}

// guard runs fn and converts a panic into an error so cleanup and recovery
// still happen when a collaborator panics.
func guard(fn func() error) (err error) {
	var pc panics.Catcher
	pc.Try(func() { err = fn() })

	if r := pc.Recovered(); r != nil {
		return fmt.Errorf("recovered from panic: %w", r.AsError())
	}
	return err
}

// keepPrimary merges a cleanup error into the operation's error. The primary
// error always wins, the secondary is logged so it is not lost.
func keepPrimary(logger zerolog.Logger, primary, secondary error, msg string) error {
	if secondary == nil {
		return primary
	}
	if primary == nil {
		return secondary
	}

	logger.Warn().Err(secondary).Msg(msg)
	return primary
}
