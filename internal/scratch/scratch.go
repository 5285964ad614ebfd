// Package scratch manages the private directory that holds decrypted
// plaintext while a file is being edited.
package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/rs/zerolog/log"
)

// Perm is the only mode a scratch directory may have.
const Perm fs.FileMode = 0o700

// Manager prepares scratch areas under a fixed root. Two invocations sharing
// a Root race on it; Strict turns that race into core.ErrAlreadyExists.
type Manager struct {
	Root     string
	FileName string
	Strict   bool
}

// Area is a prepared scratch directory and the plaintext file inside it.
type Area struct {
	Dir  string
	File string

	tornDown bool
}

// Prepare creates the scratch directory with owner-only permissions.
func (m Manager) Prepare() (*Area, error) {
	if m.Root == "" || m.FileName == "" {
		return nil, errors.New("scratch root and file name are required")
	}

	err := os.Mkdir(m.Root, Perm)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrExist):
		if m.Strict {
			return nil, fmt.Errorf("%w: %s", core.ErrAlreadyExists, m.Root)
		}

		info, serr := os.Lstat(m.Root)
		if serr != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrIO, serr)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: scratch root %s is not a directory", core.ErrIO, m.Root)
		}
		log.Debug().Str("dir", m.Root).Msg("reusing existing scratch directory")
	default:
		return nil, fmt.Errorf("%w: create scratch directory: %w", core.ErrIO, err)
	}

	// Mkdir is subject to the umask, set the mode explicitly before anything
	// is written inside.
	if err := os.Chmod(m.Root, Perm); err != nil {
		_ = os.RemoveAll(m.Root)
		return nil, fmt.Errorf("%w: restrict scratch directory: %w", core.ErrIO, err)
	}

	log.Debug().Str("dir", m.Root).Msg("scratch area ready")

	return &Area{
		Dir:  m.Root,
		File: filepath.Join(m.Root, m.FileName),
	}, nil
}

// WritePlaintext writes data to the scratch file, readable by the owner only.
func (a *Area) WritePlaintext(data []byte) error {
	if err := os.WriteFile(a.File, data, 0o600); err != nil {
		return fmt.Errorf("%w: write scratch file: %w", core.ErrIO, err)
	}
	return nil
}

// Teardown removes the scratch directory and everything in it. Calls after
// the first are no-ops.
func (a *Area) Teardown() error {
	if a.tornDown {
		return nil
	}
	a.tornDown = true

	if err := os.RemoveAll(a.Dir); err != nil {
		return fmt.Errorf("%w: remove scratch directory: %w", core.ErrIO, err)
	}

	log.Debug().Str("dir", a.Dir).Msg("scratch area removed")
	return nil
}
