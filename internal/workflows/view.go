package workflows

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/rs/zerolog/log"
)

// View decrypts target through the scratch area and copies the plaintext to w.
func (r *Runner) View(ctx context.Context, target string, passphrase []byte, w io.Writer) (err error) {
	logger := log.With().Str("target", target).Logger()

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	area, err := r.Scratch.Prepare()
	if err != nil {
		return err
	}
	defer func() {
		err = keepPrimary(logger, err, area.Teardown(), "failed to remove scratch area")
	}()

	err = guard(func() error {
		return r.Cipher.Decrypt(ctx, target, area.File, passphrase)
	})
	if err != nil {
		return err
	}

	f, err := os.Open(area.File)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("%w: write plaintext: %w", core.ErrIO, err)
	}

	return nil
}
