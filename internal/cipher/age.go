package cipher

import (
	"context"
	"fmt"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/pkgs/fcrypt"
)

// Age encrypts in-process with an age scrypt passphrase stanza and writes
// ASCII-armored output.
type Age struct {
	// WorkFactor is the scrypt log2(N), zero keeps the age default.
	WorkFactor int
}

func (a *Age) Name() string { return core.CipherAge }

func (a *Age) Decrypt(ctx context.Context, src, dst string, passphrase []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	identity, err := fcrypt.PassphraseIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("%w: decrypt failed: %w", core.ErrCipher, err)
	}

	if err := fcrypt.DecryptFile(src, dst, identity); err != nil {
		return fmt.Errorf("%w: decrypt failed: %w", core.ErrCipher, err)
	}
	return nil
}

func (a *Age) Encrypt(ctx context.Context, src, dst string, passphrase []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recipient, err := fcrypt.PassphraseRecipient(passphrase, a.WorkFactor)
	if err != nil {
		return fmt.Errorf("%w: encrypt failed: %w", core.ErrCipher, err)
	}

	if err := fcrypt.EncryptFile(src, dst, recipient); err != nil {
		return fmt.Errorf("%w: encrypt failed: %w", core.ErrCipher, err)
	}
	return nil
}
