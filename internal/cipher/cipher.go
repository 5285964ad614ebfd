// Package cipher is the boundary to the symmetric encryption backends. The
// passphrase is handed to a backend once per call and never placed in a
// process argument list, an environment variable or a file.
package cipher

import (
	"context"
	"fmt"

	"github.com/jaryaman/gpgedit/internal/core"
)

// Cipher decrypts and encrypts whole files with a passphrase. Both calls block
// until the backend is done and overwrite dst.
type Cipher interface {
	Name() string
	Decrypt(ctx context.Context, src, dst string, passphrase []byte) error
	Encrypt(ctx context.Context, src, dst string, passphrase []byte) error
}

// New returns the backend called name configured from cfg.
func New(name string, cfg core.ConfigFile) (Cipher, error) {
	switch name {
	case core.CipherGPG:
		return &GPG{
			Binary:     cfg.GPG.Binary,
			Armor:      cfg.GPG.Armor,
			CipherAlgo: cfg.GPG.CipherAlgo,
			Homedir:    cfg.GPG.Homedir,
		}, nil
	case core.CipherAge:
		return &Age{WorkFactor: cfg.Age.WorkFactor}, nil
	default:
		return nil, fmt.Errorf("unknown cipher %q", name)
	}
}
