package fcrypt

import (
	"bytes"
	"errors"
	"fmt"

	"filippo.io/age"
)

// PassphraseRecipient returns a scrypt recipient for passphrase. A workFactor
// of zero keeps the age default.
func PassphraseRecipient(passphrase []byte, workFactor int) (*age.ScryptRecipient, error) {
	if err := checkPassphrase(passphrase); err != nil {
		return nil, err
	}

	r, err := age.NewScryptRecipient(string(passphrase))
	if err != nil {
		return nil, fmt.Errorf("error creating passphrase recipient: %w", err)
	}

	if workFactor > 0 {
		r.SetWorkFactor(workFactor)
	}

	return r, nil
}

// PassphraseIdentity returns the scrypt identity matching PassphraseRecipient.
func PassphraseIdentity(passphrase []byte) (*age.ScryptIdentity, error) {
	if err := checkPassphrase(passphrase); err != nil {
		return nil, err
	}

	id, err := age.NewScryptIdentity(string(passphrase))
	if err != nil {
		return nil, fmt.Errorf("error creating passphrase identity: %w", err)
	}

	return id, nil
}

func checkPassphrase(passphrase []byte) error {
	if len(passphrase) == 0 {
		return errors.New("passphrase must not be empty")
	}
	if bytes.ContainsAny(passphrase, "\r\n") {
		return errors.New("passphrase must be a single line")
	}
	return nil
}
