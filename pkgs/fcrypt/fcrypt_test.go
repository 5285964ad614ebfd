package fcrypt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age/armor"
)

// testWorkFactor keeps scrypt fast in tests.
const testWorkFactor = 10

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "single line", plaintext: "hello world\n"},
		{name: "multi line", plaintext: "line one\nline two\n\nline four\n"},
		{name: "empty", plaintext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipient, err := PassphraseRecipient([]byte("p1"), testWorkFactor)
			if err != nil {
				t.Fatalf("failed to create recipient: %v", err)
			}
			identity, err := PassphraseIdentity([]byte("p1"))
			if err != nil {
				t.Fatalf("failed to create identity: %v", err)
			}

			var encrypted bytes.Buffer
			if err := EncryptReader(strings.NewReader(tt.plaintext), &encrypted, recipient); err != nil {
				t.Fatalf("failed to encrypt: %v", err)
			}

			if !strings.HasPrefix(encrypted.String(), armor.Header) {
				t.Errorf("output is not ASCII armored")
			}

			var decrypted bytes.Buffer
			if err := DecryptReader(&encrypted, &decrypted, identity); err != nil {
				t.Fatalf("failed to decrypt: %v", err)
			}

			if decrypted.String() != tt.plaintext {
				t.Errorf("decrypted = %q, want %q", decrypted.String(), tt.plaintext)
			}
		})
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	recipient, _ := PassphraseRecipient([]byte("right"), testWorkFactor)
	identity, _ := PassphraseIdentity([]byte("wrong"))

	var encrypted bytes.Buffer
	if err := EncryptReader(strings.NewReader("secret"), &encrypted, recipient); err != nil {
		t.Fatalf("failed to encrypt: %v", err)
	}

	var decrypted bytes.Buffer
	if err := DecryptReader(&encrypted, &decrypted, identity); err == nil {
		t.Error("expected error decrypting with the wrong passphrase")
	}
}

func TestEncryptFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plain.txt")
	output := filepath.Join(dir, "secret.age")
	decrypted := filepath.Join(dir, "decrypted.txt")

	if err := os.WriteFile(input, []byte("v2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(output, bytes.Repeat([]byte("x"), 4096), 0o600); err != nil {
		t.Fatal(err)
	}

	recipient, _ := PassphraseRecipient([]byte("p"), testWorkFactor)
	identity, _ := PassphraseIdentity([]byte("p"))

	if err := EncryptFile(input, output, recipient); err != nil {
		t.Fatalf("failed to encrypt file: %v", err)
	}
	if err := DecryptFile(output, decrypted, identity); err != nil {
		t.Fatalf("failed to decrypt file: %v", err)
	}

	got, err := os.ReadFile(decrypted)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v2\n" {
		t.Errorf("decrypted = %q, want %q", got, "v2\n")
	}
}

func TestPassphraseValidation(t *testing.T) {
	for _, p := range []string{"", "two\nlines", "cr\r"} {
		if _, err := PassphraseRecipient([]byte(p), 0); err == nil {
			t.Errorf("expected error for passphrase %q", p)
		}
		if _, err := PassphraseIdentity([]byte(p)); err == nil {
			t.Errorf("expected error for passphrase %q", p)
		}
	}
}
