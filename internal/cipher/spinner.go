package cipher

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"
)

var spinnerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("10")) // Green

type spinning struct {
	Cipher
}

// WithSpinner shows a terminal spinner while c runs. Only use it when stdout
// is a terminal.
func WithSpinner(c Cipher) Cipher {
	return spinning{Cipher: c}
}

func (s spinning) Decrypt(ctx context.Context, src, dst string, passphrase []byte) error {
	return s.spin(ctx, " Decrypting "+src, func() error {
		return s.Cipher.Decrypt(ctx, src, dst, passphrase)
	})
}

func (s spinning) Encrypt(ctx context.Context, src, dst string, passphrase []byte) error {
	return s.spin(ctx, " Encrypting "+dst, func() error {
		return s.Cipher.Encrypt(ctx, src, dst, passphrase)
	})
}

// spin runs fn exactly once and returns only after fn has returned. The
// spinner is display only: it stops when fn is done, and if it stops early
// (an interrupt reaching the terminal program, no tty) fn is still waited for.
func (s spinning) spin(ctx context.Context, title string, fn func() error) error {
	spinCtx, stop := context.WithCancel(ctx)
	defer stop()

	var (
		pc   panics.Catcher
		err  error
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		defer stop()
		pc.Try(func() { err = fn() })
	}()

	serr := spinner.New().
		Type(spinner.Line).
		Style(spinnerStyle).
		Title(title).
		Context(spinCtx).
		Run()
	if serr != nil {
		log.Debug().Err(serr).Msg("spinner stopped")
	}

	<-done
	// a panic in fn belongs to the caller's goroutine
	pc.Repanic()
	return err
}
