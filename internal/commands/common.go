// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaryaman/gpgedit/internal/cipher"
	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/internal/editor"
	"github.com/jaryaman/gpgedit/internal/workflows"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

type runnerOptions struct {
	// Cipher and Editor override the configuration and rules when set.
	Cipher string
	Editor string

	WithEditor bool
	// Spinner shows progress while the cipher runs.
	Spinner bool
}

// newRunner builds the workflow runner for target from the configuration on
// ctx.
func newRunner(ctx context.Context, target string, opts runnerOptions) (*workflows.Runner, error) {
	cfg := core.ConfigFrom(ctx)

	profile, err := cfg.ProfileFor(target)
	if err != nil {
		return nil, err
	}

	if opts.Cipher != "" {
		if err := core.ValidateCipher(opts.Cipher); err != nil {
			return nil, err
		}
		profile.Cipher = opts.Cipher
	}
	if opts.Editor != "" {
		profile.Editor = opts.Editor
	}

	c, err := cipher.New(profile.Cipher, cfg)
	if err != nil {
		return nil, err
	}
	if opts.Spinner {
		c = cipher.WithSpinner(c)
	}

	var ed workflows.Editor
	if opts.WithEditor {
		cmd, err := editor.Parse(editor.Resolve(profile.Editor))
		if err != nil {
			return nil, err
		}
		ed = cmd
	}

	log.Debug().
		Str("target", target).
		Str("cipher", profile.Cipher).
		Str("editor", profile.Editor).
		Msg("resolved profile")

	return workflows.NewRunner(c, ed, cfg), nil
}

// resolveTarget expands a leading ~ and makes path absolute.
func resolveTarget(path string) (string, error) {
	return core.NewPathResolver("").Resolve(path)
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// withSignals cancels ctx on SIGTERM or SIGHUP so a running transaction rolls
// back and cleans up. SIGINT is swallowed until stop is called, the terminal
// delivers it to the editor as well and the editor decides what it means.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)

	return ctx, func() {
		signal.Stop(sigint)
		cancel()
	}
}
