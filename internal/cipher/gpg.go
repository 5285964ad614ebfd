package cipher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

// GPG runs the gpg binary in batch mode. The passphrase is written to the
// child's stdin, which gpg reads through --passphrase-fd 0.
type GPG struct {
	Binary     string
	Armor      bool
	CipherAlgo string
	Homedir    string
}

func (g *GPG) Name() string { return core.CipherGPG }

func (g *GPG) Decrypt(ctx context.Context, src, dst string, passphrase []byte) error {
	args := append(g.baseArgs(), "--output", dst, "--decrypt", src)
	if err := g.run(ctx, args, passphrase); err != nil {
		return fmt.Errorf("%w: decrypt failed: %w", core.ErrCipher, err)
	}
	return nil
}

func (g *GPG) Encrypt(ctx context.Context, src, dst string, passphrase []byte) error {
	args := g.baseArgs()
	if g.Armor {
		args = append(args, "--armor")
	}
	if g.CipherAlgo != "" {
		args = append(args, "--cipher-algo", g.CipherAlgo)
	}
	args = append(args, "--output", dst, "--symmetric", src)

	if err := g.run(ctx, args, passphrase); err != nil {
		return fmt.Errorf("%w: encrypt failed: %w", core.ErrCipher, err)
	}
	return nil
}

// baseArgs never prompts: a wrong passphrase fails instead of waiting on a
// pinentry, and --yes answers the overwrite question for the output file.
func (g *GPG) baseArgs() []string {
	args := []string{
		"--batch",
		"--no-tty",
		"--yes",
		"--pinentry-mode", "loopback",
		"--no-symkey-cache",
		"--passphrase-fd", "0",
	}
	if g.Homedir != "" {
		args = append([]string{"--homedir", g.Homedir}, args...)
	}
	return args
}

func (g *GPG) binary() string {
	if g.Binary == "" {
		return "gpg"
	}
	return g.Binary
}

func (g *GPG) run(ctx context.Context, args []string, passphrase []byte) error {
	if bytes.ContainsAny(passphrase, "\r\n") {
		return errors.New("passphrase must be a single line")
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, g.binary(), args...)
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	log.Debug().Str("binary", g.binary()).Strs("args", args).Msg("running gpg")

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", g.binary(), err)
	}

	// The passphrase is fed while gpg runs. Wait closes the pipe once gpg
	// exits, so a gpg that never reads stdin fails the write instead of
	// blocking it.
	var (
		wg       conc.WaitGroup
		writeErr error
	)
	wg.Go(func() {
		_, writeErr = stdin.Write(passphrase)
		if cerr := stdin.Close(); writeErr == nil {
			writeErr = cerr
		}
	})

	err = cmd.Wait()
	wg.Wait()

	msg := lastLine(stderr.String())
	log.Debug().Str("stderr", stderr.String()).Msg("gpg finished")

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg != "" {
				return fmt.Errorf("%s exited with status %d: %s", g.binary(), exitErr.ExitCode(), msg)
			}
			return fmt.Errorf("%s exited with status %d", g.binary(), exitErr.ExitCode())
		}
		return err
	}

	// gpg may exit before reading stdin, that is only a problem if it failed
	if writeErr != nil {
		log.Debug().Err(writeErr).Msg("passphrase pipe closed early")
	}

	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
