// Package editor launches the user's text editor on a file and waits for it to
// exit.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/rs/zerolog/log"
	"mvdan.cc/sh/v3/shell"
)

// Command is an editor invocation split into an argument vector. The file to
// edit is appended as the last argument.
type Command struct {
	Argv []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Resolve picks the editor command line. The first non-empty value of
// override, $VISUAL, $EDITOR wins, falling back to vim.
func Resolve(override string) string {
	for _, v := range []string{override, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return core.DefaultEditor
}

// Parse splits a command line such as `code --wait` using shell word
// splitting and quoting rules. Nothing is executed by a shell.
func Parse(command string) (*Command, error) {
	argv, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid editor command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("editor command is empty")
	}

	return &Command{
		Argv:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Edit runs the editor against path and blocks until it exits. Whether the
// file changed is for the caller to find out. A non-zero exit status is
// logged and otherwise ignored, an editor killed by a signal returns
// core.ErrEditorAborted.
func (c *Command) Edit(ctx context.Context, path string) error {
	args := append(append([]string{}, c.Argv[1:]...), path)

	cmd := exec.CommandContext(ctx, c.Argv[0], args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	log.Debug().Strs("argv", cmd.Args).Msg("launching editor")

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrEditorLaunch, c.Argv[0], err)
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", core.ErrEditorAborted, ctxErr)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("waiting for editor: %w", err)
		}

		// ExitCode is -1 when the process was terminated by a signal.
		if exitErr.ExitCode() == -1 {
			return fmt.Errorf("%w: %s: %s", core.ErrEditorAborted, c.Argv[0], exitErr)
		}
		log.Warn().Int("status", exitErr.ExitCode()).Str("editor", c.Argv[0]).Msg("editor exited with non-zero status")
	}

	return nil
}
