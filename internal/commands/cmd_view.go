package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/pkgs/printer"
	"github.com/urfave/cli/v3"
)

type ViewCmd struct {
	coreFlags *core.Flags
	flags     struct {
		Clip   bool
		Cipher string
	}
}

func NewViewCmd(coreFlags *core.Flags) *ViewCmd {
	return &ViewCmd{coreFlags: coreFlags}
}

func (vc *ViewCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "view",
		Usage:     "print the plaintext of an encrypted file",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clip",
				Usage:       "copy the plaintext to the clipboard instead of printing it",
				Destination: &vc.flags.Clip,
			},
			&cli.StringFlag{
				Name:        "cipher",
				Usage:       "cipher backend, gpg or age",
				Destination: &vc.flags.Cipher,
			},
		},
		Action: vc.view,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (vc *ViewCmd) view(ctx context.Context, cmd *cli.Command) error {
	target, err := promptPath(cmd.Args().First())
	if err != nil {
		return err
	}

	runner, err := newRunner(ctx, target, runnerOptions{
		Cipher:  vc.flags.Cipher,
		Spinner: stdoutIsTerminal(),
	})
	if err != nil {
		return err
	}

	passphrase, err := readPassphrase("Passphrase: ")
	if err != nil {
		return err
	}
	defer clear(passphrase)

	var buf bytes.Buffer
	defer func() { clear(buf.Bytes()) }()

	if err := runner.View(ctx, target, passphrase, &buf); err != nil {
		return err
	}

	if vc.flags.Clip {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		printer.Ctx(ctx).Success("copied to clipboard")
		return nil
	}

	_, err = os.Stdout.Write(buf.Bytes())
	return err
}
