package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/internal/workflows"
	"github.com/jaryaman/gpgedit/pkgs/printer"
	"github.com/urfave/cli/v3"
)

type EditCmd struct {
	coreFlags *core.Flags
	flags     struct {
		Editor string
		Cipher string
	}
}

func NewEditCmd(coreFlags *core.Flags) *EditCmd {
	return &EditCmd{coreFlags: coreFlags}
}

func (ec *EditCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "edit",
		Usage:     "decrypt a file, open it in an editor and encrypt it again in place",
		ArgsUsage: "[path]",
		Description: `Decrypts the file into a private scratch directory, opens the plaintext in
your editor and, when you saved a change, encrypts it back over the original.

The original is backed up next to itself for the duration of the edit. If
anything fails after the original was touched it is restored from that
backup. The plaintext is removed when the command returns.

The editor is chosen from --editor, a matching rule, the config file,
$VISUAL, $EDITOR and finally vim, in that order.

Examples:
	gpgedit edit ~/secrets/notes.txt.asc
	gpgedit edit --editor "code --wait" notes.txt.asc
	gpgedit edit                           # asks for the file`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "editor",
				Aliases:     []string{"e"},
				Usage:       "editor command line, e.g. \"code --wait\"",
				Destination: &ec.flags.Editor,
			},
			&cli.StringFlag{
				Name:        "cipher",
				Usage:       "cipher backend, gpg or age",
				Destination: &ec.flags.Cipher,
			},
		},
		Action: ec.edit,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (ec *EditCmd) edit(ctx context.Context, cmd *cli.Command) error {
	target, err := promptPath(cmd.Args().First())
	if err != nil {
		return err
	}

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	runner, err := newRunner(ctx, target, runnerOptions{
		Cipher:     ec.flags.Cipher,
		Editor:     ec.flags.Editor,
		WithEditor: true,
		Spinner:    stdoutIsTerminal(),
	})
	if err != nil {
		return err
	}

	passphrase, err := readPassphrase("Passphrase: ")
	if err != nil {
		return err
	}
	defer clear(passphrase)

	ctx, stop := withSignals(ctx)
	defer stop()

	outcome, err := runner.Edit(ctx, target, passphrase)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	switch outcome {
	case workflows.Unchanged:
		p.Notice(core.ErrNoChange.Error())
	case workflows.Changed:
		p.Success("saved " + target)
	}

	return nil
}
