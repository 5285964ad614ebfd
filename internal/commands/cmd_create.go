package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/pkgs/printer"
	"github.com/urfave/cli/v3"
)

type CreateCmd struct {
	coreFlags *core.Flags
	flags     struct {
		Message string
		Force   bool
		Cipher  string
	}
}

func NewCreateCmd(coreFlags *core.Flags) *CreateCmd {
	return &CreateCmd{coreFlags: coreFlags}
}

func (cc *CreateCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "create",
		Usage:     "encrypt a message into a new file",
		ArgsUsage: "[path]",
		Description: `Encrypts a short message into a new file, creating parent directories as
needed. The message comes from --message, from stdin when it is not a
terminal, or from an interactive prompt. The passphrase is asked twice.

Examples:
	gpgedit create -m "wifi: hunter2" ~/secrets/wifi.txt.asc
	pass-export | gpgedit create backup.txt.asc
	gpgedit create --cipher age notes.age`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "plaintext to encrypt, a newline is appended",
				Destination: &cc.flags.Message,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite the file if it already exists",
				Destination: &cc.flags.Force,
			},
			&cli.StringFlag{
				Name:        "cipher",
				Usage:       "cipher backend, gpg or age",
				Destination: &cc.flags.Cipher,
			},
		},
		Action: cc.create,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (cc *CreateCmd) create(ctx context.Context, cmd *cli.Command) error {
	target, err := promptPath(cmd.Args().First())
	if err != nil {
		return err
	}

	_, statErr := os.Lstat(target)
	exists := statErr == nil
	if exists && !cc.flags.Force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", core.ErrAlreadyExists, target)
	}

	runner, err := newRunner(ctx, target, runnerOptions{
		Cipher:  cc.flags.Cipher,
		Spinner: stdoutIsTerminal(),
	})
	if err != nil {
		return err
	}

	message := cc.flags.Message
	if !cmd.IsSet("message") {
		message, err = promptMessage()
		if err != nil {
			return err
		}
	}

	passphrase, err := readNewPassphrase()
	if err != nil {
		return err
	}
	defer clear(passphrase)

	ctx, stop := withSignals(ctx)
	defer stop()

	if err := runner.Create(ctx, target, message, passphrase); err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if exists {
		p.Warning("replaced existing " + target)
		return nil
	}
	p.Success("created " + target)
	return nil
}
