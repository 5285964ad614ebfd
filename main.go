package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jaryaman/gpgedit/internal/commands"
	"github.com/jaryaman/gpgedit/internal/core"
	"github.com/jaryaman/gpgedit/pkgs/cll"
	"github.com/jaryaman/gpgedit/pkgs/printer"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "v0.1.0-develop"
	commit  = "HEAD"
	date    = time.Now().Format(time.DateTime)
)

var envvars = cll.EnvWithPrefix(core.EnvPrefix)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

// logOutput returns the console writer, teed into a rotating JSON log file
// when path is set.
func logOutput(path string) io.Writer {
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	if path == "" {
		return console
	}

	return zerolog.MultiLevelWriter(console, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	})
}

func main() {
	flags := &core.Flags{}

	log.Logger = log.Output(logOutput(""))

	var (
		ctx    = context.Background()
		writer = printer.NewDeferredWriter(os.Stdout)
	)

	ctx = printer.WithWriter(ctx, writer)
	printer.ConsolePrinter = printer.Ctx(ctx)

	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "gpgedit",
		Usage:                 `Edit encrypted files in place without leaving plaintext behind.`,
		Version:               build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "set the logging verbosity level",
				Value:       "warn",
				Sources:     envvars("LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to the gpgedit configuration file",
				Required:    false,
				Value:       core.DefaultConfigPath(),
				Sources:     envvars("CONFIG_PATH"),
				Destination: &flags.ConfigFilePath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			cfg, err := core.SetupEnv(flags.ConfigFilePath)
			if err != nil {
				return ctx, err
			}

			if cfg.LogFile != "" {
				log.Logger = log.Output(logOutput(cfg.LogFile)).Level(level)
			}

			log.Debug().
				Str("log-level", flags.LogLevel).
				Str("config", flags.ConfigFilePath).
				Str("cipher", cfg.Cipher).
				Str("scratch", cfg.Scratch.Dir).
				Msg("global flags")

			return core.WithConfig(ctx, cfg), nil
		},
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return err
		},
	}

	app = cll.Register(app,
		commands.NewEditCmd(flags),
		commands.NewCreateCmd(flags),
		commands.NewViewCmd(flags),
	)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	err := writer.Flush()
	if err != nil {
		panic(err)
	}
	os.Exit(exitCode)
}
