// Package cll holds the small amount of glue gpgedit puts around urfave/cli/v3.
package cll

import "github.com/urfave/cli/v3"

// Registerable adds itself, usually as a subcommand, to a root command.
type Registerable interface {
	Register(*cli.Command) *cli.Command
}

// Register applies subs to root in order and returns the result.
//
//	app = cll.Register(app, commands.NewEditCmd(flags), commands.NewViewCmd(flags))
func Register(root *cli.Command, subs ...Registerable) *cli.Command {
	for _, s := range subs {
		if s == nil {
			continue
		}
		root = s.Register(root)
	}

	return root
}

// EnvWithPrefix returns a helper building env var sources that all share
// prefix, so env("LOG_LEVEL") reads GPGEDIT_LOG_LEVEL for prefix "GPGEDIT_".
func EnvWithPrefix(prefix string) func(names ...string) cli.ValueSourceChain {
	return func(names ...string) cli.ValueSourceChain {
		prefixed := make([]string, 0, len(names))
		for _, name := range names {
			prefixed = append(prefixed, prefix+name)
		}

		return cli.EnvVars(prefixed...)
	}
}
