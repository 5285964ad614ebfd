package core

// EnvPrefix is prepended to every environment variable read by the CLI.
const EnvPrefix = "GPGEDIT_"

// Flags are the global command line flags shared by every subcommand.
type Flags struct {
	LogLevel       string
	ConfigFilePath string
}
