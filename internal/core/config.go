package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const (
	CipherGPG = "gpg"
	CipherAge = "age"
)

const (
	DefaultEditor       = "vim"
	DefaultBackupSuffix = "-gpgedit_backup"
	DefaultScratchFile  = "data"
)

type ConfigFile struct {
	Editor       string  `yaml:"editor"`
	Cipher       string  `yaml:"cipher"`
	BackupSuffix string  `yaml:"backup_suffix"`
	Lock         bool    `yaml:"lock"`
	LogFile      string  `yaml:"log_file"`
	Scratch      Scratch `yaml:"scratch"`
	GPG          GPG     `yaml:"gpg"`
	Age          Age     `yaml:"age"`
	Rules        []Rule  `yaml:"rules"`
}

type Scratch struct {
	Dir    string `yaml:"dir"`
	File   string `yaml:"file"`
	Strict bool   `yaml:"strict"`
}

type GPG struct {
	Binary     string `yaml:"binary"`
	Armor      bool   `yaml:"armor"`
	CipherAlgo string `yaml:"cipher_algo"`
	Homedir    string `yaml:"homedir"`
}

type Age struct {
	// WorkFactor is the scrypt log2(N) used when encrypting.
	WorkFactor int `yaml:"work_factor"`
}

// Defaults returns the configuration used when no config file exists. Values
// match the historical gpgedit constants.
func Defaults() ConfigFile {
	return ConfigFile{
		Editor:       "",
		Cipher:       CipherGPG,
		BackupSuffix: DefaultBackupSuffix,
		Lock:         true,
		Scratch: Scratch{
			Dir:    DefaultScratchDir(),
			File:   DefaultScratchFile,
			Strict: true,
		},
		GPG: GPG{
			Binary: "gpg",
			Armor:  true,
		},
		Age: Age{
			WorkFactor: 18,
		},
	}
}

// DefaultScratchDir prefers a memory backed filesystem so plaintext never
// reaches persistent storage.
func DefaultScratchDir() string {
	if info, err := os.Stat("/dev/shm"); err == nil && info.IsDir() {
		return "/dev/shm/gpgedit"
	}

	return filepath.Join(os.TempDir(), "gpgedit")
}

// DefaultConfigPath is ~/.config/gpgedit/config.yml, or the empty string when
// the home directory cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "gpgedit", "config.yml")
}

// SetupEnv loads the config file at cfgpath on top of Defaults. A missing file
// is not an error. Relative paths inside the file are resolved against the
// directory of the config file.
func SetupEnv(cfgpath string) (ConfigFile, error) {
	cfg := Defaults()
	if cfgpath == "" {
		return cfg, nil
	}

	pr := PathResolver{}
	absolutePath, err := pr.Resolve(cfgpath)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(absolutePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("config", absolutePath).Msg("config file not found, using defaults")
			return cfg, nil
		}
		return cfg, err
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", absolutePath, err)
	}

	cfg.fillDefaults()

	pr = NewPathResolver(filepath.Dir(absolutePath))
	for _, p := range []*string{&cfg.Scratch.Dir, &cfg.LogFile, &cfg.GPG.Homedir} {
		if *p == "" {
			continue
		}
		if *p, err = pr.Resolve(*p); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", absolutePath, err)
	}

	log.Debug().Str("config", absolutePath).Msg("loaded config")
	return cfg, nil
}

// fillDefaults restores defaults for string settings the file left empty.
func (c *ConfigFile) fillDefaults() {
	d := Defaults()

	for _, pair := range []struct{ v, def *string }{
		{&c.Cipher, &d.Cipher},
		{&c.BackupSuffix, &d.BackupSuffix},
		{&c.Scratch.Dir, &d.Scratch.Dir},
		{&c.Scratch.File, &d.Scratch.File},
		{&c.GPG.Binary, &d.GPG.Binary},
	} {
		if *pair.v == "" {
			*pair.v = *pair.def
		}
	}

	if c.Age.WorkFactor == 0 {
		c.Age.WorkFactor = d.Age.WorkFactor
	}
}

// Validate reports the first problem found in the configuration.
func (c ConfigFile) Validate() error {
	if err := ValidateCipher(c.Cipher); err != nil {
		return err
	}

	if c.BackupSuffix == "" {
		return errors.New("backup_suffix must not be empty")
	}

	if c.Scratch.Dir == "" {
		return errors.New("scratch.dir must not be empty")
	}

	if c.Scratch.File == "" || strings.ContainsRune(c.Scratch.File, filepath.Separator) {
		return fmt.Errorf("scratch.file must be a plain file name, got %q", c.Scratch.File)
	}

	for i, r := range c.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}

	return nil
}

func ValidateCipher(name string) error {
	switch name {
	case CipherGPG, CipherAge:
		return nil
	default:
		return fmt.Errorf("unsupported cipher %q (expected %q or %q)", name, CipherGPG, CipherAge)
	}
}
