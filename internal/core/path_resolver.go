package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver provides a resolving service for paths that turns a relative or
// paths with '~' type symbols into absolute paths.
type PathResolver struct {
	configDir string // config directory used to set relative path roots
}

// NewPathResolver returns a resolver rooting relative paths at configDir. An
// empty configDir roots them at the working directory.
func NewPathResolver(configDir string) PathResolver {
	return PathResolver{configDir: configDir}
}

func (pr PathResolver) Resolve(ip string) (string, error) {
	if ip == "" {
		return "", errors.New("empty path")
	}

	// Only the current user's home is expanded, "~other/x" is left alone
	if ip == "~" || strings.HasPrefix(ip, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		ip = filepath.Join(homeDir, strings.TrimPrefix(ip, "~"))
	}

	// If already absolute, return as-is
	if filepath.IsAbs(ip) {
		return filepath.Clean(ip), nil
	}

	// Resolve relative to config directory
	if pr.configDir != "" {
		return filepath.Join(pr.configDir, ip), nil
	}

	// Fallback to absolute path from current directory
	absPath, err := filepath.Abs(ip)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
