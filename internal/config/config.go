package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	// FilePermissions is the mode used when creating the configuration file.
	FilePermissions = 0644
	// DirPermissions is the mode used when creating the configuration directory.
	DirPermissions = 0755

	// FileName is the configuration file looked up inside the config directory.
	FileName = "ccol.json"
	// HistoryFileName is the SQLite database holding selection history.
	HistoryFileName = "ccol.db"
	// LogFileName is the default log file inside the config directory.
	LogFileName = "ccol.log"

	appName = "ccol"
)

// Common errors
var (
	ErrConfigIO      = errors.New("error in file i/o")
	ErrCorruptConfig = errors.New("could not parse config file")
	ErrNoConfigDir   = errors.New("unable to find config directory for ccol")
)

// Dir returns the configuration directory. override takes precedence and
// may start with "~"; otherwise the platform config directory is used.
func Dir(override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		dir, err := homedir.Expand(override)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoConfigDir, err)
		}
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoConfigDir, err)
	}
	return filepath.Join(base, appName), nil
}

// FormatFor picks the parser for path from its extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// EnsureFile creates path with an empty mapping when it does not exist,
// creating parent directories as needed.
func EnsureFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrConfigIO, path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %w", ErrConfigIO, err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), FilePermissions); err != nil {
		return fmt.Errorf("%w: failed to create config file: %w", ErrConfigIO, err)
	}
	return nil
}

// Load reads and parses the configuration file at path, creating it first
// when it is missing.
func Load(path string) (any, error) {
	if err := EnsureFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigIO, path, err)
	}
	v, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
