package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const appName = "prj"

// Themes lists the accepted catppuccin flavour names.
var Themes = []string{"latte", "frappe", "macchiato", "mocha"}

var errInvalidConfig = errors.New("invalid config")

type Config struct {
	// ShellCmd is the wrapper function name emitted by `prj init`.
	ShellCmd string `yaml:"shell_cmd"`
	// ScanDepth is the default depth bound for `prj scan`.
	ScanDepth int `yaml:"scan_depth"`
	// DatabasePath is where the registry is stored. "~" is expanded.
	DatabasePath string `yaml:"database_path"`
	Theme        string `yaml:"theme"`
	// Editor overrides $VISUAL and $EDITOR for "Open in editor".
	Editor   string `yaml:"editor"`
	LogLevel string `yaml:"log_level"`
	// Workers bounds parallel git and stats collection.
	Workers int `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		ShellCmd:     "prjp",
		ScanDepth:    3,
		DatabasePath: filepath.Join(DataDir(), "projects.toml"),
		Theme:        "mocha",
		LogLevel:     "info",
		Workers:      runtime.NumCPU(),
	}
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at configPath. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}
	if cfg.ShellCmd == "" {
		cfg.ShellCmd = "prjp"
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultConfig().DatabasePath
	}

	expanded, err := homedir.Expand(cfg.DatabasePath)
	if err != nil {
		return cfg, fmt.Errorf("database_path: %w", err)
	}
	cfg.DatabasePath = expanded

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.ScanDepth < 0 {
		return fmt.Errorf("%w: scan_depth must not be negative (got %d)", errInvalidConfig, c.ScanDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative (got %d)", errInvalidConfig, c.Workers)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: unknown theme %q", errInvalidConfig, c.Theme)
	}
	return nil
}

// LogPath returns the log file location inside the data directory.
func (c *Config) LogPath() string {
	return filepath.Join(DataDir(), appName+".log")
}

// ConfigPath returns $XDG_CONFIG_HOME/prj/config.yaml, falling back to
// ~/.config/prj/config.yaml.
func ConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName, "config.yaml")
	}

	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".config", appName, "config.yaml")
	}

	return filepath.Join(home, ".config", appName, "config.yaml")
}

// DataDir returns $XDG_DATA_HOME/prj, falling back to ~/.local/share/prj.
func DataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, appName)
	}

	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".local", "share", appName)
	}

	return filepath.Join(home, ".local", "share", appName)
}
