// Package config loads quill configuration with a merge chain of embedded
// defaults, a global config file and a repo-local config file.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed defaults
var defaultsFS embed.FS

// localConfigDir is the per-repository config directory, relative to the
// working directory.
const localConfigDir = ".quill"

// Config is the fully loaded quill configuration.
type Config struct {
	Values

	ConfigDir string          // global config directory (first-run files installed here)
	Commands  []CustomCommand // user-defined commands from commands/*.md
}

// Load loads configuration from the given global config directory.
// an empty configDir uses the default location (os.UserConfigDir()/quill).
// on first run the embedded defaults are installed into configDir.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		configDir = filepath.Join(base, "quill")
	}

	installer := newDefaultsInstaller(defaultsFS)
	if err := installer.Install(configDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	localPath := filepath.Join(localConfigDir, "config")
	globalPath := filepath.Join(configDir, "config")

	values, err := newValuesLoader(defaultsFS).Load(localPath, globalPath)
	if err != nil {
		return nil, err
	}

	commands, err := loadCommands(filepath.Join(localConfigDir, "commands"), filepath.Join(configDir, "commands"))
	if err != nil {
		return nil, err
	}

	return &Config{Values: values, ConfigDir: configDir, Commands: commands}, nil
}

// Models returns model identifiers with every unset role resolved to its
// default constant.
func (c *Config) Models() Models {
	return Models{General: c.Model, Fast: c.FastModel, Embedding: c.EmbeddingModel}.resolved()
}

// HistoryPath returns the history database location inside the config dir.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.ConfigDir, "history.db")
}
