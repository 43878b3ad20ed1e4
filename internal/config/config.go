// Package config provides configuration management for mcpsync using Viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mcpsync/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix is the prefix for environment variable overrides, e.g.
// MCPSYNC_REGISTRY_PATH or MCPSYNC_CLIENTS_DESKTOP_PATH.
const EnvPrefix = "MCPSYNC"

// Config represents the top-level configuration structure.
type Config struct {
	Version      int           `mapstructure:"version" yaml:"version"`
	RegistryPath string        `mapstructure:"registry_path" yaml:"registry_path"`
	Clients      ClientsConfig `mapstructure:"clients" yaml:"clients"`
	Backup       BackupConfig  `mapstructure:"backup" yaml:"backup"`
}

// ClientsConfig holds per-client document overrides.
type ClientsConfig struct {
	Code    ClientConfig `mapstructure:"code" yaml:"code"`
	Desktop ClientConfig `mapstructure:"desktop" yaml:"desktop"`
}

// ClientConfig contains configuration overrides for a single client.
type ClientConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// BackupConfig controls the snapshots taken before client documents are rewritten.
type BackupConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Retention int    `mapstructure:"retention" yaml:"retention"`
	Dir       string `mapstructure:"dir" yaml:"dir"`
}

// ClientPath returns the configured document path for a client identifier.
func (c *Config) ClientPath(name string) string {
	switch name {
	case paths.ClientCode:
		return c.Clients.Code.Path
	case paths.ClientDesktop:
		return c.Clients.Desktop.Path
	default:
		return ""
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName(paths.ConfigFileName())
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("registry_path", paths.RegistryPath())
	viper.SetDefault("clients.code.path", paths.CodeConfigPath())
	viper.SetDefault("clients.desktop.path", paths.DesktopConfigPath())
	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.retention", 5)
	viper.SetDefault("backup.dir", paths.BackupDir())
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.RegistryPath = expandHome(cfg.RegistryPath)
	cfg.Clients.Code.Path = expandHome(cfg.Clients.Code.Path)
	cfg.Clients.Desktop.Path = expandHome(cfg.Clients.Desktop.Path)
	cfg.Backup.Dir = expandHome(cfg.Backup.Dir)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("validating config: %w", errs[0])
	}

	return &cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if p == "~" {
		return paths.Home()
	}
	if strings.HasPrefix(p, "~/") {
		home := paths.Home()
		if home == "" {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
