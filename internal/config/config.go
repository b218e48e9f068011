// Package config loads the TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultMinServerVersion is the lowest notification server version that
// gets a playback notification.
const DefaultMinServerVersion = "1.2"

type Config struct {
	MusicDirs []string `koanf:"music_dirs"` // roots to index
	Database  string   `koanf:"database"`   // media index path; empty means XDG data dir
	Icons     string   `koanf:"icons"`      // "nerd", "unicode", or "none"
	Watch     *bool    `koanf:"watch"`      // re-index on file changes (default: true)

	Notifications NotificationsConfig `koanf:"notifications"`
	MPRIS         MPRISConfig         `koanf:"mpris"`
	Log           LogConfig           `koanf:"log"`
}

// NotificationsConfig controls the desktop playback notification.
type NotificationsConfig struct {
	Enabled          *bool  `koanf:"enabled"`            // default: true
	MinServerVersion string `koanf:"min_server_version"` // default: "1.2"
}

// MPRISConfig controls the MPRIS D-Bus interface.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `koanf:"file"`  // empty means XDG state dir
	Level string `koanf:"level"` // zerolog level name (default: "info")
}

// Load reads the default config files, then extra (for --config).
// Later files win. Missing default files are skipped; missing extra files
// are an error.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	for _, path := range extra {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	for i, dir := range c.MusicDirs {
		c.MusicDirs[i] = expandPath(dir)
	}
	if len(c.MusicDirs) == 0 && xdg.UserDirs.Music != "" {
		c.MusicDirs = []string{xdg.UserDirs.Music}
	}
	c.Database = expandPath(c.Database)
	c.Log.File = expandPath(c.Log.File)

	if c.Icons == "" {
		c.Icons = "unicode"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Notifications.MinServerVersion == "" {
		c.Notifications.MinServerVersion = DefaultMinServerVersion
	}
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/jetaudio/config.toml
		filepath.Join(xdg.ConfigHome, "jetaudio", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// WatchEnabled reports whether the library is re-indexed on changes.
func (c *Config) WatchEnabled() bool { return boolOr(c.Watch, true) }

// NotificationsEnabled reports whether the playback notification is used.
func (c *Config) NotificationsEnabled() bool { return boolOr(c.Notifications.Enabled, true) }

// MPRISEnabled reports whether the MPRIS interface is published.
func (c *Config) MPRISEnabled() bool { return boolOr(c.MPRIS.Enabled, true) }
