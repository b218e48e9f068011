// Package cli defines the jetaudio command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jetaudio/jetaudio/internal/config"
	"github.com/jetaudio/jetaudio/internal/mediastore"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// options are the persistent flags.
type options struct {
	configPath string
	database   string
	dirs       []string
}

// NewRootCmd builds the command tree. Without a subcommand the TUI starts.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "jetaudio",
		Short: "Terminal music player for your local library",
		Long: `jetaudio indexes the audio files under your music directories and
plays them from a terminal UI.

Playback is exposed to the desktop through MPRIS and a playback
notification, so media keys and desktop widgets control it too.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (read after the default locations)")
	flags.StringVar(&opts.database, "db", "", "Media index path (default: $XDG_DATA_HOME/jetaudio/media.db)")
	flags.StringSliceVar(&opts.dirs, "dir", nil, "Music directory to index (repeatable, overrides music_dirs)")

	root.AddCommand(newScanCmd(opts), newListCmd(opts))
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jetaudio:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	var extra []string
	if o.configPath != "" {
		extra = append(extra, o.configPath)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return nil, err
	}
	if o.database != "" {
		cfg.Database = o.database
	}
	if len(o.dirs) > 0 {
		cfg.MusicDirs = o.dirs
	}
	return cfg, nil
}

func databasePath(cfg *config.Config) (string, error) {
	if cfg.Database != "" {
		return cfg.Database, nil
	}
	return mediastore.DefaultPath()
}
