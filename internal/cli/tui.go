package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jetaudio/jetaudio/internal/app"
	"github.com/jetaudio/jetaudio/internal/artwork"
	"github.com/jetaudio/jetaudio/internal/config"
	"github.com/jetaudio/jetaudio/internal/errmsg"
	"github.com/jetaudio/jetaudio/internal/icons"
	"github.com/jetaudio/jetaudio/internal/logging"
	"github.com/jetaudio/jetaudio/internal/mediastore"
	"github.com/jetaudio/jetaudio/internal/mpris"
	"github.com/jetaudio/jetaudio/internal/notify"
	"github.com/jetaudio/jetaudio/internal/playback"
	"github.com/jetaudio/jetaudio/internal/player"
	"github.com/jetaudio/jetaudio/internal/repository"
	"github.com/jetaudio/jetaudio/internal/service"
	"github.com/jetaudio/jetaudio/internal/session"
	"github.com/jetaudio/jetaudio/internal/stderr"
)

func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	log, logFile, err := logging.ToFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.Info().Str("version", version).Msg("starting")

	// Must run before the audio back-end opens the device.
	if capture, err := stderr.Start(log); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	} else {
		defer capture.Stop()
	}

	icons.Init(cfg.Icons)

	dbPath, err := databasePath(cfg)
	if err != nil {
		return err
	}
	store, err := mediastore.Open(dbPath, log)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLibraryOpen, err))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rescans := startIndexing(ctx, store, cfg, log)

	p := player.New(log)
	defer p.Release()

	svc, art, err := startService(ctx, session.New(p, log), cfg, log)
	if err != nil {
		return err
	}
	defer svc.OnDestroy()

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(svc.OnGetSession, art.URL, log)
		if err != nil {
			log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	sess := svc.OnGetSession(session.ControllerInfo{Name: "terminal", Kind: session.KindTUI})
	repo := repository.New(mediastore.Resolver{Store: store})
	ctrl := playback.New(repo, sess, log)

	model := app.New(app.Deps{
		Context:    ctx,
		Controller: ctrl,
		Session:    sess,
		Rescans:    rescans,
		Log:        log,
	})
	prog := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info().Msg("exiting")
	return nil
}

// startIndexing runs an initial scan and, when enabled, the watcher. Both
// report changed indexes on the returned channel.
func startIndexing(ctx context.Context, store *mediastore.Store, cfg *config.Config, log zerolog.Logger) <-chan mediastore.ScanStats {
	rescans := make(chan mediastore.ScanStats, 4)
	report := func(stats mediastore.ScanStats) {
		select {
		case rescans <- stats:
		default:
		}
	}

	go func() {
		stats, err := store.Scan(ctx, cfg.MusicDirs, nil)
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Msg(errmsg.Format(errmsg.OpLibraryScan, err))
			}
			return
		}
		report(stats)

		if !cfg.WatchEnabled() {
			return
		}
		w := mediastore.NewWatcher(store, cfg.MusicDirs, mediastore.DefaultDebounce)
		w.OnRescan = report
		if err := w.Run(ctx); err != nil {
			log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpLibraryWatch, err))
		}
	}()
	return rescans
}

// startService creates the playback service around sess and activates it.
func startService(ctx context.Context, sess *session.MediaSession, cfg *config.Config, log zerolog.Logger) (*service.JetAudioService, *artwork.Cache, error) {
	art := artwork.NewCache("", artwork.DefaultSize, log)

	var platform service.Platform
	var notifier notify.Notifier
	if cfg.NotificationsEnabled() {
		notifier = notify.New(log)
		platform = service.PlatformFunc(notifier.ServerVersion)
	} else {
		notifier = notify.Disabled()
	}
	mgr := notify.NewPlaybackManager(notifier, log)
	mgr.IconFor = art.Path

	svc, err := service.New(sess, mgr, platform,
		service.WithMinVersion(cfg.Notifications.MinServerVersion),
		service.WithLogger(log),
	)
	if err != nil {
		sess.Release()
		return nil, nil, errors.New(errmsg.Format(errmsg.OpServiceStart, err))
	}
	if err := svc.OnStartCommand(ctx); err != nil {
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpServiceStart, err))
	}
	return svc, art, nil
}
