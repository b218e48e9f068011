package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jetaudio/jetaudio/internal/errmsg"
	"github.com/jetaudio/jetaudio/internal/logging"
	"github.com/jetaudio/jetaudio/internal/mediastore"
)

func newScanCmd(opts *options) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Index the music directories",
		Long: `Walk the music directories, read tags and durations of new or
changed files, and drop files that no longer exist from the index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
			}
			log := logging.ToConsole(cmd.ErrOrStderr(), cfg.Log.Level)

			dbPath, err := databasePath(cfg)
			if err != nil {
				return err
			}
			store, err := mediastore.Open(dbPath, log)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpLibraryOpen, err))
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var progress chan mediastore.ScanProgress
			done := make(chan struct{})
			if !quiet {
				progress = make(chan mediastore.ScanProgress, 16)
				go func() {
					defer close(done)
					reportProgress(cmd.ErrOrStderr(), progress)
				}()
			} else {
				close(done)
			}

			start := time.Now()
			stats, err := store.Scan(ctx, cfg.MusicDirs, progress)
			<-done
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpLibraryScan, err))
			}

			sum, err := store.Summary(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %s files in %s: %d added, %d updated, %d removed\n",
				humanize.Comma(int64(stats.Seen)), time.Since(start).Round(time.Millisecond),
				stats.Added, stats.Updated, stats.Removed)
			printSummary(out, sum)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not report progress")
	return cmd
}

// reportProgress prints phase changes and every hundredth probed file.
func reportProgress(w io.Writer, ch <-chan mediastore.ScanProgress) {
	phase := ""
	for p := range ch {
		switch {
		case p.Phase != phase:
			phase = p.Phase
			fmt.Fprintf(w, "%s…\n", p.Phase)
		case p.Phase == mediastore.PhaseProbe && p.Current%100 == 0:
			fmt.Fprintf(w, "  %s / %s\n", humanize.Comma(int64(p.Current)), humanize.Comma(int64(p.Total)))
		}
	}
}

func printSummary(w io.Writer, sum mediastore.Summary) {
	fmt.Fprintf(w, "Library: %s tracks, %s, %s of audio\n",
		humanize.Comma(int64(sum.Tracks)),
		humanize.Bytes(uint64(max(sum.TotalSize, 0))),
		(time.Duration(sum.DurationMS) * time.Millisecond).Round(time.Second))
}
