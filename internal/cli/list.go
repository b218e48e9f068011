package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jetaudio/jetaudio/internal/errmsg"
	"github.com/jetaudio/jetaudio/internal/logging"
	"github.com/jetaudio/jetaudio/internal/mediastore"
	"github.com/jetaudio/jetaudio/internal/repository"
	"github.com/jetaudio/jetaudio/internal/ui/home"
)

func newListCmd(opts *options) *cobra.Command {
	var showPaths bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the indexed tracks",
		Args:  cobra.NoArgs,
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

			repo := repository.New(mediastore.Resolver{Store: store})
			list, err := repo.GetAudioData(cmd.Context())
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpLibraryLoad, err))
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No audio files indexed. Run 'jetaudio scan' first.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, a := range list {
				name := a.DisplayName
				if showPaths {
					name = a.Data
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", a.ID, name, a.Artist, home.FormatDuration(int64(a.Duration)))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			sum, err := store.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			printSummary(out, sum)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showPaths, "paths", false, "Print full paths instead of file names")
	return cmd
}
