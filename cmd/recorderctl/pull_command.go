package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recorderctl/internal/archive"
	"recorderctl/internal/recorder"
)

func newPullCommand(ctx *commandContext) *cobra.Command {
	var (
		limit     int
		sinceFlag string
		noAudio   bool
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Mirror transcripts and audio to the download directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := parseSince(sinceFlag)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.client(cmd.Context())
			if err != nil {
				return err
			}

			catalog, err := archive.OpenCatalog(cfg.CatalogPath())
			if err != nil {
				return err
			}
			defer catalog.Close()

			puller, err := archive.NewPuller(client, catalog, cfg.Paths.DownloadDir,
				archive.WithAudio(!noAudio),
				archive.WithPullLogger(ctx.logger()),
			)
			if err != nil {
				return err
			}

			summary, err := puller.Run(cmd.Context(), recorder.ListOptions{
				Limit: limit,
				Since: since,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d new, skipped %d already archived, %d failed.\n",
				summary.Downloaded, summary.Skipped, summary.Failed)
			if summary.Failed > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Failures are logged; rerun to retry them.")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many recordings (0 = all)")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Only recordings created at or after this time")
	cmd.Flags().BoolVar(&noAudio, "no-audio", false, "Pull transcripts only")
	return cmd
}
