package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <recording-id>",
		Short: "Show metadata for one recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireRecordingID(args)
			if err != nil {
				return err
			}

			client, err := ctx.client(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := client.GetRecordingInfo(cmd.Context(), id)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, newRecordingView(*rec))
			}

			out := cmd.OutOrStdout()
			title := rec.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(out, "ID:       %s\n", rec.Identifier())
			fmt.Fprintf(out, "Title:    %s\n", title)
			fmt.Fprintf(out, "Created:  %s\n", formatTime(rec.CreatedAt))
			fmt.Fprintf(out, "Length:   %s\n", formatDuration(rec.Duration))
			if rec.Location != "" {
				fmt.Fprintf(out, "Location: %s\n", rec.Location)
			}
			if rec.Latitude != nil && rec.Longitude != nil {
				fmt.Fprintf(out, "Position: %.5f, %.5f\n", *rec.Latitude, *rec.Longitude)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
