package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recorderctl/internal/recorder"
	"recorderctl/internal/wire"
)

type recordingView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title,omitempty"`
	Created         string   `json:"created,omitempty"`
	DurationSeconds int64    `json:"duration_seconds,omitempty"`
	Location        string   `json:"location,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

func newRecordingView(rec wire.Recording) recordingView {
	view := recordingView{
		ID:              rec.Identifier(),
		Title:           rec.Title,
		DurationSeconds: int64(rec.Duration / time.Second),
		Location:        rec.Location,
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,
	}
	if !rec.CreatedAt.IsZero() {
		view.Created = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	return view
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		sinceFlag  string
		pageSize   int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := parseSince(sinceFlag)
			if err != nil {
				return err
			}

			client, err := ctx.client(cmd.Context())
			if err != nil {
				return err
			}
			recordings, err := client.ListAllRecordings(cmd.Context(), recorder.ListOptions{
				Limit:    limit,
				Since:    since,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				views := make([]recordingView, 0, len(recordings))
				for _, rec := range recordings {
					views = append(views, newRecordingView(rec))
				}
				return writeJSON(cmd, views)
			}

			if len(recordings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recordings.")
				return nil
			}

			rows := make([][]string, 0, len(recordings))
			for _, rec := range recordings {
				title := rec.Title
				if title == "" {
					title = "(untitled)"
				}
				rows = append(rows, []string{
					rec.Identifier(),
					title,
					formatTime(rec.CreatedAt),
					formatDuration(rec.Duration),
					rec.Location,
				})
			}
			headers := []string{"ID", "Title", "Created", "Length", "Location"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many recordings (0 = all)")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Only recordings created at or after this time")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Recordings per request page")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
