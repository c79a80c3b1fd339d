package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type labelView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newLabelsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List the account's recording labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client(cmd.Context())
			if err != nil {
				return err
			}
			labels, err := client.ListLabels(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				views := make([]labelView, 0, len(labels))
				for _, label := range labels {
					views = append(views, labelView{ID: label.ID, Name: label.Name})
				}
				return writeJSON(cmd, views)
			}

			if len(labels) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No labels.")
				return nil
			}
			rows := make([][]string, 0, len(labels))
			for _, label := range labels {
				rows = append(rows, []string{label.ID, label.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
