package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify the saved session or sign in through the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := ctx.authenticate(cmd.Context(), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authenticated (authuser %d); session saved.\n", cred.AccountIndex)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Ignore the saved session and extract fresh cookies")
	return cmd
}
