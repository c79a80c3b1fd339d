package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"recorderctl/internal/fileutil"
)

func newAudioCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "audio <recording-id>",
		Short: "Download the audio of a recording",
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
			payload, err := client.DownloadAudio(cmd.Context(), id)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				name := payload.Filename
				if name == "" {
					name = id + ".m4a"
				}
				target = fileutil.SanitizeName(name)
			}
			if dir := filepath.Dir(target); dir != "." {
				target = filepath.Join(dir, fileutil.SanitizeName(filepath.Base(target)))
			}

			if err := fileutil.WriteFileAtomic(target, payload.Bytes, 0o644); err != nil {
				return fmt.Errorf("write audio file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", target, len(payload.Bytes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (defaults to the server's suggested name)")
	return cmd
}
