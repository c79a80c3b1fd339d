package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recorderctl/internal/language"
	"recorderctl/internal/wire"
)

type segmentView struct {
	Text     string `json:"text"`
	Speaker  string `json:"speaker,omitempty"`
	Language string `json:"language,omitempty"`
	StartMS  *int64 `json:"start_ms,omitempty"`
	EndMS    *int64 `json:"end_ms,omitempty"`
}

type transcriptView struct {
	FullText string        `json:"full_text"`
	Segments []segmentView `json:"segments"`
}

func newTranscriptView(t wire.Transcript) transcriptView {
	view := transcriptView{
		FullText: t.FullText(),
		Segments: make([]segmentView, 0, len(t.Segments)),
	}
	for _, seg := range t.Segments {
		sv := segmentView{
			Text:     seg.Text,
			Speaker:  seg.SpeakerLabel(),
			Language: seg.Language,
		}
		if start, ok := seg.StartMS(); ok {
			sv.StartMS = &start
		}
		if end, ok := seg.EndMS(); ok {
			sv.EndMS = &end
		}
		view.Segments = append(view.Segments, sv)
	}
	return view
}

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		plainText  bool
	)

	cmd := &cobra.Command{
		Use:   "transcript <recording-id>",
		Short: "Show the transcript of a recording",
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
			transcript, err := client.GetTranscript(cmd.Context(), id)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, newTranscriptView(transcript))
			}

			out := cmd.OutOrStdout()
			if len(transcript.Segments) == 0 {
				fmt.Fprintln(out, "No transcript.")
				return nil
			}
			if plainText {
				fmt.Fprintln(out, transcript.FullText())
				return nil
			}

			for _, seg := range transcript.Segments {
				prefix := ""
				if start, ok := seg.StartMS(); ok {
					prefix = "[" + formatOffset(start) + "] "
				}
				if label := seg.SpeakerLabel(); label != "" {
					prefix += label + ": "
				}
				fmt.Fprintf(out, "%s%s\n", prefix, seg.Text)
			}
			if lang := transcript.Segments[0].Language; lang != "" {
				fmt.Fprintf(out, "\nLanguage: %s\n", language.DisplayName(lang))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	cmd.Flags().BoolVar(&plainText, "text", false, "Print the bare transcript text only")
	return cmd
}
