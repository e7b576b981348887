package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/honza-kasik/zastupitelstvo-transcriber/article"
	"github.com/honza-kasik/zastupitelstvo-transcriber/topics"
)

const (
	promptFile = "llm_prompt.txt"
	draftFile  = "jekyll_draft.md"
)

func newArticleCmd() *cobra.Command {
	var (
		payloadPath string
		layout      string
	)

	cmd := &cobra.Command{
		Use:   "article",
		Short: "Build the drafting prompt and Jekyll skeleton from analyzed topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateMeetingFlags(); err != nil {
				return err
			}

			raw, err := os.ReadFile(payloadPath)
			if err != nil {
				return err
			}
			var payload []topics.PayloadTopic
			if err := json.Unmarshal(raw, &payload); err != nil {
				return err
			}

			prompt, err := article.Prompt(payload)
			if err != nil {
				return err
			}
			meta := article.BuildMeta(payload, topics.Metadata{
				MeetingDate:   flagDate,
				MeetingNumber: flagNumber,
			}, layout)
			draft, err := article.JekyllDraft(meta)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(flagOutdir, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(flagOutdir, promptFile), []byte(prompt), 0o644); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(flagOutdir, draftFile), []byte(draft), 0o644); err != nil {
				return err
			}
			logrus.WithField("outdir", flagOutdir).Info("drafting files written")
			return nil
		},
	}

	addMeetingFlags(cmd)
	cmd.Flags().StringVar(&payloadPath, "topics", "llm_input.json", "payload JSON produced by analyze")
	cmd.Flags().StringVar(&layout, "layout", "meeting", "Jekyll layout name")
	return cmd
}
