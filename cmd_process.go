package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/honza-kasik/zastupitelstvo-transcriber/article"
	"github.com/honza-kasik/zastupitelstvo-transcriber/clients"
	"github.com/honza-kasik/zastupitelstvo-transcriber/orchestrator"
	"github.com/honza-kasik/zastupitelstvo-transcriber/topics"
	"github.com/honza-kasik/zastupitelstvo-transcriber/transcript"
)

func newProcessCmd() *cobra.Command {
	var (
		audioPath string
		layout    string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Full pipeline: audio to topics to drafting files",
		Long: `Sends the audio to the transcription and diarization services,
runs the topic core on their output and writes both the topic artifact and
the drafting hand-off files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateMeetingFlags(); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Services.ASR.URL == "" {
				return fmt.Errorf("services.asr.url is not configured")
			}
			if _, err := os.Stat(audioPath); err != nil {
				return fmt.Errorf("audio file: %w", err)
			}

			ctx := cmd.Context()
			h := clients.NewHTTP()

			logrus.WithField("audio", audioPath).Info("transcribing")
			words, err := h.Transcribe(ctx, cfg.Services.ASR.URL, audioPath)
			if err != nil {
				return fmt.Errorf("transcription: %w", err)
			}

			var opts []orchestrator.Option
			meta := topics.Metadata{MeetingDate: flagDate, MeetingNumber: flagNumber}
			if len(words) > 0 {
				meta.TotalDurationSec = words[len(words)-1].End
			}

			var turnTrack []transcript.SpeakerTurn
			if cfg.Services.Diarization.URL != "" {
				logrus.Info("diarizing")
				turnTrack, err = h.Diarize(ctx, cfg.Services.Diarization.URL, audioPath)
				if err != nil {
					return fmt.Errorf("diarization: %w", err)
				}
			} else {
				// Missing diarization degrades to unknown speakers.
				logrus.Warn("services.diarization.url not configured, speakers will be unknown")
			}

			if cfg.Services.Lemmatizer.URL != "" {
				var sb strings.Builder
				for _, w := range words {
					sb.WriteString(w.Text)
					sb.WriteByte(' ')
				}
				table, err := h.Lemmatize(ctx, cfg.Services.Lemmatizer.URL, sb.String())
				if err != nil {
					// The built-in stemmer covers for a missing tagger;
					// precision degrades, content does not.
					logrus.WithError(err).Warn("lemmatizer service unavailable, using built-in stemmer")
				} else {
					opts = append(opts, orchestrator.WithNormalizer(table))
				}
			}

			p := orchestrator.New(cfg, opts...)
			res, err := p.Run(ctx, words, turnTrack, meta)
			if err != nil {
				return err
			}
			if err := p.Persist(flagOutdir, res); err != nil {
				return err
			}

			payload := topics.BuildPayload(res.Artifact, topics.PayloadOptions{
				MinMinutes:  cfg.Topics.MinTopicMinutes,
				MaxTopics:   cfg.Topics.MaxTopics,
				MaxEvidence: cfg.Topics.MaxEvidence,
			})
			prompt, err := article.Prompt(payload)
			if err != nil {
				return err
			}
			draft, err := article.JekyllDraft(article.BuildMeta(payload, meta, layout))
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(flagOutdir, promptFile), []byte(prompt), 0o644); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(flagOutdir, draftFile), []byte(draft), 0o644); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"topics": res.Diagnostics.TopicCount,
				"outdir": flagOutdir,
			}).Info("processing complete")
			return nil
		},
	}

	addMeetingFlags(cmd)
	cmd.Flags().StringVarP(&audioPath, "audio", "i", "", "input audio file")
	cmd.Flags().StringVar(&layout, "layout", "meeting", "Jekyll layout name")
	_ = cmd.MarkFlagRequired("audio")
	return cmd
}
