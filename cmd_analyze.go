package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/honza-kasik/zastupitelstvo-transcriber/orchestrator"
	"github.com/honza-kasik/zastupitelstvo-transcriber/topics"
	"github.com/honza-kasik/zastupitelstvo-transcriber/transcript"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		wordsPath      string
		turnsPath      string
		annotatedPath  string
		durationSec    float64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Cluster an existing transcript into topics",
		Long: `Runs the topic core on already-materialized inputs: either the
word/turn JSON pair produced by the transcription services, or a legacy
annotated transcript file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateMeetingFlags(); err != nil {
				return err
			}
			if cmd.Flags().Changed("duration") && durationSec <= 0 {
				return fmt.Errorf("--duration must be positive, got %v", durationSec)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var (
				words []transcript.Word
				turns []transcript.SpeakerTurn
			)
			switch {
			case annotatedPath != "":
				f, err := os.Open(annotatedPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if words, turns, err = transcript.ParseAnnotated(f); err != nil {
					return err
				}
			case wordsPath != "":
				if words, err = transcript.LoadWords(wordsPath); err != nil {
					return err
				}
				if turnsPath != "" {
					if turns, err = transcript.LoadTurns(turnsPath); err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("either --transcript or --words is required")
			}

			meta := topics.Metadata{
				MeetingDate:      flagDate,
				MeetingNumber:    flagNumber,
				TotalDurationSec: durationSec,
			}
			if meta.TotalDurationSec == 0 && len(words) > 0 {
				meta.TotalDurationSec = words[len(words)-1].End
			}

			p := orchestrator.New(cfg)
			res, err := p.Run(cmd.Context(), words, turns, meta)
			if err != nil {
				return err
			}
			if err := p.Persist(flagOutdir, res); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"topics": res.Diagnostics.TopicCount,
				"outdir": flagOutdir,
			}).Info("analysis complete")
			return nil
		},
	}

	addMeetingFlags(cmd)
	cmd.Flags().StringVar(&wordsPath, "words", "", "transcript words JSON file")
	cmd.Flags().StringVar(&turnsPath, "turns", "", "speaker turns JSON file")
	cmd.Flags().StringVar(&annotatedPath, "transcript", "", "legacy annotated transcript file")
	cmd.Flags().Float64Var(&durationSec, "duration", 0, "total meeting duration in seconds (default: end of last word)")
	return cmd
}
