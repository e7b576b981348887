// Command zastupitelstvo-transcriber turns a recorded council meeting into
// a topic-segmented transcript artifact and the drafting hand-off files.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/honza-kasik/zastupitelstvo-transcriber/config"
)

var (
	flagConfig string

	flagDate   string
	flagNumber int
	flagOutdir string
)

func main() {
	root := &cobra.Command{
		Use:           "zastupitelstvo-transcriber",
		Short:         "Topic analysis of recorded council meetings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config.yaml (default: ./config.yaml)")

	root.AddCommand(newAnalyzeCmd(), newArticleCmd(), newProcessCmd())

	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Root, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	return cfg, nil
}

func addMeetingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagDate, "date", "d", "", "meeting date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&flagNumber, "number", "n", 0, "meeting sequence number")
	cmd.Flags().StringVarP(&flagOutdir, "outdir", "o", "out", "output directory")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("number")
}

func validateMeetingFlags() error {
	if _, err := time.Parse("2006-01-02", flagDate); err != nil {
		return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", flagDate)
	}
	if flagNumber < 1 {
		return fmt.Errorf("--number must be positive, got %d", flagNumber)
	}
	return nil
}
