// Package config loads the run configuration. Every tunable of the topic
// core (pause threshold, window geometry, density parameters, display
// truncation) lives here; nothing is hardcoded in the stages.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Align struct {
	// PauseThresholdSec forces an utterance boundary on gaps longer than
	// this, even within one speaker turn.
	PauseThresholdSec float64 `mapstructure:"pause_threshold_sec"`
}

type Vectorize struct {
	// WindowSize is the number of consecutive utterances per clustering
	// unit; 1 clusters single utterances.
	WindowSize int `mapstructure:"window_size"`
	// WindowOverlap is how many utterances adjacent windows share.
	WindowOverlap int `mapstructure:"window_overlap"`
	// Workers bounds the data-parallel fan-out; 0 means one worker.
	Workers int `mapstructure:"workers"`
}

type Cluster struct {
	Eps            float64 `mapstructure:"eps"`
	MinClusterSize int     `mapstructure:"min_cluster_size"`
}

type Topics struct {
	MaxRepresentativeLen int     `mapstructure:"max_representative_len"`
	MaxEvidence          int     `mapstructure:"max_evidence"`
	MinTopicMinutes      float64 `mapstructure:"min_topic_minutes"`
	MaxTopics            int     `mapstructure:"max_topics"`
}

type Service struct {
	URL string `mapstructure:"url"`
}

type Services struct {
	ASR         Service `mapstructure:"asr"`
	Diarization Service `mapstructure:"diarization"`
	Lemmatizer  Service `mapstructure:"lemmatizer"`
}

type Root struct {
	LogLevel  string    `mapstructure:"log_level"`
	Align     Align     `mapstructure:"align"`
	Vectorize Vectorize `mapstructure:"vectorize"`
	Cluster   Cluster   `mapstructure:"cluster"`
	Topics    Topics    `mapstructure:"topics"`
	Services  Services  `mapstructure:"services"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("align.pause_threshold_sec", 5.0)
	v.SetDefault("vectorize.window_size", 3)
	v.SetDefault("vectorize.window_overlap", 1)
	v.SetDefault("vectorize.workers", 4)
	v.SetDefault("cluster.eps", 0.5)
	v.SetDefault("cluster.min_cluster_size", 2)
	v.SetDefault("topics.max_representative_len", 400)
	v.SetDefault("topics.max_evidence", 3)
	v.SetDefault("topics.min_topic_minutes", 3.0)
	v.SetDefault("topics.max_topics", 10)
}

// Load reads config.yaml from the given path, falling back to the working
// directory. A missing file is fine since defaults cover every key; a
// malformed one is not.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ZASTR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Root) validate() error {
	if c.Align.PauseThresholdSec <= 0 {
		return fmt.Errorf("align.pause_threshold_sec must be positive, got %v", c.Align.PauseThresholdSec)
	}
	if c.Vectorize.WindowSize < 1 {
		return fmt.Errorf("vectorize.window_size must be at least 1, got %d", c.Vectorize.WindowSize)
	}
	if c.Vectorize.WindowOverlap < 0 {
		return fmt.Errorf("vectorize.window_overlap must be non-negative, got %d", c.Vectorize.WindowOverlap)
	}
	if c.Vectorize.WindowOverlap >= c.Vectorize.WindowSize {
		return fmt.Errorf("vectorize.window_overlap %d must be smaller than window_size %d",
			c.Vectorize.WindowOverlap, c.Vectorize.WindowSize)
	}
	if c.Cluster.Eps <= 0 || c.Cluster.Eps > 2 {
		return fmt.Errorf("cluster.eps must be in (0, 2], got %v", c.Cluster.Eps)
	}
	if c.Cluster.MinClusterSize < 1 {
		return fmt.Errorf("cluster.min_cluster_size must be at least 1, got %d", c.Cluster.MinClusterSize)
	}
	return nil
}
