package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ExplicitMissingFileIsAnError(t *testing.T) {
	// Only the working-directory fallback tolerates absence; a path the
	// user named must exist.
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "cluster:\n  eps: 0.35\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.35, cfg.Cluster.Eps)
	// Untouched keys keep their defaults.
	assert.Equal(t, 2, cfg.Cluster.MinClusterSize)
	assert.Equal(t, 5.0, cfg.Align.PauseThresholdSec)
	assert.Equal(t, 3, cfg.Vectorize.WindowSize)
	assert.Equal(t, 1, cfg.Vectorize.WindowOverlap)
	assert.Equal(t, 400, cfg.Topics.MaxRepresentativeLen)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
align:
  pause_threshold_sec: 2.5
vectorize:
  window_size: 5
  window_overlap: 2
  workers: 8
cluster:
  eps: 0.4
  min_cluster_size: 3
topics:
  min_topic_minutes: 1.5
  max_topics: 6
services:
  asr:
    url: http://localhost:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2.5, cfg.Align.PauseThresholdSec)
	assert.Equal(t, 5, cfg.Vectorize.WindowSize)
	assert.Equal(t, 2, cfg.Vectorize.WindowOverlap)
	assert.Equal(t, 8, cfg.Vectorize.Workers)
	assert.Equal(t, 0.4, cfg.Cluster.Eps)
	assert.Equal(t, 3, cfg.Cluster.MinClusterSize)
	assert.Equal(t, 1.5, cfg.Topics.MinTopicMinutes)
	assert.Equal(t, 6, cfg.Topics.MaxTopics)
	assert.Equal(t, "http://localhost:9000", cfg.Services.ASR.URL)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero pause threshold", "align:\n  pause_threshold_sec: 0\n"},
		{"overlap not smaller than window", "vectorize:\n  window_size: 2\n  window_overlap: 2\n"},
		{"negative overlap", "vectorize:\n  window_overlap: -1\n"},
		{"eps above cosine range", "cluster:\n  eps: 2.5\n"},
		{"zero min cluster size", "cluster:\n  min_cluster_size: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "cluster: [unclosed\n"))
	assert.Error(t, err)
}
