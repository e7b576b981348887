package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/honza-kasik/zastupitelstvo-transcriber/topics"
)

// Output file names are part of the hand-off contract with the drafting
// stage and must not change between versions.
const (
	UnitsFile       = "units.json"
	ArtifactFile    = "topics.json"
	PayloadFile     = "llm_input.json"
	DiagnosticsFile = "diagnostics.json"
)

// Persist writes the run outputs into dir. The artifact and payload bytes
// are a pure function of inputs and configuration; only the diagnostics
// file differs between reruns.
func (p *Pipeline) Persist(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	payload := topics.BuildPayload(res.Artifact, topics.PayloadOptions{
		MinMinutes:  p.cfg.Topics.MinTopicMinutes,
		MaxTopics:   p.cfg.Topics.MaxTopics,
		MaxEvidence: p.cfg.Topics.MaxEvidence,
	})

	files := map[string]any{
		UnitsFile:       res.Units,
		ArtifactFile:    res.Artifact,
		PayloadFile:     payload,
		DiagnosticsFile: res.Diagnostics,
	}
	for name, v := range files {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
