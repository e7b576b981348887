// Package transcript holds the read-only inputs of one meeting run: the
// time-stamped word sequence produced by the speech-to-text stage and the
// speaker-turn track produced by diarization. Both are validated once and
// never mutated afterwards.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Word is a single transcribed word with its time range in seconds.
type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SpeakerTurn is one diarization turn. Turns in a track are expected to be
// time-ordered and non-overlapping.
type SpeakerTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

var (
	// ErrNegativeTime marks a timestamp below zero.
	ErrNegativeTime = errors.New("negative timestamp")
	// ErrInvertedRange marks an entry whose end precedes its start.
	ErrInvertedRange = errors.New("inverted time range")
	// ErrOutOfOrder marks a sequence whose start times decrease.
	ErrOutOfOrder = errors.New("out-of-order sequence")
	// ErrOverlap marks speaker turns that overlap in time.
	ErrOverlap = errors.New("overlapping speaker turns")
)

// ValidateWords checks the word sequence for corrupted timing data. Every
// downstream stage depends on temporal ordering, so a failure here aborts
// the run before any alignment happens.
func ValidateWords(words []Word) error {
	for i, w := range words {
		if w.Start < 0 || w.End < 0 {
			return fmt.Errorf("word %d (%q): %w", i, w.Text, ErrNegativeTime)
		}
		if w.End < w.Start {
			return fmt.Errorf("word %d (%q): %w", i, w.Text, ErrInvertedRange)
		}
		if i > 0 && w.Start < words[i-1].Start {
			return fmt.Errorf("word %d (%q): %w", i, w.Text, ErrOutOfOrder)
		}
	}
	return nil
}

// ValidateTurns checks the diarization track. An empty track is valid: the
// aligner degrades to unknown speakers.
func ValidateTurns(turns []SpeakerTurn) error {
	for i, t := range turns {
		if t.Start < 0 || t.End < 0 {
			return fmt.Errorf("turn %d (%s): %w", i, t.Speaker, ErrNegativeTime)
		}
		if t.End < t.Start {
			return fmt.Errorf("turn %d (%s): %w", i, t.Speaker, ErrInvertedRange)
		}
		if i > 0 {
			if t.Start < turns[i-1].Start {
				return fmt.Errorf("turn %d (%s): %w", i, t.Speaker, ErrOutOfOrder)
			}
			if t.Start < turns[i-1].End {
				return fmt.Errorf("turn %d (%s): %w", i, t.Speaker, ErrOverlap)
			}
		}
	}
	return nil
}

// LoadWords reads a JSON array of words from disk and validates it.
func LoadWords(path string) ([]Word, error) {
	var words []Word
	if err := readJSON(path, &words); err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	if err := ValidateWords(words); err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	return words, nil
}

// LoadTurns reads a JSON array of speaker turns from disk and validates it.
func LoadTurns(path string) ([]SpeakerTurn, error) {
	var turns []SpeakerTurn
	if err := readJSON(path, &turns); err != nil {
		return nil, fmt.Errorf("load turns: %w", err)
	}
	if err := ValidateTurns(turns); err != nil {
		return nil, fmt.Errorf("load turns: %w", err)
	}
	return turns, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
