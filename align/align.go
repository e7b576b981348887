// Package align merges the word-level transcript with the speaker-turn
// track into one ordered sequence of speaker-attributed utterances. The two
// inputs are produced by independent models and their timestamps rarely
// agree exactly, so words are attributed by midpoint containment and
// utterance boundaries come from speaker changes and pauses.
package align

import (
	"strings"

	"github.com/honza-kasik/zastupitelstvo-transcriber/transcript"
)

// UnknownSpeaker labels words whose midpoint no diarization turn covers.
const UnknownSpeaker = "unknown"

// DefaultPauseThreshold is the gap in seconds between adjacent words that
// forces an utterance boundary even without a speaker change.
const DefaultPauseThreshold = 5.0

// Utterance is a maximal run of words by one speaker without an internal
// pause over the threshold. Immutable once built; Tokens is populated by
// the normalization stage before vectorization and is the only field the
// pipeline fills in later.
type Utterance struct {
	ID      int      `json:"id"`
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	Speaker string   `json:"speaker"`
	Text    string   `json:"text"`
	Tokens  []string `json:"-"`
}

// Diagnostics records non-fatal anomalies seen while aligning.
type Diagnostics struct {
	// UncoveredWords counts words that fell outside every speaker turn.
	UncoveredWords int `json:"uncovered_words"`
}

// Aligner segments words into utterances.
type Aligner struct {
	// PauseThreshold in seconds; non-positive values use the default.
	PauseThreshold float64
}

// Align attributes every word to a speaker and groups consecutive words
// into utterances. Inputs are assumed validated. No word is dropped: the
// concatenation of utterance texts is exactly the input word sequence. An
// empty word list yields an empty result, and an empty turn track yields
// utterances attributed to UnknownSpeaker.
func (a Aligner) Align(words []transcript.Word, turns []transcript.SpeakerTurn) ([]Utterance, Diagnostics) {
	threshold := a.PauseThreshold
	if threshold <= 0 {
		threshold = DefaultPauseThreshold
	}

	var (
		utts  []Utterance
		diag  Diagnostics
		texts []string
		cur   *Utterance
		turn  int
	)

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = strings.Join(texts, " ")
		utts = append(utts, *cur)
		cur = nil
		texts = texts[:0]
	}

	for i, w := range words {
		mid := (w.Start + w.End) / 2

		// Both sequences are time-ordered, so the containing turn is found
		// by walking a cursor forward. A turn whose End equals the midpoint
		// still wins over a later turn starting there.
		for turn < len(turns) && turns[turn].End < mid {
			turn++
		}
		speaker := UnknownSpeaker
		if turn < len(turns) && turns[turn].Start <= mid {
			speaker = turns[turn].Speaker
		} else {
			diag.UncoveredWords++
		}

		pause := i > 0 && w.Start-words[i-1].End > threshold
		if cur == nil || cur.Speaker != speaker || pause {
			flush()
			cur = &Utterance{ID: len(utts), Start: w.Start, Speaker: speaker}
		}
		if w.End > cur.End {
			cur.End = w.End
		}
		texts = append(texts, w.Text)
	}
	flush()

	return utts, diag
}
