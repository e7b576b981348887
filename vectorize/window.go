// Package vectorize turns the utterance sequence into the feature vectors
// the clusterer consumes. Clustering units are sliding windows of
// consecutive utterances; a window size of one clusters single utterances.
// Term weights are meeting-global TF-IDF, computed once per run into an
// immutable Corpus so concurrent runs share nothing.
package vectorize

import (
	"github.com/honza-kasik/zastupitelstvo-transcriber/align"
)

// Unit is one clustering unit: a window of consecutive utterances with the
// concatenation of their normalized tokens.
type Unit struct {
	Index      int      `json:"index"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Utterances []int    `json:"utterance_ids"`
	Tokens     []string `json:"tokens"`

	// Vector is nil for units with no tokens; such units are structural
	// noise and never reach the clusterer.
	Vector []float64 `json:"-"`
}

// Empty reports whether the unit carries no lexical content.
func (u Unit) Empty() bool { return len(u.Tokens) == 0 }

// BuildUnits slides a window of size utterances over the sequence,
// advancing by size-overlap each step. size <= 1 produces one unit per
// utterance, and a negative overlap is treated as zero. The final window is
// truncated rather than dropped so every utterance belongs to at least one
// unit.
func BuildUnits(utts []align.Utterance, size, overlap int) []Unit {
	if len(utts) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	step := size - overlap
	if step < 1 {
		step = 1
	}

	var units []Unit
	for lo := 0; lo < len(utts); lo += step {
		hi := lo + size
		if hi > len(utts) {
			hi = len(utts)
		}
		u := Unit{
			Index: len(units),
			Start: utts[lo].Start,
		}
		for _, ut := range utts[lo:hi] {
			u.Utterances = append(u.Utterances, ut.ID)
			u.Tokens = append(u.Tokens, ut.Tokens...)
			if ut.End > u.End {
				u.End = ut.End
			}
		}
		units = append(units, u)
		if hi == len(utts) {
			break
		}
	}
	return units
}
