// Package topics reduces cluster assignments to the Topic Artifact: one
// compact, chronologically ordered record per topic plus a separate bucket
// for unclustered content. The artifact is the sole hand-off object to the
// article-drafting stage and is never mutated after being written.
package topics

import (
	"sort"
)

// Metadata is run-level context passed through from the invocation,
// unchanged. Nothing here is derived from the clustering.
type Metadata struct {
	MeetingDate      string  `json:"meeting_date"`
	MeetingNumber    int     `json:"meeting_number"`
	TotalDurationSec float64 `json:"total_duration_seconds"`
}

// Topic is one discussion subject. Member utterances need not be
// temporally contiguous: a topic that resurfaces later in the meeting keeps
// a single record spanning both stretches.
type Topic struct {
	ID             int      `json:"topic_id"`
	Start          float64  `json:"start"`
	End            float64  `json:"end"`
	TimeMinutes    float64  `json:"time_minutes"`
	UtteranceIDs   []int    `json:"utterance_ids"`
	UtteranceCount int      `json:"utterance_count"`
	Speakers       []string `json:"speakers"`
	Type           string   `json:"topic_type"`
	Hint           string   `json:"topic_hint,omitempty"`
	TopLemmas      []string `json:"top_lemmas,omitempty"`
	Representative string   `json:"representative_text"`
	Evidence       []string `json:"evidence,omitempty"`
}

// Bucket collects the utterances no topic claimed.
type Bucket struct {
	UtteranceIDs   []int `json:"utterance_ids"`
	UtteranceCount int   `json:"utterance_count"`
}

// Artifact is the full ordered result for one meeting. Topics are listed by
// first occurrence; interleaving in time is allowed and expected.
type Artifact struct {
	Meta        Metadata `json:"meta"`
	Topics      []Topic  `json:"topics"`
	Unclustered *Bucket  `json:"unclustered,omitempty"`
}

// Topic discussion shapes, derived from how speaking time distributes over
// speakers within the topic.
const (
	TypeMonologue  = "monologue"
	TypeDiscussion = "discussion"
	TypeProcedural = "procedural"
)

// classify picks the topic type from per-speaker word counts.
func classify(speakerWords map[string]int) string {
	total := 0
	max := 0
	for _, n := range speakerWords {
		total += n
		if n > max {
			max = n
		}
	}
	switch {
	case total > 0 && float64(max)/float64(total) > 0.75 && len(speakerWords) <= 3:
		return TypeMonologue
	case len(speakerWords) >= 3:
		return TypeDiscussion
	default:
		return TypeProcedural
	}
}

// sortedKeys returns map keys in lexicographic order; artifact fields built
// from maps must not leak map iteration order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
