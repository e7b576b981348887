package topics

import "sort"

// PayloadTopic is one entry of the filtered hand-off to the article
// drafting stage: dense, ordered by importance, stripped of everything the
// language model does not need.
type PayloadTopic struct {
	Order       int      `json:"order"`
	TimeMinutes float64  `json:"time_minutes"`
	Type        string   `json:"topic_type"`
	Hint        string   `json:"topic_hint"`
	Evidence    []string `json:"evidence"`
}

// PayloadOptions filter the artifact down to drafting input.
type PayloadOptions struct {
	MinMinutes  float64
	MaxTopics   int
	MaxEvidence int
}

// DefaultPayloadOptions mirror the deployed drafting configuration.
var DefaultPayloadOptions = PayloadOptions{MinMinutes: 3, MaxTopics: 10, MaxEvidence: 3}

// BuildPayload ranks topics by time spent, the strongest importance signal
// a meeting gives, drops the short ones and caps the rest.
func BuildPayload(a Artifact, opts PayloadOptions) []PayloadTopic {
	if opts.MaxTopics <= 0 {
		opts.MaxTopics = DefaultPayloadOptions.MaxTopics
	}
	if opts.MaxEvidence <= 0 {
		opts.MaxEvidence = DefaultPayloadOptions.MaxEvidence
	}

	kept := make([]Topic, 0, len(a.Topics))
	for _, t := range a.Topics {
		if t.TimeMinutes >= opts.MinMinutes {
			kept = append(kept, t)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].TimeMinutes > kept[j].TimeMinutes })
	if len(kept) > opts.MaxTopics {
		kept = kept[:opts.MaxTopics]
	}

	out := make([]PayloadTopic, 0, len(kept))
	for i, t := range kept {
		ev := t.Evidence
		if len(ev) > opts.MaxEvidence {
			ev = ev[:opts.MaxEvidence]
		}
		out = append(out, PayloadTopic{
			Order:       i + 1,
			TimeMinutes: t.TimeMinutes,
			Type:        t.Type,
			Hint:        t.Hint,
			Evidence:    ev,
		})
	}
	return out
}
