package topics

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/honza-kasik/zastupitelstvo-transcriber/align"
	"github.com/honza-kasik/zastupitelstvo-transcriber/cluster"
	"github.com/honza-kasik/zastupitelstvo-transcriber/vectorize"
)

// Options bound the summary output.
type Options struct {
	// MaxRepresentativeLen truncates representative text, in runes.
	MaxRepresentativeLen int
	// MaxEvidence caps the supporting sentences kept per topic.
	MaxEvidence int
}

// DefaultOptions mirror the deployed configuration.
var DefaultOptions = Options{MaxRepresentativeLen: 400, MaxEvidence: 3}

// Summarize folds the clusterer's labels back onto the original utterances
// and builds the ordered artifact. indices maps each label position to the
// unit it describes; units and utts are the full sequences. Windowed units
// may overlap, so an utterance claimed by two clusters stays with the
// cluster of its earliest unit.
func Summarize(
	utts []align.Utterance,
	units []vectorize.Unit,
	indices []int,
	labels []int,
	corpus *vectorize.Corpus,
	meta Metadata,
	opts Options,
) Artifact {
	if opts.MaxRepresentativeLen <= 0 {
		opts.MaxRepresentativeLen = DefaultOptions.MaxRepresentativeLen
	}
	if opts.MaxEvidence <= 0 {
		opts.MaxEvidence = DefaultOptions.MaxEvidence
	}

	// First pass: utterance -> cluster, earliest unit wins.
	uttCluster := make(map[int]int)
	clusterUnits := make(map[int][]int)
	for pos, lbl := range labels {
		if lbl == cluster.Noise {
			continue
		}
		unit := units[indices[pos]]
		clusterUnits[lbl] = append(clusterUnits[lbl], unit.Index)
		for _, uid := range unit.Utterances {
			if _, claimed := uttCluster[uid]; !claimed {
				uttCluster[uid] = lbl
			}
		}
	}

	clusterIDs := make([]int, 0, len(clusterUnits))
	for id := range clusterUnits {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Ints(clusterIDs)

	var out []Topic
	for _, id := range clusterIDs {
		members := membersOf(utts, uttCluster, id)
		if len(members) == 0 {
			continue
		}
		out = append(out, buildTopic(id, members, units, clusterUnits[id], corpus, opts))
	}

	// Chronological by first occurrence; resurfacing topics keep their span.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	a := Artifact{Meta: meta, Topics: out}
	if bucket := unclustered(utts, uttCluster); len(bucket.UtteranceIDs) > 0 {
		a.Unclustered = &bucket
	}
	return a
}

func membersOf(utts []align.Utterance, uttCluster map[int]int, id int) []align.Utterance {
	var members []align.Utterance
	for _, u := range utts {
		if lbl, ok := uttCluster[u.ID]; ok && lbl == id {
			members = append(members, u)
		}
	}
	return members
}

func unclustered(utts []align.Utterance, uttCluster map[int]int) Bucket {
	var b Bucket
	for _, u := range utts {
		if _, ok := uttCluster[u.ID]; !ok {
			b.UtteranceIDs = append(b.UtteranceIDs, u.ID)
		}
	}
	b.UtteranceCount = len(b.UtteranceIDs)
	return b
}

func buildTopic(
	id int,
	members []align.Utterance,
	units []vectorize.Unit,
	unitIdx []int,
	corpus *vectorize.Corpus,
	opts Options,
) Topic {
	t := Topic{
		ID:    id,
		Start: math.Inf(1),
	}

	speakerWords := make(map[string]int)
	lemmaCounts := make(map[string]int)
	for _, m := range members {
		t.UtteranceIDs = append(t.UtteranceIDs, m.ID)
		if m.Start < t.Start {
			t.Start = m.Start
		}
		if m.End > t.End {
			t.End = m.End
		}
		speakerWords[m.Speaker] += len(strings.Fields(m.Text))
		for _, tok := range m.Tokens {
			lemmaCounts[tok]++
		}
	}
	t.UtteranceCount = len(members)
	t.TimeMinutes = math.Round((t.End-t.Start)/60*10) / 10
	t.Speakers = sortedKeys(speakerWords)
	t.Type = classify(speakerWords)
	t.TopLemmas = topLemmas(lemmaCounts, 15)
	t.Hint = hintFor(t.TopLemmas)

	rep := representative(members, units, unitIdx, corpus)
	t.Representative = truncate(rep.Text, opts.MaxRepresentativeLen)
	t.Evidence = evidence(members, t.TopLemmas, opts.MaxEvidence)
	return t
}

// representative picks the member utterance closest to the cluster centroid
// in cosine similarity. Members without in-vocabulary tokens cannot be
// scored; when no member scores, the longest member by token count wins.
func representative(
	members []align.Utterance,
	units []vectorize.Unit,
	unitIdx []int,
	corpus *vectorize.Corpus,
) align.Utterance {
	centroid := centroidOf(units, unitIdx, corpus)

	best := -1
	bestScore := math.Inf(-1)
	if centroid != nil {
		for i, m := range members {
			v := corpus.Vector(m.Tokens)
			if v == nil {
				continue
			}
			score := dot(v, centroid)
			if score > bestScore {
				best, bestScore = i, score
			}
		}
	}
	if best >= 0 {
		return members[best]
	}

	longest := 0
	for i := range members {
		if len(members[i].Tokens) > len(members[longest].Tokens) {
			longest = i
		}
	}
	return members[longest]
}

func centroidOf(units []vectorize.Unit, unitIdx []int, corpus *vectorize.Corpus) []float64 {
	var centroid []float64
	n := 0
	for _, idx := range unitIdx {
		v := units[idx].Vector
		if v == nil {
			continue
		}
		if centroid == nil {
			centroid = make([]float64, len(v))
		}
		for d := range v {
			centroid[d] += v[d]
		}
		n++
	}
	if n == 0 {
		return nil
	}
	for d := range centroid {
		centroid[d] /= float64(n)
	}
	return centroid
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func topLemmas(counts map[string]int, limit int) []string {
	lemmas := sortedKeys(counts)
	sort.SliceStable(lemmas, func(i, j int) bool {
		return counts[lemmas[i]] > counts[lemmas[j]]
	})
	var out []string
	for _, l := range lemmas {
		if _, generic := genericLemmas[l]; generic {
			continue
		}
		out = append(out, l)
		if len(out) == limit {
			break
		}
	}
	return out
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
