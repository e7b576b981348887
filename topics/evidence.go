package topics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/honza-kasik/zastupitelstvo-transcriber/align"
	"github.com/honza-kasik/zastupitelstvo-transcriber/normalize"
)

// genericLemmas are high-frequency verbs and filler nouns that say nothing
// about the subject; they are kept in the vectors (they still shape
// similarity) but dropped from the displayed top-lemma list. Stored in
// normalized form.
var genericLemmas = toNormalized(
	"být", "mít", "říci", "říkat", "chtít", "moci", "dělat", "vědět",
	"myslit", "jít", "prosit", "udělat", "řešit", "mluvit", "věc",
)

// domainHints maps normalized lemmas to human-readable topic categories of
// the municipal-council domain, used to label topics for the drafting stage.
var domainHints = func() map[string]string {
	src := map[string]string{
		"stavba":     "průběh stavby",
		"silnice":    "místní komunikace",
		"výkop":      "stavební práce",
		"vodovod":    "vodovodní infrastruktura",
		"kanalizace": "kanalizace",
		"dotace":     "dotace a financování",
		"obyvatel":   "dopad na obyvatele",
		"kontrola":   "kontrola a dohled",
		"usnesení":   "postup orgánů města",
		"pozemek":    "majetek města",
		"škola":      "školství",
		"rozpočet":   "rozpočet města",
	}
	var stem normalize.CzechStemmer
	out := make(map[string]string, len(src))
	for k, v := range src {
		if n, ok := stem.Normalize(k); ok {
			out[n] = v
		}
	}
	return out
}()

func toNormalized(words ...string) map[string]struct{} {
	var stem normalize.CzechStemmer
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if n, ok := stem.Normalize(w); ok {
			out[n] = struct{}{}
		}
	}
	return out
}

// hintFor joins the distinct domain categories matched by the top lemmas.
func hintFor(topLemmas []string) string {
	seen := make(map[string]struct{})
	var hints []string
	for _, l := range topLemmas {
		h, ok := domainHints[l]
		if !ok {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		hints = append(hints, h)
	}
	sort.Strings(hints)
	return strings.Join(hints, ", ")
}

var sentenceRx = regexp.MustCompile(`(?:[.!?])\s+`)

// minEvidenceWords filters out fragments too short to stand alone.
const minEvidenceWords = 8

// evidence extracts up to limit supporting sentences for a topic. Sentences
// are scored by top-lemma hits weighted by a length-quality factor, then
// selected greedily with a Jaccard-similarity bound so the picks do not
// repeat each other.
func evidence(members []align.Utterance, topLemmas []string, limit int) []string {
	var parts []string
	for _, m := range members {
		parts = append(parts, m.Text)
	}
	sentences := splitSentences(strings.Join(parts, " "))

	type scored struct {
		score float64
		text  string
	}
	var ranked []scored
	for _, s := range sentences {
		if sc := scoreSentence(s, topLemmas); sc > 0 {
			ranked = append(ranked, scored{sc, s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var out []string
	for _, cand := range ranked {
		if len(out) == limit {
			break
		}
		diverse := true
		for _, prev := range out {
			if jaccard(cand.text, prev) >= 0.5 {
				diverse = false
				break
			}
		}
		if diverse {
			out = append(out, cand.text)
		}
	}
	return out
}

func splitSentences(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range sentenceRx.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(strings.Fields(s)) < minEvidenceWords {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// scoreSentence counts top-lemma occurrences, scaled down for sentences
// under twenty words so one-liners do not outrank substantive statements.
func scoreSentence(sentence string, topLemmas []string) float64 {
	folded := normalize.Fold(sentence)
	hits := 0
	for _, l := range topLemmas {
		if strings.Contains(folded, l) {
			hits++
		}
	}
	quality := float64(len(strings.Fields(sentence))) / 20
	if quality > 1 {
		quality = 1
	}
	return float64(hits) * quality
}

func jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(setA)+len(setB)-inter)
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = struct{}{}
	}
	return out
}
