package normalize

import "unicode/utf8"

// CzechStemmer is the built-in normalization backend: a light, rule-based
// stemmer that removes Czech case and possessive endings from the folded
// surface form. It is not a full lemmatizer (fleeting vowels and
// suppletive forms stay distinct), but it collapses the bulk of the
// inflection table ("školy", "školách", "školou" -> "skol"), which is what
// the topic vectors need. An external tagger service can replace it through
// the Normalizer interface without touching the pipeline.
type CzechStemmer struct{}

// minStem is the minimum rune count a stem may be reduced to. Shorter
// results would start colliding unrelated roots.
const minStem = 3

// Case and possessive endings, longest first. Stripping runs to a fixed
// point, which makes Normalize idempotent by construction.
var czechSuffixes = []string{
	"atech",
	"etem", "atum",
	"ovych", "ovizi",
	"ami", "emi", "imi", "ymi",
	"ach", "ech", "ich", "ych",
	"eho", "emu", "imu", "iho",
	"ove", "ovi", "ova", "ovo", "ovu",
	"ata", "aty", "ate",
	"ama", "ema", "ima",
	"em", "um", "im", "ym", "am", "om",
	"es", "os", "us",
	"mi", "ou", "ho", "mu",
	"a", "e", "i", "o", "u", "y",
}

// Normalize implements Normalizer. The stemmer has no out-of-vocabulary
// case: every token folds and strips deterministically.
func (CzechStemmer) Normalize(token string) (string, bool) {
	stem := Fold(token)
	for {
		next := stripSuffix(stem)
		if next == stem {
			return stem, true
		}
		stem = next
	}
}

func stripSuffix(word string) string {
	n := utf8.RuneCountInString(word)
	for _, suf := range czechSuffixes {
		sn := utf8.RuneCountInString(suf)
		if n-sn < minStem {
			continue
		}
		if len(word) >= len(suf) && word[len(word)-len(suf):] == suf {
			return word[:len(word)-len(suf)]
		}
	}
	return word
}
