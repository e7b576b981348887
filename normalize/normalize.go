// Package normalize reduces surface word forms to normalized tokens for
// vectorization. Czech is morphologically rich, so without this step one
// subject fragments into many weakly-connected near-duplicate vectors.
//
// The raw utterance text is never touched; normalized tokens exist only as
// clustering input.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer maps one surface token to its normalized form. Implementations
// must be deterministic, side-effect free and idempotent: feeding a
// produced form back in returns it unchanged. ok is false when the backend
// has no answer for the token; the caller then falls back to the folded
// surface form so content degrades in precision rather than disappearing.
type Normalizer interface {
	Normalize(token string) (normalized string, ok bool)
}

// Func adapts a plain function to the Normalizer interface.
type Func func(string) (string, bool)

// Normalize implements Normalizer.
func (f Func) Normalize(token string) (string, bool) { return f(token) }

// Table is a map-backed Normalizer, typically filled from an external
// tagger service response and handed to the pipeline.
type Table map[string]string

// Normalize implements Normalizer. Lookups are done on the folded form so
// the table works regardless of the casing in the source text.
func (t Table) Normalize(token string) (string, bool) {
	lemma, ok := t[Fold(token)]
	return lemma, ok
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases a token and strips diacritics ("Škola" -> "skola").
// Folding is idempotent, which the whole normalization chain relies on.
func Fold(token string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(token))
	if err != nil {
		return strings.ToLower(token)
	}
	return folded
}

// Tokens turns raw utterance text into the normalized token sequence used
// for vectorization. misses counts tokens the normalizer could not handle;
// those keep their folded surface form instead of being dropped.
func Tokens(n Normalizer, text string) (tokens []string, misses int) {
	for _, field := range splitWords(text) {
		folded := Fold(field)
		if folded == "" || isStopword(folded) {
			continue
		}
		lemma, ok := n.Normalize(field)
		if !ok || lemma == "" {
			lemma = folded
			misses++
		}
		if isStopword(lemma) {
			continue
		}
		tokens = append(tokens, lemma)
	}
	return tokens, misses
}

// splitWords keeps letter runs only; digits and punctuation separate words
// and are discarded, mirroring the alphabetic-lemma filter of the deployed
// tagger setup.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
