// Package article prepares the drafting hand-off: run metadata, the
// language-model prompt and a Jekyll page skeleton. The article text itself
// is written outside this system; metadata is never generated by the model.
package article

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/honza-kasik/zastupitelstvo-transcriber/topics"
)

// Meta is the Jekyll front matter of one meeting article. Every field is
// computed from the invocation context and the artifact, deterministically.
type Meta struct {
	Layout          string `yaml:"layout"`
	Title           string `yaml:"title"`
	MeetingDate     string `yaml:"meeting_date"`
	MeetingNumber   int    `yaml:"meeting_number"`
	Duration        string `yaml:"meeting_duration"`
	DurationMinutes int    `yaml:"meeting_duration_minutes"`
	Summary         string `yaml:"summary"`
}

const summaryPlaceholder = "<<< VLOŽ SHRNUTÍ (3–4 VĚTY) >>>"
const bodyPlaceholder = "<<< VLOŽ TEXT ČLÁNKU ZDE >>>"

// BuildMeta derives the front matter from the payload topics.
func BuildMeta(payload []topics.PayloadTopic, meta topics.Metadata, layout string) Meta {
	total := 0.0
	for _, t := range payload {
		total += t.TimeMinutes
	}
	minutes := int(total)
	return Meta{
		Layout:          layout,
		Title:           fmt.Sprintf("Jednání zastupitelstva – %s", meta.MeetingDate),
		MeetingDate:     meta.MeetingDate,
		MeetingNumber:   meta.MeetingNumber,
		Duration:        fmt.Sprintf("%d h %d min", minutes/60, minutes%60),
		DurationMinutes: minutes,
		Summary:         summaryPlaceholder,
	}
}

const promptHeader = `Jsi redaktor regionálního zpravodajství.
Píšeš věcný a neutrální článek o průběhu jednání zastupitelstva.

Pravidla:
- piš SOUVISLÝ TEXT, bez nadpisů a sekcí
- postupuj chronologicky podle pořadí témat
- zohledni, kolik času bylo jednotlivým tématům věnováno
- u každého tématu stručně vysvětli, čeho se týkalo
- zmiň, zda šlo o diskuzi, procedurální bod nebo vystoupení jednotlivce
- nepřidávej žádná fakta, jména ani čísla, která nejsou v podkladech
- nic nehodnoť, pouze popisuj

Podklady (seřazeno podle významu):

`

// Prompt renders the drafting prompt around the serialized payload.
func Prompt(payload []topics.PayloadTopic) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return promptHeader + string(b) + "\n", nil
}

// JekyllDraft renders a valid Jekyll page with placeholders where the
// drafted summary and body are pasted in by the editor.
func JekyllDraft(m Meta) (string, error) {
	var sb strings.Builder
	sb.WriteString("---\n")

	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	sb.WriteString("---\n\n")
	sb.WriteString(bodyPlaceholder)
	sb.WriteString("\n")
	return sb.String(), nil
}
