package topics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honza-kasik/zastupitelstvo-transcriber/align"
	"github.com/honza-kasik/zastupitelstvo-transcriber/vectorize"
)

func utt(id int, start, end float64, speaker, text string, tokens ...string) align.Utterance {
	return align.Utterance{ID: id, Start: start, End: end, Speaker: speaker, Text: text, Tokens: tokens}
}

// unitsFor builds one vectorized unit per utterance, the simplest valid
// windowing.
func unitsFor(utts []align.Utterance) ([]vectorize.Unit, *vectorize.Corpus) {
	units := make([]vectorize.Unit, len(utts))
	for i, u := range utts {
		units[i] = vectorize.Unit{
			Index:      i,
			Start:      u.Start,
			End:        u.End,
			Utterances: []int{u.ID},
			Tokens:     u.Tokens,
		}
	}
	c := vectorize.NewCorpus(units)
	vectorize.Vectorize(units, c, 1)
	return units, c
}

func TestSummarize_ChronologicalOrder(t *testing.T) {
	utts := []align.Utterance{
		utt(0, 0, 60, "A", "Nejprve projednáme školní jídelnu a její kapacitu.", "skol", "jideln", "kapacit"),
		utt(1, 60, 120, "B", "Rozpočet města musíme schválit do konce roku.", "rozpocet", "mest", "schval"),
		utt(2, 120, 180, "A", "Rozpočet počítá s rezervou na opravy.", "rozpocet", "rezerv", "oprav"),
	}
	units, c := unitsFor(utts)
	indices := []int{0, 1, 2}
	// Cluster id 1 covers the earliest utterance; the artifact must still
	// open with it.
	labels := []int{1, 0, 0}

	a := Summarize(utts, units, indices, labels, c, Metadata{MeetingDate: "2024-03-12", MeetingNumber: 7}, DefaultOptions)

	require.Len(t, a.Topics, 2)
	assert.Equal(t, 1, a.Topics[0].ID)
	assert.Equal(t, []int{0}, a.Topics[0].UtteranceIDs)
	assert.Equal(t, 0, a.Topics[1].ID)
	assert.Equal(t, []int{1, 2}, a.Topics[1].UtteranceIDs)
	assert.Less(t, a.Topics[0].Start, a.Topics[1].Start)
	assert.Nil(t, a.Unclustered)
	assert.Equal(t, "2024-03-12", a.Meta.MeetingDate)
}

func TestSummarize_ResurfacingTopicKeepsOneRecord(t *testing.T) {
	// The budget is discussed, interrupted by the school, then resumed.
	// One topic record must span both stretches.
	utts := []align.Utterance{
		utt(0, 0, 300, "A", "Rozpočet navrhuje navýšení výdajů.", "rozpocet", "navyseni", "vydaj"),
		utt(1, 300, 600, "B", "Školka potřebuje novou střechu.", "skolk", "strech"),
		utt(2, 600, 900, "A", "Vracím se k rozpočtu a rezervám.", "rozpocet", "rezerv"),
	}
	units, c := unitsFor(utts)

	a := Summarize(utts, units, []int{0, 1, 2}, []int{0, 1, 0}, c, Metadata{}, DefaultOptions)

	require.Len(t, a.Topics, 2)
	budget := a.Topics[0]
	assert.Equal(t, []int{0, 2}, budget.UtteranceIDs)
	assert.Equal(t, 0.0, budget.Start)
	assert.Equal(t, 900.0, budget.End)
	assert.Equal(t, 15.0, budget.TimeMinutes)
	assert.Equal(t, 2, budget.UtteranceCount)
}

func TestSummarize_UnclusteredBucket(t *testing.T) {
	utts := []align.Utterance{
		utt(0, 0, 10, "A", "Rozpočet je první bod.", "rozpocet", "bod"),
		utt(1, 10, 20, "B", "Ehm dobře tak jo.", "dobr"),
		utt(2, 20, 30, "A", "Rozpočet tedy schvalujeme.", "rozpocet", "schval"),
	}
	units, c := unitsFor(utts)

	a := Summarize(utts, units, []int{0, 1, 2}, []int{0, -1, 0}, c, Metadata{}, DefaultOptions)

	require.Len(t, a.Topics, 1)
	require.NotNil(t, a.Unclustered)
	assert.Equal(t, []int{1}, a.Unclustered.UtteranceIDs)
	assert.Equal(t, 1, a.Unclustered.UtteranceCount)
}

func TestSummarize_OverlappingUnitsClaimUtteranceOnce(t *testing.T) {
	// Two windowed units share utterance 1 but land in different clusters.
	// The utterance must belong to exactly one topic.
	utts := []align.Utterance{
		utt(0, 0, 10, "A", "Rozpočet města byl představen.", "rozpocet", "mest"),
		utt(1, 10, 20, "A", "Hlasujeme o tomto bodu.", "hlasovani", "bod"),
		utt(2, 20, 30, "B", "Škola dostane novou tělocvičnu.", "skol", "telocvicn"),
	}
	units := []vectorize.Unit{
		{Index: 0, Start: 0, End: 20, Utterances: []int{0, 1}, Tokens: []string{"rozpocet", "mest", "hlasovani", "bod"}},
		{Index: 1, Start: 10, End: 30, Utterances: []int{1, 2}, Tokens: []string{"hlasovani", "bod", "skol", "telocvicn"}},
	}
	c := vectorize.NewCorpus(units)
	vectorize.Vectorize(units, c, 1)

	a := Summarize(utts, units, []int{0, 1}, []int{0, 1}, c, Metadata{}, DefaultOptions)

	require.Len(t, a.Topics, 2)
	count := make(map[int]int)
	for _, topic := range a.Topics {
		for _, id := range topic.UtteranceIDs {
			count[id]++
		}
	}
	for id, n := range count {
		assert.Equal(t, 1, n, "utterance %d claimed %d times", id, n)
	}
	// Earliest unit wins the shared utterance.
	assert.Contains(t, a.Topics[0].UtteranceIDs, 1)
}

func TestSummarize_SpeakersSortedAndDeduplicated(t *testing.T) {
	utts := []align.Utterance{
		utt(0, 0, 10, "Novák", "Rozpočet je schodkový letos.", "rozpocet", "schodek"),
		utt(1, 10, 20, "Dvořák", "Rozpočet musíme upravit brzy.", "rozpocet", "uprav"),
		utt(2, 20, 30, "Novák", "Rozpočet tedy vrátíme výboru.", "rozpocet", "vybor"),
	}
	units, c := unitsFor(utts)

	a := Summarize(utts, units, []int{0, 1, 2}, []int{0, 0, 0}, c, Metadata{}, DefaultOptions)

	require.Len(t, a.Topics, 1)
	assert.Equal(t, []string{"Dvořák", "Novák"}, a.Topics[0].Speakers)
}

func TestSummarize_RepresentativeTruncated(t *testing.T) {
	long := strings.Repeat("rozpočet města je velmi důležitý ", 20)
	utts := []align.Utterance{
		utt(0, 0, 10, "A", long, "rozpocet", "mest"),
		utt(1, 10, 20, "A", "Rozpočet města krátce.", "rozpocet", "mest"),
	}
	units, c := unitsFor(utts)

	a := Summarize(utts, units, []int{0, 1}, []int{0, 0}, c, Metadata{},
		Options{MaxRepresentativeLen: 50, MaxEvidence: 3})

	require.Len(t, a.Topics, 1)
	rep := a.Topics[0].Representative
	assert.LessOrEqual(t, len([]rune(rep)), 51)
	assert.True(t, strings.HasSuffix(rep, "…"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		words map[string]int
		want  string
	}{
		{"single dominant speaker", map[string]int{"A": 100, "B": 5}, TypeMonologue},
		{"three balanced speakers", map[string]int{"A": 40, "B": 35, "C": 30}, TypeDiscussion},
		{"two balanced speakers", map[string]int{"A": 50, "B": 45}, TypeProcedural},
		{"dominant among many", map[string]int{"A": 100, "B": 5, "C": 4, "D": 3}, TypeDiscussion},
		{"single speaker only", map[string]int{"A": 20}, TypeMonologue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.words))
		})
	}
}

func TestHintFor(t *testing.T) {
	assert.Equal(t, "rozpočet města", hintFor([]string{"rozpocet"}))
	assert.Equal(t, "rozpočet města, školství", hintFor([]string{"skol", "rozpocet"}))
	assert.Equal(t, "", hintFor([]string{"neznamyterm"}))
	// Duplicate categories collapse.
	assert.Equal(t, "školství", hintFor([]string{"skol", "skol"}))
}

func TestEvidence_ScoredAndDiverse(t *testing.T) {
	members := []align.Utterance{
		utt(0, 0, 10, "A",
			"Rozpočet města pro příští rok počítá s výraznou rezervou na opravy silnic. "+
				"Dnes je venku docela hezky a slunce svítí nad radnicí celé odpoledne. "+
				"Rozpočet města pro příští rok počítá s výraznou rezervou na opravy silnic.",
			"rozpocet"),
	}
	got := evidence(members, []string{"rozpocet"}, 3)

	require.Len(t, got, 1, "duplicate and off-topic sentences must not be kept")
	assert.Contains(t, strings.ToLower(got[0]), "rozpočet")
}

func TestEvidence_ShortFragmentsDropped(t *testing.T) {
	members := []align.Utterance{
		utt(0, 0, 10, "A", "Rozpočet ano. Souhlasím.", "rozpocet"),
	}
	assert.Empty(t, evidence(members, []string{"rozpocet"}, 3))
}

func TestTopLemmas_GenericVerbsFiltered(t *testing.T) {
	counts := map[string]int{
		"rozpocet": 5,
		"byt":      9, // generic, highest count
		"skol":     3,
	}
	got := topLemmas(counts, 10)
	assert.Equal(t, []string{"rozpocet", "skol"}, got)
}

func TestBuildPayload(t *testing.T) {
	a := Artifact{Topics: []Topic{
		{ID: 0, TimeMinutes: 2, Type: TypeProcedural, Evidence: []string{"a"}},
		{ID: 1, TimeMinutes: 12, Type: TypeDiscussion, Hint: "rozpočet města", Evidence: []string{"b1", "b2", "b3", "b4"}},
		{ID: 2, TimeMinutes: 5, Type: TypeMonologue, Evidence: []string{"c"}},
	}}

	got := BuildPayload(a, PayloadOptions{MinMinutes: 3, MaxTopics: 10, MaxEvidence: 3})

	require.Len(t, got, 2, "topics under the minute floor are dropped")
	assert.Equal(t, 1, got[0].Order)
	assert.Equal(t, 12.0, got[0].TimeMinutes)
	assert.Equal(t, "rozpočet města", got[0].Hint)
	assert.Len(t, got[0].Evidence, 3, "evidence capped")
	assert.Equal(t, 2, got[1].Order)
	assert.Equal(t, 5.0, got[1].TimeMinutes)
}

func TestBuildPayload_MaxTopicsCap(t *testing.T) {
	a := Artifact{Topics: []Topic{
		{ID: 0, TimeMinutes: 10},
		{ID: 1, TimeMinutes: 20},
		{ID: 2, TimeMinutes: 30},
	}}
	got := BuildPayload(a, PayloadOptions{MinMinutes: 1, MaxTopics: 2, MaxEvidence: 3})
	require.Len(t, got, 2)
	assert.Equal(t, 30.0, got[0].TimeMinutes)
	assert.Equal(t, 20.0, got[1].TimeMinutes)
}

func TestBuildPayload_Empty(t *testing.T) {
	got := BuildPayload(Artifact{}, PayloadOptions{MinMinutes: 3})
	assert.Empty(t, got)
}
