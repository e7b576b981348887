package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWords(t *testing.T) {
	t.Run("valid sequence", func(t *testing.T) {
		words := []Word{
			{Start: 0, End: 1, Text: "dobrý"},
			{Start: 1, End: 2, Text: "den"},
		}
		assert.NoError(t, ValidateWords(words))
	})

	t.Run("negative timestamp", func(t *testing.T) {
		err := ValidateWords([]Word{{Start: -1, End: 1, Text: "x"}})
		assert.ErrorIs(t, err, ErrNegativeTime)
	})

	t.Run("inverted range", func(t *testing.T) {
		err := ValidateWords([]Word{{Start: 2, End: 1, Text: "x"}})
		assert.ErrorIs(t, err, ErrInvertedRange)
	})

	t.Run("out of order", func(t *testing.T) {
		words := []Word{
			{Start: 5, End: 6, Text: "x"},
			{Start: 3, End: 4, Text: "y"},
		}
		assert.ErrorIs(t, ValidateWords(words), ErrOutOfOrder)
	})

	t.Run("empty is valid", func(t *testing.T) {
		assert.NoError(t, ValidateWords(nil))
	})
}

func TestValidateTurns(t *testing.T) {
	t.Run("valid track", func(t *testing.T) {
		turns := []SpeakerTurn{
			{Start: 0, End: 10, Speaker: "A"},
			{Start: 10, End: 25, Speaker: "B"},
		}
		assert.NoError(t, ValidateTurns(turns))
	})

	t.Run("overlap", func(t *testing.T) {
		turns := []SpeakerTurn{
			{Start: 0, End: 10, Speaker: "A"},
			{Start: 9, End: 25, Speaker: "B"},
		}
		assert.ErrorIs(t, ValidateTurns(turns), ErrOverlap)
	})

	t.Run("inverted range", func(t *testing.T) {
		err := ValidateTurns([]SpeakerTurn{{Start: 10, End: 5, Speaker: "A"}})
		assert.ErrorIs(t, err, ErrInvertedRange)
	})
}

func TestParseAnnotated(t *testing.T) {
	input := `[0:00:00] SPEAKER_00:
Dobrý den, zahajuji dnešní jednání zastupitelstva.

[0:00:10] SPEAKER_01:
Děkuji za slovo.
`
	words, turns, err := ParseAnnotated(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, turns, 2)
	assert.Equal(t, "SPEAKER_00", turns[0].Speaker)
	assert.Equal(t, 0.0, turns[0].Start)
	assert.Equal(t, 10.0, turns[0].End)
	assert.Equal(t, "SPEAKER_01", turns[1].Speaker)
	assert.Equal(t, 10.0, turns[1].Start)

	// 6 words in the first block spread over 0-10s, 3 in the second.
	require.Len(t, words, 9)
	assert.Equal(t, "Dobrý", words[0].Text)
	assert.Equal(t, 0.0, words[0].Start)
	assert.InDelta(t, 10.0/6, words[1].Start, 1e-9)

	assert.NoError(t, ValidateWords(words))
	assert.NoError(t, ValidateTurns(turns))
}

func TestParseAnnotated_AppliesCorrections(t *testing.T) {
	input := `[0:00:00] SPEAKER_00:
Projednáme rozpoštením opatření města.
`
	words, _, err := ParseAnnotated(strings.NewReader(input))
	require.NoError(t, err)

	var texts []string
	for _, w := range words {
		texts = append(texts, w.Text)
	}
	joined := strings.Join(texts, " ")
	assert.Contains(t, joined, "rozpočtovým")
	assert.NotContains(t, joined, "rozpoštením")
}

func TestParseAnnotated_EmptyInput(t *testing.T) {
	words, turns, err := ParseAnnotated(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.Empty(t, turns)
}
