package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honza-kasik/zastupitelstvo-transcriber/transcript"
)

func tmpAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))
	return path
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transcribe", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "meeting.wav", hdr.Filename)

		json.NewEncoder(w).Encode(map[string]any{
			"language": "cs",
			"words": []transcript.Word{
				{Start: 0, End: 0.5, Text: "dobrý"},
				{Start: 0.5, End: 1, Text: "den"},
			},
		})
	}))
	defer srv.Close()

	words, err := NewHTTP().Transcribe(context.Background(), srv.URL, tmpAudio(t))
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "dobrý", words[0].Text)
}

func TestTranscribe_RejectsMalformedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"words": []transcript.Word{{Start: 2, End: 1, Text: "x"}},
		})
	}))
	defer srv.Close()

	_, err := NewHTTP().Transcribe(context.Background(), srv.URL, tmpAudio(t))
	assert.ErrorIs(t, err, transcript.ErrInvertedRange)
}

func TestTranscribe_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTP().Transcribe(context.Background(), srv.URL, tmpAudio(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestDiarize_ZeroTurnsIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/diarize", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"turns": []transcript.SpeakerTurn{}})
	}))
	defer srv.Close()

	turns, err := NewHTTP().Diarize(context.Background(), srv.URL, tmpAudio(t))
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestDiarize_RejectsOverlappingTurns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"turns": []transcript.SpeakerTurn{
			{Start: 0, End: 10, Speaker: "A"},
			{Start: 5, End: 15, Speaker: "B"},
		}})
	}))
	defer srv.Close()

	_, err := NewHTTP().Diarize(context.Background(), srv.URL, tmpAudio(t))
	assert.ErrorIs(t, err, transcript.ErrOverlap)
}

func TestLemmatize_BuildsFoldedTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lemmatize", r.URL.Path)
		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Školy ve městě", req.Text)

		json.NewEncoder(w).Encode(map[string]any{"lemmas": []map[string]string{
			{"form": "Školy", "lemma": "škola"},
			{"form": "městě", "lemma": "město"},
			{"form": "", "lemma": "ghost"},
		}})
	}))
	defer srv.Close()

	table, err := NewHTTP().Lemmatize(context.Background(), srv.URL, "Školy ve městě")
	require.NoError(t, err)
	require.Len(t, table, 2)

	lemma, ok := table.Normalize("ŠKOLY")
	assert.True(t, ok)
	assert.Equal(t, "skola", lemma, "table keys and values are folded")
	_, ok = table.Normalize("neznámé")
	assert.False(t, ok)
}
