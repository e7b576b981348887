package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/honza-kasik/zastupitelstvo-transcriber/transcript"
)

type diarizeResp struct {
	Turns []transcript.SpeakerTurn `json:"turns"`
}

// Diarize uploads the meeting audio and returns the validated speaker-turn
// track. A service responding with zero turns is not an error: the aligner
// degrades to unknown speakers.
func (h *HTTP) Diarize(ctx context.Context, url, audioPath string) ([]transcript.SpeakerTurn, error) {
	body, contentType, err := audioForm(audioPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/diarize", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("diarization %s: %s", resp.Status, string(b))
	}

	var out diarizeResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("diarization decode: %w", err)
	}
	if err := transcript.ValidateTurns(out.Turns); err != nil {
		return nil, fmt.Errorf("diarization output: %w", err)
	}
	return out.Turns, nil
}
