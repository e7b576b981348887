package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/honza-kasik/zastupitelstvo-transcriber/normalize"
)

type lemmaReq struct {
	Text string `json:"text"`
}

type lemmaResp struct {
	Lemmas []struct {
		Form  string `json:"form"`
		Lemma string `json:"lemma"`
	} `json:"lemmas"`
}

// Lemmatize sends the full meeting text to a tagger service once and
// returns a table-backed normalizer over its form-to-lemma pairs. Tokens
// the service did not tag miss the table and the pipeline falls back to
// their folded surface forms.
func (h *HTTP) Lemmatize(ctx context.Context, url, text string) (normalize.Table, error) {
	payload, _ := json.Marshal(lemmaReq{Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/lemmatize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("lemmatizer %s: %s", resp.Status, string(b))
	}

	var out lemmaResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("lemmatizer decode: %w", err)
	}

	table := make(normalize.Table, len(out.Lemmas))
	for _, l := range out.Lemmas {
		if l.Form == "" || l.Lemma == "" {
			continue
		}
		table[normalize.Fold(l.Form)] = normalize.Fold(l.Lemma)
	}
	return table, nil
}
