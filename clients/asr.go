package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/honza-kasik/zastupitelstvo-transcriber/transcript"
)

type asrResp struct {
	Words    []transcript.Word `json:"words"`
	Language string            `json:"language"`
}

// Transcribe uploads the meeting audio and returns the validated
// time-stamped word sequence.
func (h *HTTP) Transcribe(ctx context.Context, url, audioPath string) ([]transcript.Word, error) {
	body, contentType, err := audioForm(audioPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/transcribe", body)
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
		return nil, fmt.Errorf("asr %s: %s", resp.Status, string(b))
	}

	var out asrResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("asr decode: %w", err)
	}
	if err := transcript.ValidateWords(out.Words); err != nil {
		return nil, fmt.Errorf("asr output: %w", err)
	}
	return out.Words, nil
}

func audioForm(path string) (*bytes.Buffer, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, "", err
	}
	if err = w.Close(); err != nil {
		return nil, "", err
	}
	return &b, w.FormDataContentType(), nil
}
