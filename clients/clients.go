// Package clients talks to the external collaborator services: speech
// recognition, speaker diarization and the lemmatizer backend. The topic
// core itself never performs I/O; these clients materialize its read-only
// inputs before a run starts.
package clients

import (
	"net/http"
	"time"
)

type HTTP struct{ c *http.Client }

// NewHTTP returns a client with a timeout sized for whole-meeting audio
// uploads, not interactive calls.
func NewHTTP() *HTTP { return &HTTP{c: &http.Client{Timeout: 10 * time.Minute}} }
