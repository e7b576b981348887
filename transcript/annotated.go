package transcript

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Annotated transcripts are the legacy hand-off format of the transcriber
// stage: a timestamped speaker header followed by the spoken text.
//
//	[0:15:42] SPEAKER_03:
//	Dobrý den, zahajuji dnešní jednání...
//
// Only block start times are recorded, so word timings are reconstructed by
// spreading the block's words evenly over its time range.

var headerRx = regexp.MustCompile(`^\[(\d+):(\d+):(\d+)\]\s+(\w+):`)

// fallbackWordSec is the assumed per-word duration for the last block,
// which has no following header to delimit it.
const fallbackWordSec = 0.4

// corrections maps recurring speech-to-text mistakes of the deployed model
// to their intended forms. Applied longest-first so that longer mistakes
// are not shadowed by their substrings.
var corrections = map[string]string{
	"písavný":    "písemné",
	"Litovla":    "Litovle",
	"Litovl":     "Litovel",
	"Stavěvní":   "Stavební",
	"navědomý":   "na vědomí",
	"zápisě":     "zápise",
	"rozpoštením": "rozpočtovým",
	" krum":      " korun",
	"po zemku":   "pozemku",
	"dobudové":   "důvodové",
	"Alomouckem": "Olomouckém",
}

var correctionOrder = func() []string {
	keys := make([]string, 0, len(corrections))
	for k := range corrections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

func applyCorrections(line string) string {
	for _, wrong := range correctionOrder {
		line = strings.ReplaceAll(line, wrong, corrections[wrong])
	}
	return line
}

type annotatedBlock struct {
	start   float64
	speaker string
	text    []string
}

// ParseAnnotated converts an annotated transcript into the word/turn input
// pair consumed by the aligner. Each block becomes one speaker turn; the
// block's words are distributed evenly across the turn.
func ParseAnnotated(r io.Reader) ([]Word, []SpeakerTurn, error) {
	var blocks []annotatedBlock

	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scan.Scan() {
		line := applyCorrections(strings.TrimSpace(scan.Text()))
		if m := headerRx.FindStringSubmatch(line); m != nil {
			h, _ := strconv.Atoi(m[1])
			mi, _ := strconv.Atoi(m[2])
			s, _ := strconv.Atoi(m[3])
			blocks = append(blocks, annotatedBlock{
				start:   float64(h*3600 + mi*60 + s),
				speaker: m[4],
			})
			continue
		}
		if line == "" || len(blocks) == 0 {
			continue
		}
		b := &blocks[len(blocks)-1]
		b.text = append(b.text, line)
	}
	if err := scan.Err(); err != nil {
		return nil, nil, fmt.Errorf("parse annotated transcript: %w", err)
	}

	var words []Word
	var turns []SpeakerTurn
	for i, b := range blocks {
		fields := strings.Fields(strings.Join(b.text, " "))
		if len(fields) == 0 {
			continue
		}
		end := b.start + fallbackWordSec*float64(len(fields))
		if i+1 < len(blocks) {
			// Delimited by the next header. Equal timestamps collapse the
			// turn to a point rather than overlapping its successor.
			end = blocks[i+1].start
			if end < b.start {
				end = b.start
			}
		}
		turns = append(turns, SpeakerTurn{Start: b.start, End: end, Speaker: b.speaker})

		step := (end - b.start) / float64(len(fields))
		for j, f := range fields {
			ws := b.start + float64(j)*step
			words = append(words, Word{Start: ws, End: ws + step, Text: f})
		}
	}

	if err := ValidateWords(words); err != nil {
		return nil, nil, fmt.Errorf("parse annotated transcript: %w", err)
	}
	if err := ValidateTurns(turns); err != nil {
		return nil, nil, fmt.Errorf("parse annotated transcript: %w", err)
	}
	return words, turns, nil
}
