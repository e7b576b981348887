// Package orchestrator wires the pipeline stages into one batch pass per
// meeting: align, normalize, vectorize, cluster, summarize. Stages run
// sequentially because clustering and term weighting need the whole
// meeting; only per-utterance work fans out. Runs share no mutable state,
// so any number of meetings may be processed concurrently.
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/honza-kasik/zastupitelstvo-transcriber/align"
	"github.com/honza-kasik/zastupitelstvo-transcriber/cluster"
	"github.com/honza-kasik/zastupitelstvo-transcriber/config"
	"github.com/honza-kasik/zastupitelstvo-transcriber/normalize"
	"github.com/honza-kasik/zastupitelstvo-transcriber/topics"
	"github.com/honza-kasik/zastupitelstvo-transcriber/transcript"
	"github.com/honza-kasik/zastupitelstvo-transcriber/vectorize"
)

// Diagnostics accumulates every non-fatal anomaly of one run. It travels
// next to the artifact, never inside it: the artifact stays byte-identical
// across reruns while the run id does not.
type Diagnostics struct {
	RunID          string `json:"run_id"`
	UncoveredWords int    `json:"uncovered_words"`
	FallbackTokens int    `json:"fallback_tokens"`
	EmptyUnits     int    `json:"empty_units"`
	NoiseUnits     int    `json:"noise_units"`
	TopicCount     int    `json:"topic_count"`
}

// Result is the full outcome of one meeting run.
type Result struct {
	Artifact    topics.Artifact
	Units       []vectorize.Unit
	Diagnostics Diagnostics
}

type Pipeline struct {
	cfg  *config.Root
	norm normalize.Normalizer
	log  *logrus.Logger
}

// Option adjusts pipeline construction.
type Option func(*Pipeline)

// WithNormalizer swaps the normalization backend, e.g. for a table built
// from an external tagger service.
func WithNormalizer(n normalize.Normalizer) Option {
	return func(p *Pipeline) { p.norm = n }
}

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

func New(cfg *config.Root, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:  cfg,
		norm: normalize.CzechStemmer{},
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the whole pipeline on already-materialized inputs. Fatal
// errors abort the run with no artifact; everything recoverable lands in
// Diagnostics instead. Cancellation is coarse-grained: the context is
// checked between stages, not inside them.
func (p *Pipeline) Run(ctx context.Context, words []transcript.Word, turns []transcript.SpeakerTurn, meta topics.Metadata) (*Result, error) {
	diag := Diagnostics{RunID: uuid.NewString()}
	log := p.log.WithFields(logrus.Fields{"run_id": diag.RunID, "meeting": meta.MeetingNumber})

	if err := transcript.ValidateWords(words); err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	if err := transcript.ValidateTurns(turns); err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}

	aligner := align.Aligner{PauseThreshold: p.cfg.Align.PauseThresholdSec}
	utts, alignDiag := aligner.Align(words, turns)
	diag.UncoveredWords = alignDiag.UncoveredWords
	log.WithFields(logrus.Fields{
		"words":      len(words),
		"turns":      len(turns),
		"utterances": len(utts),
		"uncovered":  alignDiag.UncoveredWords,
	}).Info("aligned transcript")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diag.FallbackTokens = p.normalizeAll(utts)
	log.WithField("fallback_tokens", diag.FallbackTokens).Info("normalized utterances")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	units := vectorize.BuildUnits(utts, p.cfg.Vectorize.WindowSize, p.cfg.Vectorize.WindowOverlap)
	corpus := vectorize.NewCorpus(units)
	vectorize.Vectorize(units, corpus, p.cfg.Vectorize.Workers)

	indices, vectors := vectorize.ClusterInput(units)
	diag.EmptyUnits = len(units) - len(indices)
	log.WithFields(logrus.Fields{
		"units": len(units),
		"empty": diag.EmptyUnits,
		"terms": corpus.Dim(),
	}).Info("vectorized units")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labels, err := cluster.Assign(vectors, cluster.Config{
		Eps:            p.cfg.Cluster.Eps,
		MinClusterSize: p.cfg.Cluster.MinClusterSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	for _, l := range labels {
		if l == cluster.Noise {
			diag.NoiseUnits++
		}
	}

	artifact := topics.Summarize(utts, units, indices, labels, corpus, meta, topics.Options{
		MaxRepresentativeLen: p.cfg.Topics.MaxRepresentativeLen,
		MaxEvidence:          p.cfg.Topics.MaxEvidence,
	})
	diag.TopicCount = len(artifact.Topics)
	log.WithFields(logrus.Fields{
		"topics": diag.TopicCount,
		"noise":  diag.NoiseUnits,
	}).Info("summarized topics")

	if diag.TopicCount == 0 && len(utts) > 0 {
		// Valid but uninformative; the caller decides whether drafting
		// should proceed.
		log.Warn("no topic clusters found; everything is unclustered")
	}

	return &Result{Artifact: artifact, Units: units, Diagnostics: diag}, nil
}

// normalizeAll fills Utterance.Tokens concurrently. Utterances are
// independent and results are keyed by index, so order never changes.
func (p *Pipeline) normalizeAll(utts []align.Utterance) int {
	workers := p.cfg.Vectorize.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		misses int
	)
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := 0
			for i := range jobs {
				tokens, m := normalize.Tokens(p.norm, utts[i].Text)
				utts[i].Tokens = tokens
				local += m
			}
			mu.Lock()
			misses += local
			mu.Unlock()
		}()
	}
	for i := range utts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return misses
}
