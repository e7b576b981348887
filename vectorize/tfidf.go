package vectorize

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Corpus holds the meeting-wide term statistics needed for TF-IDF
// weighting. It is computed once per run and never mutated afterwards, so
// it can be shared across goroutines and across concurrent per-meeting runs
// without coordination.
type Corpus struct {
	docs  int
	index map[string]int
	idf   []float64
}

// NewCorpus derives vocabulary and smoothed inverse document frequencies
// from the non-empty units of one meeting. Vocabulary order is the sorted
// term order, so identical input always produces identical vectors.
func NewCorpus(units []Unit) *Corpus {
	df := make(map[string]int)
	docs := 0
	for _, u := range units {
		if u.Empty() {
			continue
		}
		docs++
		seen := make(map[string]struct{}, len(u.Tokens))
		for _, tok := range u.Tokens {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	c := &Corpus{
		docs:  docs,
		index: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, t := range terms {
		c.index[t] = i
		c.idf[i] = math.Log(float64(1+docs)/float64(1+df[t])) + 1
	}
	return c
}

// Dim is the vocabulary size, i.e. the vector dimensionality.
func (c *Corpus) Dim() int { return len(c.idf) }

// Vector builds the L2-normalized TF-IDF vector for a token sequence.
// Tokens outside the corpus vocabulary contribute nothing. Returns nil for
// sequences with no in-vocabulary tokens.
func (c *Corpus) Vector(tokens []string) []float64 {
	if len(tokens) == 0 || c.Dim() == 0 {
		return nil
	}
	vec := make([]float64, c.Dim())
	hit := false
	for _, tok := range tokens {
		if i, ok := c.index[tok]; ok {
			vec[i] += c.idf[i]
			hit = true
		}
	}
	if !hit {
		return nil
	}
	if n := floats.Norm(vec, 2); n > 0 {
		floats.Scale(1/n, vec)
	}
	return vec
}

// Vectorize fills Unit.Vector for every non-empty unit. Units are
// independent, so the work fans out across workers; results are keyed by
// index and the unit order is untouched.
func Vectorize(units []Unit, c *Corpus, workers int) {
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if !units[i].Empty() {
					units[i].Vector = c.Vector(units[i].Tokens)
				}
			}
		}()
	}
	for i := range units {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// ClusterInput collects the vectors eligible for clustering along with the
// indices of their originating units. Empty units never appear here.
func ClusterInput(units []Unit) (indices []int, vectors [][]float64) {
	for _, u := range units {
		if u.Vector == nil {
			continue
		}
		indices = append(indices, u.Index)
		vectors = append(vectors, u.Vector)
	}
	return indices, vectors
}
