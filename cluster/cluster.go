// Package cluster groups feature vectors into topics by density. The
// number of topics per meeting is unknown up front and topics occupy wildly
// different amounts of time, so a fixed-k method would force ill-fitting
// boundaries; density reachability with an explicit noise label fits the
// data. Everything here is deterministic: vectors are scanned in input
// order and there is no randomness to seed.
package cluster

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Noise is the reserved label for vectors too dissimilar from any group.
const Noise = -1

// ErrMalformedVector marks clustering input the algorithm cannot process.
// This is fatal for the run: no partial artifact may be emitted on top of
// undefined distances.
var ErrMalformedVector = errors.New("malformed feature vector")

// Config carries the density parameters. Both are configuration, not
// hardcoded: sensible values depend on meeting length and window size.
type Config struct {
	// Eps is the neighborhood radius in cosine distance (vectors are
	// L2-normalized, so distance = 1 - dot product, range [0, 2]).
	Eps float64
	// MinClusterSize is both the DBSCAN core-point density requirement and
	// the minimum size a finished cluster must reach; smaller groups fold
	// into noise.
	MinClusterSize int
}

// Assign labels every vector with a cluster id, or Noise. Ids are dense,
// start at zero and follow the scan order of the first core point found for
// each cluster. An all-noise result is a valid, if uninformative, outcome.
func Assign(vectors [][]float64, cfg Config) ([]int, error) {
	if err := checkVectors(vectors); err != nil {
		return nil, err
	}
	eps := cfg.Eps
	if eps <= 0 {
		eps = 0.5
	}
	minSize := cfg.MinClusterSize
	if minSize < 1 {
		minSize = 2
	}

	n := len(vectors)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Noise
	}
	if n == 0 {
		return labels, nil
	}

	neighbors := func(i int) []int {
		var nb []int
		for j := 0; j < n; j++ {
			if cosineDistance(vectors[i], vectors[j]) <= eps {
				nb = append(nb, j)
			}
		}
		return nb
	}

	next := 0
	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true
		seed := neighbors(i)
		if len(seed) < minSize {
			continue // not a core point; may still join a later cluster as border
		}
		id := next
		next++
		labels[i] = id

		// Expand over density-reachable points in deterministic FIFO order.
		for k := 0; k < len(seed); k++ {
			j := seed[k]
			if labels[j] == Noise {
				labels[j] = id
			}
			if visited[j] {
				continue
			}
			visited[j] = true
			nb := neighbors(j)
			if len(nb) >= minSize {
				labels[j] = id
				seed = append(seed, nb...)
			}
		}
	}

	foldSmall(labels, next, minSize)
	return labels, nil
}

// foldSmall demotes clusters below the minimum size to noise and relabels
// the survivors densely in order of first appearance.
func foldSmall(labels []int, clusters, minSize int) {
	sizes := make([]int, clusters)
	for _, l := range labels {
		if l != Noise {
			sizes[l]++
		}
	}
	remap := make([]int, clusters)
	next := 0
	for id := 0; id < clusters; id++ {
		if sizes[id] < minSize {
			remap[id] = Noise
			continue
		}
		remap[id] = next
		next++
	}
	for i, l := range labels {
		if l != Noise {
			labels[i] = remap[l]
		}
	}
}

func checkVectors(vectors [][]float64) error {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vector %d: dimension %d, want %d: %w", i, len(v), dim, ErrMalformedVector)
		}
		if len(v) == 0 {
			return fmt.Errorf("vector %d: empty: %w", i, ErrMalformedVector)
		}
		for _, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("vector %d: non-finite component: %w", i, ErrMalformedVector)
			}
		}
	}
	return nil
}

// cosineDistance assumes unit-norm inputs.
func cosineDistance(a, b []float64) float64 {
	return 1 - floats.Dot(a, b)
}
