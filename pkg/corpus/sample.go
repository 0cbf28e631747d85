package corpus

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SampleWeighted draws n distinct row indices without replacement, with
// probability proportional to the given weights. Rows with zero weight are
// never drawn. A nil src uses the global random source; pass a seeded
// source for reproducible draws.
func SampleWeighted(weights []float64, n int, src rand.Source) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample: negative draw count %d", n)
	}
	if n > len(weights) {
		return nil, fmt.Errorf("sample: %d draws requested from %d rows", n, len(weights))
	}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("sample: negative weight %v at row %d", w, i)
		}
	}

	sampler := sampleuv.NewWeighted(weights, src)
	indices := make([]int, 0, n)
	for len(indices) < n {
		idx, ok := sampler.Take()
		if !ok {
			return nil, fmt.Errorf("sample: only %d of %d draws available", len(indices), n)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// SampleDocuments draws n documents without replacement, weighted per
// document. The weights slice must align with docs.
func SampleDocuments(docs []Document, weights []float64, n int, src rand.Source) ([]Document, error) {
	if len(docs) != len(weights) {
		return nil, fmt.Errorf("sample: %d documents with %d weights", len(docs), len(weights))
	}

	indices, err := SampleWeighted(weights, n, src)
	if err != nil {
		return nil, err
	}

	sampled := make([]Document, len(indices))
	for i, idx := range indices {
		sampled[i] = docs[idx]
	}
	return sampled, nil
}
