package aggregate

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/TFMV/TextVectorPro/pkg/lexicon"
)

// ReduceFunc folds matched token vectors into a single vector of length dim.
// Implementations are only called with at least one vector and must not
// modify the inputs.
type ReduceFunc func(dim int, matched [][]float64) []float64

// ReduceSum adds the matched vectors component-wise. This is the default.
// Note that longer documents with more matches accumulate larger values.
func ReduceSum(dim int, matched [][]float64) []float64 {
	out := make([]float64, dim)
	for _, vec := range matched {
		floats.Add(out, vec)
	}
	return out
}

// ReduceMean averages the matched vectors component-wise. The divisor is the
// number of matched tokens, not the total token count.
func ReduceMean(dim int, matched [][]float64) []float64 {
	out := ReduceSum(dim, matched)
	floats.Scale(1/float64(len(matched)), out)
	return out
}

// ReduceMax takes the component-wise maximum across matched vectors.
func ReduceMax(dim int, matched [][]float64) []float64 {
	out := make([]float64, dim)
	copy(out, matched[0])
	for _, vec := range matched[1:] {
		for i, v := range vec {
			out[i] = math.Max(out[i], v)
		}
	}
	return out
}

// ReduceMin takes the component-wise minimum across matched vectors.
func ReduceMin(dim int, matched [][]float64) []float64 {
	out := make([]float64, dim)
	copy(out, matched[0])
	for _, vec := range matched[1:] {
		for i, v := range vec {
			out[i] = math.Min(out[i], v)
		}
	}
	return out
}

// ParseReduction maps a configuration name to a reduction. The empty string
// selects the default sum reduction.
func ParseReduction(name string) (ReduceFunc, error) {
	switch strings.ToLower(name) {
	case "", "sum":
		return ReduceSum, nil
	case "mean", "avg":
		return ReduceMean, nil
	case "max":
		return ReduceMax, nil
	case "min":
		return ReduceMin, nil
	default:
		return nil, fmt.Errorf("unknown reduction %q", name)
	}
}

// Options configures an Aggregator.
type Options struct {
	// Reduction folds matched vectors into one; nil means ReduceSum.
	Reduction ReduceFunc
	// KeepTokens retains the input token sequence alongside each vector.
	KeepTokens bool
}

// Result is the aggregated output for a single document.
type Result struct {
	Vector []float64
	// Tokens holds the input token sequence, unknown tokens included,
	// only when KeepTokens is set.
	Tokens []string
}

// Aggregator folds token sequences into fixed-length feature vectors by
// looking each token up in a lexicon. It holds no per-document state, so a
// single Aggregator is safe for concurrent use.
type Aggregator struct {
	lex  *lexicon.Lexicon
	fn   ReduceFunc
	keep bool
}

// New creates an Aggregator over the given lexicon.
func New(lex *lexicon.Lexicon, opts Options) *Aggregator {
	fn := opts.Reduction
	if fn == nil {
		fn = ReduceSum
	}
	return &Aggregator{lex: lex, fn: fn, keep: opts.KeepTokens}
}

// Dim returns the output vector length.
func (a *Aggregator) Dim() int {
	return a.lex.Dim()
}

// Aggregate folds the token sequence into one feature vector. Tokens absent
// from the lexicon are skipped; when nothing matches the result is the zero
// vector. With KeepTokens set the result also carries the input sequence
// itself, untouched by the reduction. The vector does not depend on token
// order for the built-in reductions.
func (a *Aggregator) Aggregate(tokens []string) Result {
	dim := a.lex.Dim()
	matched := make([][]float64, 0, len(tokens))
	for _, token := range tokens {
		vec, ok := a.lex.Lookup(token)
		if !ok {
			continue
		}
		matched = append(matched, vec)
	}

	var kept []string
	if a.keep && len(tokens) > 0 {
		kept = append(kept, tokens...)
	}

	if len(matched) == 0 {
		return Result{Vector: make([]float64, dim), Tokens: kept}
	}
	return Result{Vector: a.fn(dim, matched), Tokens: kept}
}

// Vector is shorthand for Aggregate when only the vector is needed.
func (a *Aggregator) Vector(tokens []string) []float64 {
	return a.Aggregate(tokens).Vector
}

// Similarity returns the cosine similarity between two feature vectors.
// Zero vectors have no direction and report zero similarity.
func Similarity(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}
