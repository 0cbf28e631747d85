package lexicon

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDimensionMismatch signals an entry whose vector length differs from the table dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrEmpty signals a lexicon constructed without entries.
	ErrEmpty = errors.New("lexicon is empty")
)

// DimensionMismatchError wraps ErrDimensionMismatch with the offending token and lengths.
type DimensionMismatchError struct {
	Token string
	Want  int
	Got   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: token %q has %d dimensions, want %d", ErrDimensionMismatch.Error(), e.Token, e.Got, e.Want)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// Entry pairs a token with its embedding vector.
type Entry struct {
	Token  string
	Vector []float64
}

// Lexicon maps tokens to fixed-dimension embedding vectors. It is built once
// and read-only afterwards, so it is safe for concurrent lookups.
type Lexicon struct {
	dim     int
	vectors map[string][]float64
}

// New builds a lexicon from token/vector pairs. The first entry fixes the
// dimension; any later entry with a different vector length fails the whole
// construction. Vectors are copied, so callers may reuse their slices.
// Duplicate tokens keep the last vector seen.
func New(entries []Entry) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	dim := len(entries[0].Vector)
	vectors := make(map[string][]float64, len(entries))
	for _, entry := range entries {
		if len(entry.Vector) != dim {
			return nil, &DimensionMismatchError{Token: entry.Token, Want: dim, Got: len(entry.Vector)}
		}
		vec := make([]float64, dim)
		copy(vec, entry.Vector)
		vectors[entry.Token] = vec
	}

	return &Lexicon{dim: dim, vectors: vectors}, nil
}

// Lookup returns the vector for an exact, case-sensitive token match.
// Absent tokens report ok=false and are not an error. Callers must not
// modify the returned slice.
func (l *Lexicon) Lookup(token string) ([]float64, bool) {
	vec, ok := l.vectors[token]
	return vec, ok
}

// Dim returns the vector dimension shared by all entries.
func (l *Lexicon) Dim() int {
	return l.dim
}

// Len returns the number of tokens in the lexicon.
func (l *Lexicon) Len() int {
	return len(l.vectors)
}

// Tokens returns all tokens in sorted order.
func (l *Lexicon) Tokens() []string {
	tokens := make([]string, 0, len(l.vectors))
	for token := range l.vectors {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
