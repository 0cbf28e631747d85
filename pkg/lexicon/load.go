package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load parses the whitespace-delimited embedding format, one entry per line:
//
//	token v1 v2 ... vD
//
// Blank lines are skipped. The first entry fixes the dimension and every
// later line must match it.
func Load(r io.Reader) (*Lexicon, error) {
	var entries []Entry
	dim := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected token and vector, got %q", lineNo, scanner.Text())
		}

		token := fields[0]
		vec := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse component %d of %q: %w", lineNo, i+1, token, err)
			}
			vec[i] = value
		}

		if dim == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			return nil, fmt.Errorf("line %d: %w", lineNo, &DimensionMismatchError{Token: token, Want: dim, Got: len(vec)})
		}
		entries = append(entries, Entry{Token: token, Vector: vec})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read embeddings: %w", err)
	}

	return New(entries)
}

// LoadFile loads a lexicon from an embedding file on disk.
func LoadFile(path string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embeddings file: %w", err)
	}
	defer file.Close()

	lex, err := Load(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return lex, nil
}
