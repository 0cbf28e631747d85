package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

// Rules configures how raw tokens are normalized. The zero value keeps
// every token untouched; DefaultRules is the usual starting point.
type Rules struct {
	Lowercase      bool
	StripPunct     bool
	MinTokenLength int
	Stopwords      []string
}

// DefaultRules lowercases tokens and strips punctuation.
func DefaultRules() Rules {
	return Rules{Lowercase: true, StripPunct: true, MinTokenLength: 1}
}

// Tokenizer splits raw text into normalized word tokens. The same text and
// rules always produce the same token sequence, in text order.
type Tokenizer struct {
	rules     Rules
	stopwords map[string]struct{}
}

// New creates a tokenizer with the given normalization rules.
func New(rules Rules) *Tokenizer {
	t := &Tokenizer{rules: rules}
	if len(rules.Stopwords) > 0 {
		t.stopwords = make(map[string]struct{}, len(rules.Stopwords))
		for _, word := range rules.Stopwords {
			t.stopwords[word] = struct{}{}
		}
	}
	return t
}

// Tokenize segments text into words and applies the normalization rules.
// Empty or whitespace-only text yields no tokens and no error.
func (t *Tokenizer) Tokenize(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	raw := doc.Tokens()
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if norm, ok := t.normalize(tok.Text); ok {
			tokens = append(tokens, norm)
		}
	}
	return tokens, nil
}

// normalize applies the rule set to a single raw token. The second return
// reports whether the token survives.
func (t *Tokenizer) normalize(token string) (string, bool) {
	if t.rules.Lowercase {
		token = strings.ToLower(token)
	}
	if t.rules.StripPunct {
		token = strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, token)
	}
	if token == "" {
		return "", false
	}
	if t.rules.MinTokenLength > 1 && utf8.RuneCountInString(token) < t.rules.MinTokenLength {
		return "", false
	}
	if t.stopwords != nil {
		if _, drop := t.stopwords[token]; drop {
			return "", false
		}
	}
	return token, true
}
