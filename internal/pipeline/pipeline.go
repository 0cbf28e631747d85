// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/TFMV/TextVectorPro/pkg/aggregate"
	"github.com/TFMV/TextVectorPro/pkg/corpus"
	"github.com/TFMV/TextVectorPro/pkg/lexicon"
	"github.com/TFMV/TextVectorPro/pkg/tokenizer"
)

// ErrEmptyInput signals a featurization request without any documents.
var ErrEmptyInput = errors.New("empty input")

// Options configures a featurization run.
type Options struct {
	// Reduction folds matched token vectors per document; nil means sum.
	Reduction aggregate.ReduceFunc
	// KeepTokens retains each document's token sequence on its output row.
	KeepTokens bool
	// Workers bounds document-level parallelism. Values below 2 run
	// serially.
	Workers int
}

// Pipeline turns labeled documents into fixed-length feature vectors:
// tokenize, look up embeddings, reduce. A Pipeline is safe for concurrent
// use; the lexicon is only ever read.
type Pipeline struct {
	tok     *tokenizer.Tokenizer
	agg     *aggregate.Aggregator
	workers int

	// featurizeDoc is featurizeOne unless a test replaces it to force
	// per-document failures.
	featurizeDoc func(corpus.Document) (Row, error)
}

// New assembles a pipeline from a tokenizer and a lexicon.
func New(tok *tokenizer.Tokenizer, lex *lexicon.Lexicon, opts Options) *Pipeline {
	p := &Pipeline{
		tok: tok,
		agg: aggregate.New(lex, aggregate.Options{
			Reduction:  opts.Reduction,
			KeepTokens: opts.KeepTokens,
		}),
		workers: opts.Workers,
	}
	p.featurizeDoc = p.featurizeOne
	return p
}

// Dim returns the feature vector length.
func (p *Pipeline) Dim() int {
	return p.agg.Dim()
}

// Featurize produces one feature vector per document, preserving input
// order. Documents without tokens or without lexicon matches yield zero
// vectors; rows are never dropped. Any per-document failure aborts the
// whole call so no partial matrix escapes.
func (p *Pipeline) Featurize(docs []corpus.Document) (*FeatureMatrix, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("featurize: %w", ErrEmptyInput)
	}

	rows := make([]Row, len(docs))
	if p.workers < 2 {
		for i := range docs {
			row, err := p.featurizeDoc(docs[i])
			if err != nil {
				return nil, err
			}
			rows[i] = row
		}
		return &FeatureMatrix{Dim: p.agg.Dim(), Rows: rows}, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	sem := make(chan struct{}, p.workers)

	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			row, err := p.featurizeDoc(docs[i])
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			// Index-addressed writes keep the original document order.
			rows[i] = row
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &FeatureMatrix{Dim: p.agg.Dim(), Rows: rows}, nil
}

// FeaturizeText runs a single bare text through the pipeline.
func (p *Pipeline) FeaturizeText(text string) (Row, error) {
	return p.featurizeDoc(corpus.Document{Text: text})
}

func (p *Pipeline) featurizeOne(doc corpus.Document) (Row, error) {
	tokens, err := p.tok.Tokenize(doc.Text)
	if err != nil {
		return Row{}, fmt.Errorf("tokenize document %q: %w", doc.ID, err)
	}
	res := p.agg.Aggregate(tokens)
	return Row{ID: doc.ID, Label: doc.Label, Vector: res.Vector, Tokens: res.Tokens}, nil
}
