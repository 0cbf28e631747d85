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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/TFMV/TextVectorPro/pkg/pca"
)

// Row is one document's featurized output.
type Row struct {
	ID     string    `json:"id"`
	Label  string    `json:"label"`
	Vector []float64 `json:"vector"`
	Tokens []string  `json:"tokens,omitempty"`
}

// FeatureMatrix holds one feature vector per input document, in input
// order. It is rebuilt per run and never mutated in place.
type FeatureMatrix struct {
	Dim  int   `json:"dim"`
	Rows []Row `json:"rows"`
}

// Len returns the number of document rows.
func (m *FeatureMatrix) Len() int {
	return len(m.Rows)
}

// Labels returns the row labels in row order.
func (m *FeatureMatrix) Labels() []string {
	labels := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		labels[i] = row.Label
	}
	return labels
}

// Dense copies the vectors into a gonum matrix, one row per document.
func (m *FeatureMatrix) Dense() *mat.Dense {
	out := mat.NewDense(len(m.Rows), m.Dim, nil)
	for i, row := range m.Rows {
		out.SetRow(i, row.Vector)
	}
	return out
}

// Reduce standardizes the feature columns and projects every row onto k
// principal components. The reduced matrix keeps ids and labels aligned
// with the source rows.
func (m *FeatureMatrix) Reduce(k int) (*ReducedMatrix, error) {
	model := pca.NewPCA(k)
	projected, err := model.FitTransform(m.Dense())
	if err != nil {
		return nil, fmt.Errorf("reduce feature matrix: %w", err)
	}

	components := make([]string, k)
	for i := range components {
		components[i] = fmt.Sprintf("PC%d", i+1)
	}

	rows := make([]ReducedRow, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = ReducedRow{
			ID:     row.ID,
			Label:  row.Label,
			Vector: mat.Row(nil, i, projected),
		}
	}

	return &ReducedMatrix{
		Components:        components,
		ExplainedVariance: model.ExplainedVarianceRatio(),
		Rows:              rows,
	}, nil
}

// WriteCSV writes the matrix with an id, label and one column per feature
// dimension.
func (m *FeatureMatrix) WriteCSV(w io.Writer) error {
	header := make([]string, 0, m.Dim+2)
	header = append(header, "id", "label")
	for i := 0; i < m.Dim; i++ {
		header = append(header, fmt.Sprintf("f%d", i+1))
	}

	rows := make([][]float64, len(m.Rows))
	ids := make([]string, len(m.Rows))
	labels := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = row.Vector
		ids[i] = row.ID
		labels[i] = row.Label
	}
	return writeVectorCSV(w, header, ids, labels, rows)
}

// ReducedRow is one document's projection onto the retained components.
type ReducedRow struct {
	ID     string    `json:"id"`
	Label  string    `json:"label"`
	Vector []float64 `json:"vector"`
}

// ReducedMatrix pairs projected rows with per-component diagnostics.
type ReducedMatrix struct {
	Components        []string     `json:"components"`
	ExplainedVariance []float64    `json:"explained_variance"`
	Rows              []ReducedRow `json:"rows"`
}

// Len returns the number of document rows.
func (m *ReducedMatrix) Len() int {
	return len(m.Rows)
}

// WriteCSV writes the projected rows with the component names as headers.
func (m *ReducedMatrix) WriteCSV(w io.Writer) error {
	header := make([]string, 0, len(m.Components)+2)
	header = append(header, "id", "label")
	header = append(header, m.Components...)

	rows := make([][]float64, len(m.Rows))
	ids := make([]string, len(m.Rows))
	labels := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = row.Vector
		ids[i] = row.ID
		labels[i] = row.Label
	}
	return writeVectorCSV(w, header, ids, labels, rows)
}

func writeVectorCSV(w io.Writer, header, ids, labels []string, rows [][]float64) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(header))
	for i, vec := range rows {
		record[0] = ids[i]
		record[1] = labels[i]
		for j, v := range vec {
			record[j+2] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
