package pca

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNotFitted signals Transform being called before Fit.
	ErrNotFitted = errors.New("model not fitted")
	// ErrDegenerateColumn signals a zero-variance column that cannot be standardized.
	ErrDegenerateColumn = errors.New("degenerate column")
)

// DegenerateColumnError wraps ErrDegenerateColumn with the column index.
type DegenerateColumnError struct {
	Column int
}

func (e *DegenerateColumnError) Error() string {
	return fmt.Sprintf("%s: column %d has zero variance", ErrDegenerateColumn.Error(), e.Column)
}

func (e *DegenerateColumnError) Unwrap() error { return ErrDegenerateColumn }

// PCA standardizes input columns and projects rows onto the leading
// principal components, ordered by descending explained variance.
type PCA struct {
	NumComponents int

	mean   []float64
	scale  []float64
	basis  *mat.Dense
	ratios []float64
}

// NewPCA creates a new PCA instance with the specified number of components.
func NewPCA(numComponents int) *PCA {
	return &PCA{NumComponents: numComponents}
}

// Fit learns per-column standardization statistics and the projection basis
// from X. Every column must have nonzero variance; a constant column fails
// with ErrDegenerateColumn and leaves the model unfitted.
func (pca *PCA) Fit(X *mat.Dense) error {
	rows, cols := X.Dims()
	if pca.NumComponents <= 0 {
		return fmt.Errorf("pca: component count %d must be positive", pca.NumComponents)
	}
	if rows < 2 {
		return fmt.Errorf("pca: need at least 2 rows, got %d", rows)
	}
	available := cols
	if rows < cols {
		available = rows
	}
	if pca.NumComponents > available {
		return fmt.Errorf("pca: %d components requested, only %d available", pca.NumComponents, available)
	}

	mean := make([]float64, cols)
	scale := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, X)
		m, sd := stat.MeanStdDev(col, nil)
		if sd == 0 {
			return &DegenerateColumnError{Column: j}
		}
		mean[j] = m
		scale[j] = sd
	}

	Z := standardize(X, mean, scale)

	var svd mat.SVD
	if ok := svd.Factorize(Z, mat.SVDThin); !ok {
		return fmt.Errorf("pca: svd factorization failed")
	}

	values := svd.Values(nil)
	var total float64
	for _, s := range values {
		total += s * s
	}
	ratios := make([]float64, pca.NumComponents)
	for i := range ratios {
		ratios[i] = values[i] * values[i] / total
	}

	var v mat.Dense
	svd.VTo(&v)

	pca.mean = mean
	pca.scale = scale
	pca.basis = v.Slice(0, cols, 0, pca.NumComponents).(*mat.Dense)
	pca.ratios = ratios
	return nil
}

// Transform standardizes X with the fitted statistics and projects it onto
// the retained components. The output keeps one row per input row and has
// exactly NumComponents columns.
func (pca *PCA) Transform(X *mat.Dense) (*mat.Dense, error) {
	if pca.basis == nil {
		return nil, ErrNotFitted
	}
	_, cols := X.Dims()
	if cols != len(pca.mean) {
		return nil, fmt.Errorf("pca: expected %d columns, got %d", len(pca.mean), cols)
	}

	Z := standardize(X, pca.mean, pca.scale)
	var out mat.Dense
	out.Mul(Z, pca.basis)
	return &out, nil
}

// FitTransform fits the model to X and transforms X in one step.
func (pca *PCA) FitTransform(X *mat.Dense) (*mat.Dense, error) {
	if err := pca.Fit(X); err != nil {
		return nil, err
	}
	return pca.Transform(X)
}

// ExplainedVarianceRatio returns the share of total variance captured by
// each retained component, in component order.
func (pca *PCA) ExplainedVarianceRatio() []float64 {
	if pca.ratios == nil {
		return nil
	}
	out := make([]float64, len(pca.ratios))
	copy(out, pca.ratios)
	return out
}

// standardize returns a copy of X with each column centered on mean and
// divided by scale.
func standardize(X *mat.Dense, mean, scale []float64) *mat.Dense {
	rows, cols := X.Dims()
	Z := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			Z.Set(i, j, (X.At(i, j)-mean[j])/scale[j])
		}
	}
	return Z
}
