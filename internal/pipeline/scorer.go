package pipeline

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/TFMV/TextVectorPro/pkg/activation"
)

// Scorer applies a pre-trained classification model to feature vectors.
// Model fitting happens elsewhere; the scorer only consumes the weights.
type Scorer struct {
	Model *LogisticRegression
}

// LogisticRegression holds externally fitted model weights.
type LogisticRegression struct {
	Coef      []float64
	Intercept float64
}

// LoadModel loads a pre-trained logistic regression model from a gob file.
func LoadModel(filename string) (*Scorer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer file.Close()

	var model LogisticRegression
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	return &Scorer{Model: &model}, nil
}

// Score returns the model probability for a single feature vector.
func (s *Scorer) Score(features []float64) (float64, error) {
	if len(features) != len(s.Model.Coef) {
		return 0, fmt.Errorf("score: expected %d features, got %d", len(s.Model.Coef), len(features))
	}
	return activation.Logistic(floats.Dot(s.Model.Coef, features) + s.Model.Intercept), nil
}

// ScoreMatrix scores every row of the matrix, preserving row order.
func (s *Scorer) ScoreMatrix(m *FeatureMatrix) ([]float64, error) {
	scores := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		score, err := s.Score(row.Vector)
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", row.ID, err)
		}
		scores[i] = score
	}
	return scores, nil
}

// FeatureWeight pairs a feature index with its model coefficient.
type FeatureWeight struct {
	Index  int     `json:"index"`
	Weight float64 `json:"weight"`
}

// Importance ranks features by absolute coefficient weight, largest first.
func (s *Scorer) Importance() []FeatureWeight {
	weights := make([]FeatureWeight, len(s.Model.Coef))
	for i, coef := range s.Model.Coef {
		weights[i] = FeatureWeight{Index: i, Weight: coef}
	}
	sort.Slice(weights, func(i, j int) bool {
		return math.Abs(weights[i].Weight) > math.Abs(weights[j].Weight)
	})
	return weights
}
