package pipeline

import (
	"encoding/gob"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestScore(t *testing.T) {
	scorer := &Scorer{Model: &LogisticRegression{Coef: []float64{2, 1}, Intercept: -1}}

	tests := []struct {
		name     string
		features []float64
		want     float64
	}{
		{"positive margin", []float64{1, 0}, 0.7310585786300049},
		{"negative margin", []float64{0, 0}, 0.2689414213699951},
		{"zero margin", []float64{0, 1}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(tt.features)
			if err != nil {
				t.Fatalf("Score(%v) error = %v", tt.features, err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score(%v) = %v, want %v", tt.features, got, tt.want)
			}
		})
	}
}

func TestScoreLengthMismatch(t *testing.T) {
	scorer := &Scorer{Model: &LogisticRegression{Coef: []float64{2, 1}, Intercept: 0}}

	if _, err := scorer.Score([]float64{1, 2, 3}); err == nil {
		t.Errorf("Score() expected error for mismatched feature length, got nil")
	}
}

func TestScoreMatrix(t *testing.T) {
	scorer := &Scorer{Model: &LogisticRegression{Coef: []float64{2, 1}, Intercept: -1}}
	m := &FeatureMatrix{
		Dim: 2,
		Rows: []Row{
			{ID: "1", Vector: []float64{1, 0}},
			{ID: "2", Vector: []float64{0, 1}},
		},
	}

	scores, err := scorer.ScoreMatrix(m)
	if err != nil {
		t.Fatalf("ScoreMatrix() error = %v", err)
	}
	want := []float64{0.7310585786300049, 0.5}
	if len(scores) != len(want) {
		t.Fatalf("ScoreMatrix() returned %d scores, want %d", len(scores), len(want))
	}
	for i := range want {
		if math.Abs(scores[i]-want[i]) > 1e-12 {
			t.Errorf("ScoreMatrix() score %d = %v, want %v", i, scores[i], want[i])
		}
	}
}

func TestScoreMatrixDimensionError(t *testing.T) {
	scorer := &Scorer{Model: &LogisticRegression{Coef: []float64{2, 1}, Intercept: 0}}
	m := &FeatureMatrix{
		Dim: 2,
		Rows: []Row{
			{ID: "1", Vector: []float64{1, 0}},
			{ID: "2", Vector: []float64{1}},
		},
	}

	if _, err := scorer.ScoreMatrix(m); err == nil {
		t.Errorf("ScoreMatrix() expected error for short row, got nil")
	}
}

func TestImportance(t *testing.T) {
	scorer := &Scorer{Model: &LogisticRegression{Coef: []float64{0.5, -2, 1}}}

	got := scorer.Importance()
	want := []FeatureWeight{
		{Index: 1, Weight: -2},
		{Index: 2, Weight: 1},
		{Index: 0, Weight: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Importance() = %v, want %v", got, want)
	}
}

func TestLoadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	model := LogisticRegression{Coef: []float64{0.25, -0.5}, Intercept: 1.5}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create model file: %v", err)
	}
	if err := gob.NewEncoder(file).Encode(model); err != nil {
		t.Fatalf("encode model: %v", err)
	}
	file.Close()

	scorer, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if !reflect.DeepEqual(*scorer.Model, model) {
		t.Errorf("LoadModel() = %+v, want %+v", *scorer.Model, model)
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	if _, err := LoadModel(filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Errorf("LoadModel() expected error for missing file, got nil")
	}
}
