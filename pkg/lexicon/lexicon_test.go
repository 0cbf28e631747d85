package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{Token: "good", Vector: []float64{1, 0}},
		{Token: "bad", Vector: []float64{-1, 0}},
		{Token: "day", Vector: []float64{0, 1}},
	}
}

func TestNew(t *testing.T) {
	lex, err := New(testEntries())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if lex.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", lex.Dim())
	}
	if lex.Len() != 3 {
		t.Errorf("Len() = %d, want 3", lex.Len())
	}
}

func TestNewDimensionMismatch(t *testing.T) {
	entries := append(testEntries(), Entry{Token: "night", Vector: []float64{0, 0, 1}})
	_, err := New(entries)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("New() error = %v, want ErrDimensionMismatch", err)
	}

	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("New() error = %T, want *DimensionMismatchError", err)
	}
	if mismatch.Token != "night" || mismatch.Want != 2 || mismatch.Got != 3 {
		t.Errorf("mismatch = %+v, want token night with 3 dims against 2", mismatch)
	}
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("New(nil) error = %v, want ErrEmpty", err)
	}
}

func TestNewCopiesVectors(t *testing.T) {
	vec := []float64{1, 2}
	lex, err := New([]Entry{{Token: "a", Vector: vec}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	vec[0] = 99
	got, _ := lex.Lookup("a")
	if got[0] != 1 {
		t.Errorf("Lookup(a)[0] = %v, want 1 after caller mutation", got[0])
	}
}

func TestLookup(t *testing.T) {
	lex, err := New(testEntries())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name   string
		token  string
		want   []float64
		wantOK bool
	}{
		{"Present token", "good", []float64{1, 0}, true},
		{"Absent token", "xyz", nil, false},
		{"Case sensitive miss", "Good", nil, false},
		{"Empty token", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lex.Lookup(tt.token)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.token, ok, tt.wantOK)
			}
			if tt.wantOK && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lookup(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	lex, err := New(testEntries())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := []string{"bad", "day", "good"}
	if got := lex.Tokens(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestLoad(t *testing.T) {
	input := "good 1 0\nbad -1 0\n\nday 0 1\n"
	lex, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if lex.Len() != 3 || lex.Dim() != 2 {
		t.Errorf("Load() len = %d dim = %d, want 3 and 2", lex.Len(), lex.Dim())
	}
	got, ok := lex.Lookup("bad")
	if !ok || !reflect.DeepEqual(got, []float64{-1, 0}) {
		t.Errorf("Lookup(bad) = %v %v, want [-1 0] true", got, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Bad float", "good 1 oops\n"},
		{"Token only", "good\n"},
		{"Inconsistent dimensions", "good 1 0\nbad -1 0 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Load(%q) error = nil, want error", tt.input)
			}
		})
	}
}

func TestLoadDimensionMismatchLine(t *testing.T) {
	_, err := Load(strings.NewReader("good 1 0\nbad -1\n"))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Load() error = %v, want ErrDimensionMismatch", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Load() error = %q, want line number context", err)
	}
}

func TestLoadDuplicateLastWins(t *testing.T) {
	lex, err := Load(strings.NewReader("good 1 0\ngood 2 0\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, _ := lex.Lookup("good")
	if got[0] != 2 {
		t.Errorf("Lookup(good)[0] = %v, want 2", got[0])
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.txt")
	if err := os.WriteFile(path, []byte("good 1 0\nday 0 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if lex.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lex.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("LoadFile(missing) error = nil, want error")
	}
}
