package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "id,label,text\n101,pos,Good day\n102,neg,\"bad, bad day\"\n"
	docs, err := ReadCSV(strings.NewReader(input), CSVOptions{
		TextColumn:  "text",
		LabelColumn: "label",
		IDColumn:    "id",
	})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	want := []Document{
		{ID: "101", Label: "pos", Text: "Good day"},
		{ID: "102", Label: "neg", Text: "bad, bad day"},
	}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("ReadCSV() = %v, want %v", docs, want)
	}
}

func TestReadCSVOrdinalIDs(t *testing.T) {
	input := "text\nfirst doc\nsecond doc\n"
	docs, err := ReadCSV(strings.NewReader(input), CSVOptions{TextColumn: "text"})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if docs[0].ID != "1" || docs[1].ID != "2" {
		t.Errorf("ids = %q %q, want 1 2", docs[0].ID, docs[1].ID)
	}
}

func TestReadCSVHeaderCaseInsensitive(t *testing.T) {
	input := "ID,Label,Text\n7,pos,hello\n"
	docs, err := ReadCSV(strings.NewReader(input), CSVOptions{
		TextColumn:  "text",
		LabelColumn: "label",
		IDColumn:    "id",
	})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if docs[0].ID != "7" || docs[0].Label != "pos" || docs[0].Text != "hello" {
		t.Errorf("ReadCSV() = %+v, want id 7 label pos text hello", docs[0])
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    CSVOptions
		wantErr error
	}{
		{"Empty input", "", CSVOptions{TextColumn: "text"}, ErrNoRecords},
		{"Header only", "id,text\n", CSVOptions{TextColumn: "text"}, ErrNoRecords},
		{"Missing text column", "id,body\n1,hello\n", CSVOptions{TextColumn: "text"}, nil},
		{"Missing label column", "text\nhello\n", CSVOptions{TextColumn: "text", LabelColumn: "label"}, nil},
		{"No text column configured", "text\nhello\n", CSVOptions{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), tt.opts)
			if err == nil {
				t.Fatalf("ReadCSV() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadCSV() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.csv")
	if err := os.WriteFile(path, []byte("text,label\ngood day,pos\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := ReadCSVFile(path, CSVOptions{TextColumn: "text", LabelColumn: "label"})
	if err != nil {
		t.Fatalf("ReadCSVFile() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Text != "good day" {
		t.Errorf("ReadCSVFile() = %v, want one good day document", docs)
	}

	if _, err := ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"), CSVOptions{TextColumn: "text"}); err == nil {
		t.Error("ReadCSVFile(missing) error = nil, want error")
	}
}
