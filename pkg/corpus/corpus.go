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

package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoRecords signals a document source without any data rows.
var ErrNoRecords = errors.New("no records")

// Document is one unit of text with an optional label.
type Document struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// CSVOptions maps document fields to CSV header names. Header matching is
// case-insensitive.
type CSVOptions struct {
	// TextColumn names the column holding the document text. Required.
	TextColumn string
	// LabelColumn names the label column. Optional.
	LabelColumn string
	// IDColumn names the id column. When empty, ids default to the
	// 1-based row ordinal.
	IDColumn string
}

// ReadCSV reads documents from CSV data with a header row.
func ReadCSV(r io.Reader, opts CSVOptions) ([]Document, error) {
	if opts.TextColumn == "" {
		return nil, fmt.Errorf("read csv: text column name is required")
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoRecords
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	textIdx, err := columnIndex(header, opts.TextColumn)
	if err != nil {
		return nil, err
	}
	labelIdx := -1
	if opts.LabelColumn != "" {
		if labelIdx, err = columnIndex(header, opts.LabelColumn); err != nil {
			return nil, err
		}
	}
	idIdx := -1
	if opts.IDColumn != "" {
		if idIdx, err = columnIndex(header, opts.IDColumn); err != nil {
			return nil, err
		}
	}

	var docs []Document
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(docs)+2, err)
		}

		doc := Document{Text: record[textIdx]}
		if labelIdx >= 0 {
			doc.Label = record[labelIdx]
		}
		if idIdx >= 0 {
			doc.ID = record[idIdx]
		} else {
			doc.ID = strconv.Itoa(len(docs) + 1)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, ErrNoRecords
	}
	return docs, nil
}

// ReadCSVFile reads documents from a CSV file on disk.
func ReadCSVFile(path string, opts CSVOptions) ([]Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	docs, err := ReadCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return docs, nil
}

// columnIndex finds a header column by case-insensitive name.
func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in header %v", name, header)
}
