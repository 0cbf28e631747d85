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
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TFMV/TextVectorPro/pkg/corpus"
)

const storeBatchSize = 1000

// CreateRun creates a new run entry in the database and returns the run_id.
func CreateRun(ctx context.Context, pool *pgxpool.Pool, description string) (int, error) {
	var runID int
	err := pool.QueryRow(ctx, "INSERT INTO runs (description) VALUES ($1) RETURNING run_id", description).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}
	return runID, nil
}

// InsertFromLoadTable copies documents from the load table into the
// documents table under the given run.
func InsertFromLoadTable(ctx context.Context, pool *pgxpool.Pool, loadTable string, runID int) (int64, error) {
	query := fmt.Sprintf(
		"INSERT INTO documents (run_id, doc_id, label, content) SELECT $1, doc_id, label, content FROM %s",
		loadTable,
	)
	tag, err := pool.Exec(ctx, query, runID)
	if err != nil {
		return 0, fmt.Errorf("insert from load table %s: %w", loadTable, err)
	}
	return tag.RowsAffected(), nil
}

// LoadDocuments reads the documents stored under a run, ordered by doc_id.
func LoadDocuments(ctx context.Context, pool *pgxpool.Pool, runID int) ([]corpus.Document, error) {
	rows, err := pool.Query(ctx, "SELECT doc_id, label, content FROM documents WHERE run_id = $1 ORDER BY doc_id", runID)
	if err != nil {
		return nil, fmt.Errorf("query documents for run %d: %w", runID, err)
	}
	defer rows.Close()

	var docs []corpus.Document
	for rows.Next() {
		var doc corpus.Document
		var label pgtype.Text
		if err := rows.Scan(&doc.ID, &label, &doc.Text); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		doc.Label = label.String
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read documents for run %d: %w", runID, err)
	}

	return docs, nil
}

// SaveFeatureMatrix persists one feature row per document under the given
// run, committing in batches.
func SaveFeatureMatrix(ctx context.Context, pool *pgxpool.Pool, runID int, m *FeatureMatrix) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin feature insert: %w", err)
	}
	// tx is reassigned as batches commit; the closure rolls back whichever
	// transaction is open when an insert fails.
	defer func() { _ = tx.Rollback(ctx) }()

	insert := "INSERT INTO document_features (run_id, doc_id, label, feature_vector) VALUES ($1, $2, $3, $4)"
	count := 0
	for _, row := range m.Rows {
		if _, err := tx.Exec(ctx, insert, runID, row.ID, row.Label, row.Vector); err != nil {
			return fmt.Errorf("insert features for document %q: %w", row.ID, err)
		}
		count++
		if count%storeBatchSize == 0 {
			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("commit feature batch: %w", err)
			}
			tx, err = pool.Begin(ctx)
			if err != nil {
				return fmt.Errorf("begin feature insert: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit features: %w", err)
	}
	return nil
}
