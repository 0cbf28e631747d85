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
// IMPLIED, INCLUDING WITHOUT LIMITATION THE WARRANTIES OF MERCHANTABILITY,
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

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/TFMV/TextVectorPro/internal/metrics"
	"github.com/TFMV/TextVectorPro/internal/pipeline"
	"github.com/TFMV/TextVectorPro/pkg/corpus"
	"github.com/TFMV/TextVectorPro/pkg/lexicon"
)

// Deps bundles what the handlers need. Scorer and Pool are optional; the
// corresponding response fields are omitted when they are nil.
type Deps struct {
	Pipeline *pipeline.Pipeline
	Lexicon  *lexicon.Lexicon
	Scorer   *pipeline.Scorer
	Pool     *pgxpool.Pool
	Logger   *zap.Logger
	// Components is the default batch projection size; requests override
	// it with the components query parameter. Zero disables projection.
	Components int
}

// FeaturizeRequest is the body of a single-document featurize call.
type FeaturizeRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// FeaturizeSingleHandler featurizes one document from a JSON body.
func FeaturizeSingleHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FeaturizeRequest
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		row, err := deps.Pipeline.FeaturizeText(req.Text)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to featurize document: %v", err)})
			return
		}
		metrics.AddDocumentsFeaturized(1)

		resp := gin.H{
			"id":     req.ID,
			"dim":    len(row.Vector),
			"vector": row.Vector,
		}
		if row.Tokens != nil {
			resp["tokens"] = row.Tokens
		}
		if deps.Scorer != nil {
			score, err := deps.Scorer.Score(row.Vector)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to score document: %v", err)})
				return
			}
			resp["score"] = score
		}

		c.JSON(http.StatusOK, resp)
	}
}

// FeaturizeBatchHandler featurizes a CSV of documents uploaded as a
// multipart file. The text_column, label_column and id_column query
// parameters map CSV headers onto document fields; components requests a
// projection of the feature matrix.
func FeaturizeBatchHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()

		docs, err := corpus.ReadCSV(f, corpus.CSVOptions{
			TextColumn:  c.DefaultQuery("text_column", "content"),
			LabelColumn: c.Query("label_column"),
			IDColumn:    c.Query("id_column"),
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to read CSV: %v", err)})
			return
		}

		m, err := deps.Pipeline.Featurize(docs)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, pipeline.ErrEmptyInput) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": fmt.Sprintf("Failed to featurize batch: %v", err)})
			return
		}
		metrics.AddDocumentsFeaturized(m.Len())

		resp := gin.H{
			"status": "success",
			"dim":    m.Dim,
			"rows":   m.Len(),
			"data":   m.Rows,
		}

		k := deps.Components
		if raw := c.Query("components"); raw != "" {
			k, err = strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid components value %q", raw)})
				return
			}
		}
		if k > 0 {
			reduced, err := m.Reduce(k)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to reduce feature matrix: %v", err)})
				return
			}
			resp["reduced"] = reduced
		}

		if deps.Pool != nil {
			runID, err := pipeline.CreateRun(c.Request.Context(), deps.Pool, "Batch Featurization")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create run: %v", err)})
				return
			}
			if err := pipeline.SaveFeatureMatrix(c.Request.Context(), deps.Pool, runID, m); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save feature matrix: %v", err)})
				return
			}
			resp["run_id"] = runID
		}

		c.JSON(http.StatusOK, resp)
	}
}

// LexiconStatsHandler reports the lexicon size and vector dimension.
func LexiconStatsHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tokens": deps.Lexicon.Len(),
			"dim":    deps.Lexicon.Dim(),
		})
	}
}

// HealthCheckHandler handles health check requests
func HealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		zuluTime := time.Now().UTC().Format(time.RFC3339)
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"zuluTime": zuluTime,
		})
	}
}
