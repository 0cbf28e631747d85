package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TFMV/TextVectorPro/internal/pipeline"
	"github.com/TFMV/TextVectorPro/pkg/lexicon"
	"github.com/TFMV/TextVectorPro/pkg/tokenizer"
)

func testRouter(t *testing.T, opts pipeline.Options, scorer *pipeline.Scorer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lex, err := lexicon.New([]lexicon.Entry{
		{Token: "good", Vector: []float64{1, 0}},
		{Token: "bad", Vector: []float64{-1, 0}},
		{Token: "day", Vector: []float64{0, 1}},
	})
	if err != nil {
		t.Fatalf("lexicon.New() error = %v", err)
	}

	deps := &Deps{
		Pipeline: pipeline.New(tokenizer.New(tokenizer.DefaultRules()), lex, opts),
		Lexicon:  lex,
		Scorer:   scorer,
		Logger:   zap.NewNop(),
	}

	r := gin.New()
	SetupRoutes(r, deps)
	return r
}

func TestHealthCheckHandler(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp struct {
		Status   string `json:"status"`
		ZuluTime string `json:"zuluTime"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "OK" {
		t.Errorf("status = %q, want %q", resp.Status, "OK")
	}
	if resp.ZuluTime == "" {
		t.Errorf("zuluTime missing from response")
	}
}

func TestFeaturizeSingleHandler(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"id": "42", "text": "good day"}`)
	req := httptest.NewRequest(http.MethodPost, "/featurize", body)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /featurize status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		ID     string    `json:"id"`
		Dim    int       `json:"dim"`
		Vector []float64 `json:"vector"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "42" {
		t.Errorf("id = %q, want %q", resp.ID, "42")
	}
	if resp.Dim != 2 {
		t.Errorf("dim = %d, want 2", resp.Dim)
	}
	if len(resp.Vector) != 2 || resp.Vector[0] != 1 || resp.Vector[1] != 1 {
		t.Errorf("vector = %v, want [1 1]", resp.Vector)
	}
}

func TestFeaturizeSingleHandlerBadJSON(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/featurize", strings.NewReader("{not json"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("POST /featurize status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestFeaturizeSingleHandlerKeepTokens(t *testing.T) {
	r := testRouter(t, pipeline.Options{KeepTokens: true}, nil)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"text": "good day xyz"}`)
	req := httptest.NewRequest(http.MethodPost, "/featurize", body)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /featurize status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp struct {
		Tokens []string `json:"tokens"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if want := []string{"good", "day", "xyz"}; !reflect.DeepEqual(resp.Tokens, want) {
		t.Errorf("tokens = %v, want %v", resp.Tokens, want)
	}
}

func TestFeaturizeSingleHandlerScore(t *testing.T) {
	scorer := &pipeline.Scorer{Model: &pipeline.LogisticRegression{Coef: []float64{1, 1}, Intercept: -2}}
	r := testRouter(t, pipeline.Options{}, scorer)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"text": "good day"}`)
	req := httptest.NewRequest(http.MethodPost, "/featurize", body)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /featurize status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Score == nil {
		t.Fatalf("score missing from response")
	}
	if *resp.Score != 0.5 {
		t.Errorf("score = %v, want 0.5", *resp.Score)
	}
}

func TestFeaturizeBatchHandler(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "docs.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("doc_id,label,content\n1,pos,good day\n2,neg,bad day\n3,none,quantum\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/featurize-batch?id_column=doc_id&label_column=label", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /featurize-batch status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
		Dim    int    `json:"dim"`
		Rows   int    `json:"rows"`
		Data   []struct {
			ID     string    `json:"id"`
			Label  string    `json:"label"`
			Vector []float64 `json:"vector"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.Dim != 2 || resp.Rows != 3 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("data has %d rows, want 3", len(resp.Data))
	}
	if resp.Data[0].ID != "1" || resp.Data[0].Vector[0] != 1 || resp.Data[0].Vector[1] != 1 {
		t.Errorf("row 0 = %+v, want id 1 vector [1 1]", resp.Data[0])
	}
	if resp.Data[2].Vector[0] != 0 || resp.Data[2].Vector[1] != 0 {
		t.Errorf("row 2 = %+v, want zero vector", resp.Data[2])
	}
}

func TestFeaturizeBatchHandlerReduce(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "docs.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("content\ngood day\nbad\nbad day\ngood\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/featurize-batch?components=2", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /featurize-batch status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		Reduced struct {
			Components        []string  `json:"components"`
			ExplainedVariance []float64 `json:"explained_variance"`
			Rows              []struct {
				Vector []float64 `json:"vector"`
			} `json:"rows"`
		} `json:"reduced"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Reduced.Components) != 2 || resp.Reduced.Components[0] != "PC1" {
		t.Errorf("reduced components = %v, want [PC1 PC2]", resp.Reduced.Components)
	}
	if len(resp.Reduced.Rows) != 4 {
		t.Errorf("reduced rows = %d, want 4", len(resp.Reduced.Rows))
	}
}

func TestFeaturizeBatchHandlerMissingFile(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/featurize-batch", strings.NewReader(""))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("POST /featurize-batch status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestFeaturizeBatchHandlerUnknownColumn(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "docs.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("body\ngood day\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/featurize-batch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("POST /featurize-batch status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestLexiconStatsHandler(t *testing.T) {
	r := testRouter(t, pipeline.Options{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lexicon/stats", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /lexicon/stats status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp struct {
		Tokens int `json:"tokens"`
		Dim    int `json:"dim"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tokens != 3 || resp.Dim != 2 {
		t.Errorf("stats = %+v, want tokens 3 dim 2", resp)
	}
}
