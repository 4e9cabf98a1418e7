package generator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"claimdesk/internal/config"
	"claimdesk/internal/generator/gemini"
	"claimdesk/internal/port"
)

func testGeneratorConfig() config.GeneratorConfig {
	return config.GeneratorConfig{
		Provider:     "gemini",
		APIKey:       "test-key",
		DefaultModel: "gemini-2.5-flash",
		MaxRetries:   2,
		TimeoutSecs:  5,
	}
}

// recordSpec is a small strict schema used to exercise local validation.
func recordSpec() port.SchemaSpec {
	doc := `{
		"type": "object",
		"properties": {
			"total": {"type": "number"},
			"currency": {"type": "string"}
		},
		"required": ["total"],
		"additionalProperties": false
	}`
	return port.SchemaSpec{Name: "test_record", Document: json.RawMessage(doc)}
}

// geminiBody wraps text in the candidates/parts response shape.
func geminiBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
	return string(body)
}

func TestGeminiGenerator_Generate_Success(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiBody(`{"total": 1250.50, "currency": "INR"}`)))
	}))
	defer server.Close()

	cfg := testGeneratorConfig()
	gen, err := gemini.NewWithEndpoint(&cfg, recordSpec(), server.URL)
	assert.NoError(t, err)

	record, err := gen.Generate(context.Background(), "extract the bill")

	assert.NoError(t, err)
	assert.JSONEq(t, `{"total": 1250.50, "currency": "INR"}`, string(record))
	assert.Equal(t, "test-key", gotKey)

	// Structured output is requested with the bound schema.
	genCfg := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.NotNil(t, genCfg["responseJsonSchema"])
}

func TestGeminiGenerator_Generate_RetriesRateLimit(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(geminiBody(`{"total": 99}`)))
	}))
	defer server.Close()

	cfg := testGeneratorConfig()
	gen, err := gemini.NewWithEndpoint(&cfg, recordSpec(), server.URL)
	assert.NoError(t, err)

	record, err := gen.Generate(context.Background(), "extract")

	assert.NoError(t, err)
	assert.JSONEq(t, `{"total": 99}`, string(record))
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestGeminiGenerator_Generate_RetriesServerError(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(geminiBody(`{"total": 7}`)))
	}))
	defer server.Close()

	cfg := testGeneratorConfig()
	gen, err := gemini.NewWithEndpoint(&cfg, recordSpec(), server.URL)
	assert.NoError(t, err)

	record, err := gen.Generate(context.Background(), "extract")

	assert.NoError(t, err)
	assert.JSONEq(t, `{"total": 7}`, string(record))
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestGeminiGenerator_Generate_BadRequestNotRetried(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid schema"}}`))
	}))
	defer server.Close()

	cfg := testGeneratorConfig()
	gen, err := gemini.NewWithEndpoint(&cfg, recordSpec(), server.URL)
	assert.NoError(t, err)

	record, err := gen.Generate(context.Background(), "extract")

	assert.Nil(t, record)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestGeminiGenerator_Generate_SchemaViolationRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing the required "total" field.
		_, _ = w.Write([]byte(geminiBody(`{"currency": "INR"}`)))
	}))
	defer server.Close()

	cfg := testGeneratorConfig()
	cfg.MaxRetries = 0
	gen, err := gemini.NewWithEndpoint(&cfg, recordSpec(), server.URL)
	assert.NoError(t, err)

	record, err := gen.Generate(context.Background(), "extract")

	assert.Nil(t, record)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "violates schema test_record")
}

func TestGeminiGenerator_Generate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	cfg := testGeneratorConfig()
	cfg.MaxRetries = 0
	gen, err := gemini.NewWithEndpoint(&cfg, recordSpec(), server.URL)
	assert.NoError(t, err)

	record, err := gen.Generate(context.Background(), "extract")

	assert.Nil(t, record)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiGenerator_New_InvalidSchema(t *testing.T) {
	cfg := testGeneratorConfig()
	spec := port.SchemaSpec{Name: "broken", Document: json.RawMessage(`{"type": 42}`)}

	gen, err := gemini.New(&cfg, spec)

	assert.Nil(t, gen)
	assert.Error(t, err)
}
