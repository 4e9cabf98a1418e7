package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"claimdesk/internal/config"
	"claimdesk/internal/generator"
	"claimdesk/internal/port"
	"claimdesk/internal/schema"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Generator implements port.StructuredGenerator using Google's Gemini API.
// Each instance is bound to a single response schema; the schema is compiled
// once at construction, which is why instances are cached and reused.
type Generator struct {
	apiKey     string
	model      string
	endpoint   string
	maxRetries int
	spec       port.SchemaSpec
	compiled   *jsonschema.Schema
	client     *http.Client
}

// Factory adapts New to the generator provider registry.
func Factory(cfg *config.GeneratorConfig, spec port.SchemaSpec) (port.StructuredGenerator, error) {
	return New(cfg, spec)
}

// New creates a Gemini-backed structured generator bound to spec.
func New(cfg *config.GeneratorConfig, spec port.SchemaSpec) (*Generator, error) {
	return newGenerator(cfg, spec, "")
}

// NewWithEndpoint creates a generator pointing at a custom API endpoint (for
// testing).
func NewWithEndpoint(cfg *config.GeneratorConfig, spec port.SchemaSpec, endpoint string) (*Generator, error) {
	return newGenerator(cfg, spec, endpoint)
}

func newGenerator(cfg *config.GeneratorConfig, spec port.SchemaSpec, endpoint string) (*Generator, error) {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	compiled, err := schema.Compile(spec)
	if err != nil {
		return nil, fmt.Errorf("binding schema %s: %w", spec.Name, err)
	}
	return &Generator{
		apiKey:     cfg.APIKey,
		model:      model,
		endpoint:   endpoint,
		maxRetries: cfg.MaxRetries,
		spec:       spec,
		compiled:   compiled,
		client:     &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

// Generate issues one structured-generation call, retrying rate limits and
// transient upstream failures internally. The returned record is validated
// against the bound schema before it is handed back.
func (g *Generator) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		record, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return record, nil
		}
		lastErr = err

		retryAfter, retryable := retryDelay(err, attempt)
		if !retryable || attempt == g.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryAfter):
		}
	}
	return nil, lastErr
}

// retryDelay classifies err and returns the backoff before the next attempt.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var rle *generator.RateLimitError
	if errors.As(err, &rle) {
		return rle.RetryAfter, true
	}
	var te *transientError
	if errors.As(err, &te) {
		return time.Duration(1<<attempt) * time.Second, true
	}
	return 0, false
}

// transientError marks a retryable upstream failure (5xx or network error).
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func (g *Generator) generateOnce(ctx context.Context, prompt string) (json.RawMessage, error) {
	var schemaDoc json.RawMessage = g.spec.Document

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType":   "application/json",
			"responseJsonSchema": schemaDoc,
			"temperature":        0.0,
			"maxOutputTokens":    16384,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("calling gemini API: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := generator.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, generator.NewRateLimitError("gemini",
			fmt.Errorf("gemini API error (status %d)", resp.StatusCode), retryAfter)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &transientError{
			err: fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200)),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	return g.parseResponse(respBody)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (g *Generator) parseResponse(body []byte) (json.RawMessage, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API: no parts")
	}

	text := resp.Candidates[0].Content.Parts[0].Text

	var record interface{}
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return nil, fmt.Errorf("parsing model JSON output: %w (raw: %s)", err, truncate(text, 200))
	}
	if err := g.compiled.Validate(record); err != nil {
		return nil, fmt.Errorf("response violates schema %s: %w", g.spec.Name, err)
	}

	return json.RawMessage(text), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
