// Package llm wraps the hosted Gemini generateContent endpoint. The
// wrapper never returns a Go error: any transport or provider failure is
// reported as an error-description string in place of content, and callers
// must treat whatever comes back as untrusted text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"co2-platform/internal/config"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// Fixed decoding parameters for consequence generation.
const (
	temperature     = 0.7
	maxOutputTokens = 8192
)

// Client issues single-prompt completions against the Gemini API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewClient creates a new generative text client.
func NewClient(cfg config.GeminiConfig, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
		logger:     logger,
		metrics:    metricsCollector,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete sends one prompt and returns the generated text. On any
// failure the returned string describes the error instead of raising it.
func (c *Client) Complete(ctx context.Context, prompt string) string {
	timer := time.Now()
	defer func() {
		c.metrics.LLMRequestDuration.Observe(time.Since(timer).Seconds())
	}()

	text, err := c.complete(ctx, prompt)
	if err != nil {
		c.metrics.LLMErrorsTotal.Inc()
		c.logger.Error(ctx, "[LLM_ERROR] Generative API call failed", logging.Fields{
			"model": c.model,
		}, err)
		return fmt.Sprintf("Error during API call: %v", err)
	}

	return text
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing API key")
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 {
		return "", fmt.Errorf("provider returned no candidates")
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return sb.String(), nil
}
