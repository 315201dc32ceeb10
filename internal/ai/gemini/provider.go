// Package gemini implements models.SeoProvider against the Gemini
// generateContent HTTP API with structured JSON output.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"autoseo/internal/ai/prompt"
	"autoseo/internal/config"
	"autoseo/pkg/models"
)

// maxErrorBody bounds how much of an error response is carried into the
// error message handed to the classifier.
const maxErrorBody = 4096

// Provider implements models.SeoProvider using Gemini.
type Provider struct {
	cfg    config.GeminiConfig
	client *http.Client
}

func NewProvider(cfg config.GeminiConfig, timeout time.Duration) *Provider {
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *Provider) Name() string { return "gemini" }

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
	ResponseMIMEType string         `json:"response_mime_type"`
	ResponseSchema   *prompt.Schema `json:"response_schema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateBatch makes exactly one generateContent call covering the whole
// batch. Failures are returned raw; classification and retry belong to the
// batch client. Error responses include the body text so quota markers such
// as RESOURCE_EXHAUSTED survive into the message.
func (p *Provider) GenerateBatch(ctx context.Context, products []models.ProductInput) ([]models.SeoOutput, error) {
	text, err := prompt.ForBatch(products)
	if err != nil {
		return nil, err
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   prompt.ResponseSchema(),
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimSuffix(p.cfg.BaseURL, "/"), p.cfg.Model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}

	raw := responseText(genResp)
	if raw == "" {
		return nil, fmt.Errorf("gemini: empty response")
	}

	var out []models.SeoOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parsing generated metadata: %w", err)
	}

	return out, nil
}

func responseText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

var _ models.SeoProvider = (*Provider)(nil)
