// Package google implements ai.Provider for the Google Gemini API
// (streamGenerateContent via REST/SSE). No Google SDK dependency — pure
// HTTP + SSE.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bitop-dev/debate/pkg/ai"
	"github.com/bitop-dev/debate/pkg/ai/sse"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// defaultTemperature is the fixed sampling temperature for debate turns when
// the request does not override it.
const defaultTemperature = 0.8

// Provider is the direct Gemini streaming transport.
type Provider struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// New returns a Provider for the given API key. baseURL is optional and
// exists for tests.
func New(apiKey, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (p *Provider) Name() string { return "gemini" }

// ---------------------------------------------------------------------------
// Wire types — Gemini REST API
// ---------------------------------------------------------------------------

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role"`
	Parts []wirePart `json:"parts"`
}

type wireSystemInstruction struct {
	Parts []wirePart `json:"parts"`
}

type wireGenConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type wireRequest struct {
	SystemInstruction *wireSystemInstruction `json:"systemInstruction,omitempty"`
	Contents          []wireContent          `json:"contents"`
	GenerationConfig  wireGenConfig          `json:"generationConfig"`
}

// SSE response chunk. Only the text parts matter here.
type wireChunk struct {
	Candidates []struct {
		Content wireContent `json:"content"`
	} `json:"candidates"`
}

// ---------------------------------------------------------------------------
// Stream
// ---------------------------------------------------------------------------

func (p *Provider) Stream(ctx context.Context, req ai.Request) (<-chan string, func() (string, error)) {
	ch := make(chan string, 16)
	var fullText string
	var finalErr error
	done := make(chan struct{})

	go func() {
		defer close(ch)
		defer close(done)
		fullText, finalErr = p.stream(ctx, req, ch)
	}()

	return ch, func() (string, error) {
		<-done
		return fullText, finalErr
	}
}

func (p *Provider) stream(ctx context.Context, req ai.Request, ch chan<- string) (string, error) {
	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return "", fmt.Errorf("google: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s",
		p.BaseURL, req.Model, p.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("google: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("google: http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("google: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var full strings.Builder
	reader := sse.NewReader(resp.Body)
	for {
		data, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return full.String(), fmt.Errorf("google: sse read: %w", err)
		}
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk wireChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Candidates) == 0 {
			continue
		}

		for _, part := range chunk.Candidates[0].Content.Parts {
			if part.Text == "" {
				continue
			}
			full.WriteString(part.Text)
			select {
			case ch <- part.Text:
			case <-ctx.Done():
				return full.String(), ctx.Err()
			}
		}
	}

	return full.String(), nil
}

// ---------------------------------------------------------------------------
// Request building
// ---------------------------------------------------------------------------

func buildRequest(req ai.Request) wireRequest {
	out := wireRequest{}

	if req.System != "" {
		out.SystemInstruction = &wireSystemInstruction{
			Parts: []wirePart{{Text: req.System}},
		}
	}

	temp := defaultTemperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	out.GenerationConfig.Temperature = &temp

	for _, t := range req.History {
		out.Contents = append(out.Contents, wireContent{
			Role:  string(t.Role), // "user" | "model" — already Gemini vocabulary
			Parts: []wirePart{{Text: t.Content}},
		})
	}
	out.Contents = append(out.Contents, wireContent{
		Role:  "user",
		Parts: []wirePart{{Text: req.Prompt}},
	})

	return out
}
