// Package relay implements the relay provider family: a client that streams
// Claude completions through a trusted intermediary server, and the
// http.Handler that runs that server.
//
// # Wire format
//
// Request (POST /api/claude/stream, Content-Type: application/json):
//
//	{ "model": "...", "system": "...",
//	  "messages": [{"role": "user"|"assistant", "content": "..."}],
//	  "temperature": 0.8 }
//
// Optional header: Authorization: Bearer <token>.
//
// Response (SSE, Content-Type: text/event-stream), one JSON object per event:
//
//	data: {"text":"Hello"}
//	data: {"error":"quota exceeded"}
//	data: [DONE]
//
// A {"text"} record carries one fragment, an {"error"} record fails the
// stream with that message, and the [DONE] sentinel ends it cleanly.
package relay

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

// DefaultPath is the relay server's single streaming route.
const DefaultPath = "/api/claude/stream"

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type wireMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

type wireRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system"`
	Messages    []wireMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type wireEvent struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// ---------------------------------------------------------------------------
// Client — ai.Provider implementation
// ---------------------------------------------------------------------------

// Client is the ai.Provider that forwards generation calls to a relay server.
type Client struct {
	baseURL string
	path    string
	http    *http.Client
}

// New returns a relay Client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    DefaultPath,
		http:    &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *Client) Name() string { return "claude-vertex" }

func (c *Client) Stream(ctx context.Context, req ai.Request) (<-chan string, func() (string, error)) {
	ch := make(chan string, 16)
	var fullText string
	var finalErr error
	done := make(chan struct{})

	go func() {
		defer close(ch)
		defer close(done)
		fullText, finalErr = c.stream(ctx, req, ch)
	}()

	return ch, func() (string, error) {
		<-done
		return fullText, finalErr
	}
}

func (c *Client) stream(ctx context.Context, req ai.Request, ch chan<- string) (string, error) {
	body, err := json.Marshal(encodeRequest(req))
	if err != nil {
		return "", fmt.Errorf("relay: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+c.path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("relay: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("relay: http: %w", err)
	}
	// The body must be released on every exit path, including consumer
	// abandonment mid-stream.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := resp.Status
		if b, err := io.ReadAll(resp.Body); err == nil && len(bytes.TrimSpace(b)) > 0 {
			detail = strings.TrimSpace(string(b))
		}
		return "", fmt.Errorf("relay: HTTP %d: %s", resp.StatusCode, detail)
	}

	var full strings.Builder
	reader := sse.NewReader(resp.Body)
	for {
		data, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return full.String(), fmt.Errorf("relay: sse read: %w", err)
		}
		if data == "[DONE]" {
			break
		}

		var ev wireEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			// Transport chunking noise, not a protocol error: the record is
			// incomplete or malformed, skip it and keep reading.
			continue
		}
		if ev.Error != "" {
			return full.String(), fmt.Errorf("%s", ev.Error)
		}
		if ev.Text == "" {
			continue
		}

		full.WriteString(ev.Text)
		select {
		case ch <- ev.Text:
		case <-ctx.Done():
			return full.String(), ctx.Err()
		}
	}

	return full.String(), nil
}

// encodeRequest maps the provider-neutral request into the relay's two-role
// vocabulary: the speaker's own turns become "assistant", everything else
// "user", and the new prompt is the trailing user message.
func encodeRequest(req ai.Request) wireRequest {
	msgs := make([]wireMessage, 0, len(req.History)+1)
	for _, t := range req.History {
		role := "user"
		if t.Role == ai.RoleModel {
			role = "assistant"
		}
		msgs = append(msgs, wireMessage{Role: role, Content: t.Content})
	}
	msgs = append(msgs, wireMessage{Role: "user", Content: req.Prompt})

	return wireRequest{
		Model:       req.Model,
		System:      req.System,
		Messages:    msgs,
		Temperature: req.Temperature,
	}
}
