// Package claude implements ai.Provider on the official Anthropic SDK. It is
// the backend the relay server fronts: the relay handler decodes the wire
// request and this provider streams the actual completion.
package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bitop-dev/debate/pkg/ai"
)

// maxTokens caps every completion. Required by the Anthropic API; 4096 is
// plenty for a single debate turn.
const maxTokens = 4096

const defaultTemperature = 0.8

// Provider streams Claude completions via the Anthropic Messages API.
type Provider struct {
	client anthropic.Client
}

// New returns a Provider. baseURL is optional and overrides the API endpoint
// (gateways, tests).
func New(apiKey, baseURL string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("claude: API key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Provider{client: anthropic.NewClient(opts...)}, nil
}

func (p *Provider) Name() string { return "claude" }

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
	temp := defaultTemperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   maxTokens,
		Messages:    convertMessages(req),
		Temperature: anthropic.Float(temp),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	var full strings.Builder
	stream := p.client.Messages.NewStreaming(ctx, params)
	for stream.Next() {
		event := stream.Current()
		delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		text, ok := delta.Delta.AsAny().(anthropic.TextDelta)
		if !ok || text.Text == "" {
			continue
		}
		full.WriteString(text.Text)
		select {
		case ch <- text.Text:
		case <-ctx.Done():
			return full.String(), ctx.Err()
		}
	}
	if err := stream.Err(); err != nil {
		return full.String(), fmt.Errorf("claude: streaming: %w", err)
	}

	return full.String(), nil
}

// convertMessages maps history plus the trailing prompt into Anthropic's
// user/assistant message params.
func convertMessages(req ai.Request) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(req.History)+1)
	for _, t := range req.History {
		block := anthropic.NewTextBlock(t.Content)
		if t.Role == ai.RoleModel {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)))
	return out
}
