package relay

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bitop-dev/debate/pkg/ai"
)

// Handler is the server side of the relay: an http.Handler that decodes the
// relay wire format, streams the completion from a backend ai.Provider, and
// re-frames it as {"text"} deltas.
//
// If authToken is non-empty, every request must carry
// "Authorization: Bearer <authToken>".
type Handler struct {
	provider ai.Provider
	token    string
	log      *slog.Logger
}

// NewHandler wraps provider in the relay wire protocol.
func NewHandler(provider ai.Provider, authToken string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{provider: provider, token: authToken, log: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.token != "" {
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if bearer != h.token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	if r.URL.Path != DefaultPath || r.Method != http.MethodPost {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	var req wireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	flusher, canFlush := w.(http.Flusher)

	writeEvent := func(ev wireEvent) {
		data, _ := json.Marshal(ev)
		fmt.Fprintf(w, "data: %s\n\n", data)
		if canFlush {
			flusher.Flush()
		}
	}

	ch, wait := h.provider.Stream(r.Context(), decodeRequest(req))
	for frag := range ch {
		writeEvent(wireEvent{Text: frag})
	}

	if _, err := wait(); err != nil {
		h.log.Error("relay stream failed", "model", req.Model, "err", err)
		writeEvent(wireEvent{Error: err.Error()})
		return
	}

	fmt.Fprintf(w, "data: [DONE]\n\n")
	if canFlush {
		flusher.Flush()
	}
}

// decodeRequest is the inverse of encodeRequest: the trailing user message is
// the prompt, everything before it is history ("assistant" → RoleModel).
func decodeRequest(req wireRequest) ai.Request {
	out := ai.Request{
		Model:       req.Model,
		System:      req.System,
		Temperature: req.Temperature,
	}

	msgs := req.Messages
	if n := len(msgs); n > 0 && msgs[n-1].Role == "user" {
		out.Prompt = msgs[n-1].Content
		msgs = msgs[:n-1]
	}
	for _, m := range msgs {
		role := ai.RoleUser
		if m.Role == "assistant" {
			role = ai.RoleModel
		}
		out.History = append(out.History, ai.Turn{Role: role, Content: m.Content})
	}

	return out
}
