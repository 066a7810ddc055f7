package debate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitop-dev/debate/pkg/ai"
	"github.com/bitop-dev/debate/pkg/auth"
)

// Streamer is the slice of the generation facade the engine depends on.
// *ai.Generator satisfies it; tests substitute scripted fakes.
type Streamer interface {
	Stream(ctx context.Context, req ai.Request) (<-chan string, func() (string, error))
}

// Options configures a new Engine.
type Options struct {
	// Generator dispatches streaming calls. Required.
	Generator Streamer

	// Tokens supplies the relay bearer credential. Optional; nil sends
	// unauthenticated.
	Tokens auth.TokenSource

	// Logger receives engine lifecycle logs. Optional; nil discards.
	Logger *slog.Logger
}

// Engine owns one debate session at a time: the turn loop, the transient
// streaming buffer, and the committed transcript. All state is written only
// by the sequential run loop; observers read snapshots or subscribe to
// events.
type Engine struct {
	gen    Streamer
	tokens auth.TokenSource
	log    *slog.Logger

	// runMu serializes debate runs: a superseding Start cancels the prior
	// session and then waits here for it to unwind.
	runMu sync.Mutex

	mu     sync.RWMutex
	cfg    Config
	active *session // current Start's handle, nil when none

	messages            []Message
	streaming           *StreamingMessage
	conclusion          *string
	conclusionStreaming *string
	status              Status
	turnCount           int
	errMsg              string

	listenerMu  sync.RWMutex
	listeners   map[int]func(Event)
	listenerSeq int
}

// session is one Start invocation's cancellation handle. Pointer identity
// lets a finished run tell whether it is still the active session before
// clearing the handle.
type session struct {
	cancel context.CancelFunc
}

// New returns an Engine over cfg. The config is not validated until Start.
func New(cfg Config, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		gen:       opts.Generator,
		tokens:    opts.Tokens,
		log:       log,
		cfg:       cfg,
		status:    StatusIdle,
		listeners: map[int]func(Event){},
	}
}

// SetConfig replaces the session config. Takes effect on the next Start; an
// in-progress debate keeps the config it started with.
func (e *Engine) SetConfig(cfg Config) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

// ResetPersona restores one side's config to the built-in default.
func (e *Engine) ResetPersona(p Persona) {
	e.mu.Lock()
	if e.cfg.Personas == nil {
		e.cfg.Personas = map[Persona]PersonaConfig{}
	}
	e.cfg.Personas[p] = DefaultPersona(p)
	e.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Observation
// ---------------------------------------------------------------------------

// Subscribe registers a listener for engine events and returns an
// unsubscribe function. Listeners are called from the run loop; keep them
// fast.
func (e *Engine) Subscribe(fn func(Event)) func() {
	e.listenerMu.Lock()
	id := e.listenerSeq
	e.listenerSeq++
	e.listeners[id] = fn
	e.listenerMu.Unlock()

	return func() {
		e.listenerMu.Lock()
		delete(e.listeners, id)
		e.listenerMu.Unlock()
	}
}

func (e *Engine) broadcast(ev Event) {
	e.listenerMu.RLock()
	fns := make([]func(Event), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.listenerMu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// State returns a read-only snapshot of the session.
func (e *Engine) State() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := Snapshot{
		Status:    e.status,
		Messages:  append([]Message(nil), e.messages...),
		TurnCount: e.turnCount,
		Error:     e.errMsg,
	}
	if e.streaming != nil {
		s := *e.streaming
		snap.Streaming = &s
	}
	if e.conclusionStreaming != nil {
		s := *e.conclusionStreaming
		snap.ConclusionStreaming = &s
	}
	if e.conclusion != nil {
		s := *e.conclusion
		snap.Conclusion = &s
	}
	return snap
}

// ---------------------------------------------------------------------------
// Controls
// ---------------------------------------------------------------------------

// Stop cancels the in-flight session, if any. The loop observes the signal
// at its next suspension point, clears transient buffers, and stops without
// committing the interrupted turn. Committed messages stay.
func (e *Engine) Stop() {
	e.mu.Lock()
	sess := e.active
	e.mu.Unlock()
	if sess != nil {
		sess.cancel()
	}
}

// Reset clears all session state back to idle. Does not touch the config.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()
	e.broadcast(Event{Type: EventStatus, Status: StatusIdle})
}

func (e *Engine) resetLocked() {
	e.messages = nil
	e.streaming = nil
	e.conclusion = nil
	e.conclusionStreaming = nil
	e.status = StatusIdle
	e.turnCount = 0
	e.errMsg = ""
}

// Start runs one full debate to completion and blocks until it finishes,
// fails, or is cancelled. Any prior in-flight session is cancelled and
// superseded first, so at most one session is ever active.
//
// Cancellation is not an error: Start returns nil and leaves the committed
// transcript intact. Any other failure abandons the session — the error
// message is recorded, status returns to idle, and the error is returned.
func (e *Engine) Start(ctx context.Context) error {
	// Validate an independent copy: the engine's stored config (and the
	// caller's map behind it) must never be written by a run.
	e.mu.Lock()
	cfg := e.cfg.clone()
	e.mu.Unlock()

	if err := cfg.Validate(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	sess := &session{cancel: cancel}

	// Install the handle before blocking, then cancel the prior session:
	// two Starts racing at entry each see the other's handle, never nil,
	// so exactly one survives.
	e.mu.Lock()
	prior := e.active
	e.active = sess
	e.mu.Unlock()
	if prior != nil {
		prior.cancel()
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	// Superseded while queued: a later Start replaced the handle and
	// cancelled this one before it could begin. Its state stands.
	if runCtx.Err() != nil {
		return nil
	}

	e.mu.Lock()
	e.resetLocked()
	e.status = StatusDebating
	e.mu.Unlock()
	e.broadcast(Event{Type: EventStatus, Status: StatusDebating})

	err := e.run(runCtx, cfg)

	e.mu.Lock()
	if e.active == sess {
		e.active = nil
	}
	e.streaming = nil
	e.conclusionStreaming = nil
	e.mu.Unlock()

	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		// Cooperative abort: committed turns stay, transients are already
		// cleared, status is left where the loop stopped.
		e.log.Debug("debate cancelled")
		return nil
	default:
		e.log.Error("debate abandoned", "err", err)
		e.mu.Lock()
		e.errMsg = err.Error()
		e.status = StatusIdle
		e.mu.Unlock()
		e.broadcast(Event{Type: EventError, Status: StatusIdle, Err: err.Error()})
		return err
	}
}

// ---------------------------------------------------------------------------
// The run loop
// ---------------------------------------------------------------------------

func (e *Engine) run(ctx context.Context, cfg Config) error {
	for i := 0; i < cfg.MaxTurns; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runTurn(ctx, cfg, i); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return e.runConclusion(ctx, cfg)
}

// runTurn executes one persona's turn: build prompt and history, stream the
// response into the transient buffer, commit on completion.
func (e *Engine) runTurn(ctx context.Context, cfg Config, i int) error {
	side := SideA
	if i%2 == 1 {
		side = SideB
	}
	persona := cfg.persona(side)
	other := cfg.persona(side.Other())
	model := cfg.modelFor(side)

	var prompt string
	if i == 0 {
		prompt = openingPrompt(cfg, persona, other)
	} else {
		prompt = rebuttalPrompt(cfg, persona, other)
	}

	req := ai.Request{
		Model:   model,
		System:  turnSystemInstruction(cfg, persona, other),
		History: e.historyFor(side, cfg),
		Prompt:  prompt,
		Token:   e.token(),
	}

	e.log.Debug("turn start", "turn", i, "side", string(side), "model", model)

	// Publish the empty placeholder before the network call so observers see
	// a pending turn without waiting for the first byte.
	publish := func(content string, delta string) {
		sm := &StreamingMessage{Persona: side, Content: content, Model: model}
		e.mu.Lock()
		e.streaming = sm
		e.mu.Unlock()
		e.broadcast(Event{Type: EventStreamDelta, Status: StatusDebating, Delta: delta, Streaming: sm})
	}
	publish("", "")

	full, err := e.consume(ctx, req, publish)
	if cErr := ctx.Err(); cErr != nil {
		e.clearStreaming()
		return cErr
	}
	if err != nil {
		e.clearStreaming()
		return err
	}

	content := full
	if content == "" {
		content = fallbackTurnText
	}
	msg := Message{
		ID:        uuid.NewString(),
		Persona:   side,
		Content:   content,
		Model:     model,
		Timestamp: time.Now(),
	}

	e.mu.Lock()
	e.streaming = nil
	e.messages = append(e.messages, msg)
	e.turnCount = i + 1
	e.mu.Unlock()
	e.broadcast(Event{Type: EventMessage, Status: StatusDebating, Message: &msg})

	return nil
}

// runConclusion issues the single synthesis call over the full transcript,
// always on side A's model.
func (e *Engine) runConclusion(ctx context.Context, cfg Config) error {
	e.setStatus(StatusConcluding)

	req := ai.Request{
		Model:   cfg.ModelA,
		System:  conclusionSystemInstruction(cfg),
		History: e.flattenedHistory(cfg),
		Prompt:  conclusionPrompt(cfg),
		Token:   e.token(),
	}

	e.log.Debug("concluding", "model", cfg.ModelA)

	publish := func(content string, delta string) {
		e.mu.Lock()
		e.conclusionStreaming = &content
		e.mu.Unlock()
		e.broadcast(Event{Type: EventConclusionDelta, Status: StatusConcluding, Delta: delta})
	}
	publish("", "")

	full, err := e.consume(ctx, req, publish)
	if cErr := ctx.Err(); cErr != nil {
		return cErr
	}
	if err != nil {
		return err
	}

	text := full
	if text == "" {
		text = fallbackConclusionText
	}

	e.mu.Lock()
	e.conclusionStreaming = nil
	e.conclusion = &text
	e.status = StatusDone
	e.mu.Unlock()
	e.broadcast(Event{Type: EventConclusion, Status: StatusDone, Conclusion: text})

	return nil
}

// consume drains one streaming call, publishing the growing text after every
// fragment. Returns the full text and the stream's terminal error.
func (e *Engine) consume(ctx context.Context, req ai.Request, publish func(content, delta string)) (string, error) {
	ch, wait := e.gen.Stream(ctx, req)

	var content string
	for frag := range ch {
		if ctx.Err() != nil {
			break
		}
		content += frag
		publish(content, frag)
	}
	// Drain so a cancelled producer can close the channel.
	for range ch {
	}

	return wait()
}

// historyFor maps the committed transcript into provider turns relative to
// the current speaker: own prior turns are RoleModel, the opponent's are
// RoleUser, and every entry is prefixed with the speaker's display name.
func (e *Engine) historyFor(current Persona, cfg Config) []ai.Turn {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]ai.Turn, 0, len(e.messages))
	for _, m := range e.messages {
		role := ai.RoleUser
		if m.Persona == current {
			role = ai.RoleModel
		}
		out = append(out, ai.Turn{
			Role:    role,
			Content: fmt.Sprintf("%s: %s", cfg.persona(m.Persona).Name, m.Content),
		})
	}
	return out
}

// flattenedHistory tags every committed turn as RoleUser for the conclusion
// call, which has no two-party role distinction.
func (e *Engine) flattenedHistory(cfg Config) []ai.Turn {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]ai.Turn, 0, len(e.messages))
	for _, m := range e.messages {
		out = append(out, ai.Turn{
			Role:    ai.RoleUser,
			Content: fmt.Sprintf("%s: %s", cfg.persona(m.Persona).Name, m.Content),
		})
	}
	return out
}

func (e *Engine) token() string {
	if e.tokens == nil {
		return ""
	}
	return e.tokens.Token()
}

func (e *Engine) clearStreaming() {
	e.mu.Lock()
	e.streaming = nil
	e.mu.Unlock()
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
	e.broadcast(Event{Type: EventStatus, Status: s})
}
