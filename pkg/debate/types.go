// Package debate implements the turn-taking debate orchestrator: the state
// machine that alternates two personas, streams each turn through the
// generation facade, and synthesizes a closing summary from the transcript.
package debate

import "time"

// ---------------------------------------------------------------------------
// Personas
// ---------------------------------------------------------------------------

// Persona identifies one of the two fixed debate sides. It is a key, not a
// class; all behavior lives in the attached PersonaConfig.
type Persona string

const (
	SideA Persona = "SIDE_A"
	SideB Persona = "SIDE_B"
)

// Other returns the opposing side.
func (p Persona) Other() Persona {
	if p == SideA {
		return SideB
	}
	return SideA
}

// PersonaConfig is the user-editable behavior and presentation of one side.
// Edits while idle take effect on the next Start; the engine reads a copy at
// Start and never looks back.
type PersonaConfig struct {
	Name              string `yaml:"name"`
	Title             string `yaml:"title"`
	Description       string `yaml:"description"`
	SystemInstruction string `yaml:"system_instruction"`

	// Presentation metadata, irrelevant to the turn loop.
	Color  string `yaml:"color"`
	Avatar string `yaml:"avatar"`
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// Message is one committed turn. Immutable after creation; slice order is the
// canonical turn sequence.
type Message struct {
	ID        string
	Persona   Persona
	Content   string
	Model     string
	Timestamp time.Time
}

// StreamingMessage is the single transient "currently growing" turn. At most
// one exists at a time, owned by the engine, cleared the instant its turn
// commits or the debate aborts.
type StreamingMessage struct {
	Persona Persona
	Content string
	Model   string
}

// ---------------------------------------------------------------------------
// Status
// ---------------------------------------------------------------------------

// Status is the debate lifecycle state.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusDebating   Status = "debating"
	StatusConcluding Status = "concluding"
	StatusDone       Status = "done"
)

// ---------------------------------------------------------------------------
// Snapshots and events
// ---------------------------------------------------------------------------

// Snapshot is a read-only copy of the session state for observers.
type Snapshot struct {
	Status    Status
	Messages  []Message
	TurnCount int

	// Streaming is the in-flight turn, nil outside an active turn.
	Streaming *StreamingMessage

	// ConclusionStreaming is the partial synthesis text, nil except while
	// concluding.
	ConclusionStreaming *string

	// Conclusion is set exactly when Status == StatusDone.
	Conclusion *string

	// Error is the message of the failure that abandoned the last session,
	// "" if none.
	Error string
}

// EventType identifies an engine notification.
type EventType string

const (
	// EventStatus — Status changed.
	EventStatus EventType = "status"
	// EventStreamDelta — the in-flight turn grew by Delta.
	EventStreamDelta EventType = "stream_delta"
	// EventMessage — a turn was committed.
	EventMessage EventType = "message"
	// EventConclusionDelta — the synthesis grew by Delta.
	EventConclusionDelta EventType = "conclusion_delta"
	// EventConclusion — the synthesis was committed; the debate is done.
	EventConclusion EventType = "conclusion"
	// EventError — the session was abandoned with an error.
	EventError EventType = "error"
)

// Event carries one engine notification to subscribers.
type Event struct {
	Type   EventType
	Status Status

	// Set for EventMessage.
	Message *Message

	// Set for EventStreamDelta: the fragment and the full streaming state.
	Delta     string
	Streaming *StreamingMessage

	// Set for EventConclusion.
	Conclusion string

	// Set for EventError.
	Err string
}
