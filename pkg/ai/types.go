// Package ai defines the streaming generation contract shared by every
// transport: conversation turns, the request shape, and the Provider
// interface. The debate engine only ever talks to this package.
package ai

import "context"

// ---------------------------------------------------------------------------
// Roles and turns
// ---------------------------------------------------------------------------

// Role tags a history entry relative to the current speaker. A debate between
// two personas is expressed through a single-perspective chat scheme: the
// speaker's own prior turns are RoleModel, everything else is RoleUser.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior conversation entry handed to a provider.
type Turn struct {
	Role    Role
	Content string
}

// ---------------------------------------------------------------------------
// Request
// ---------------------------------------------------------------------------

// Request holds everything a single streaming generation call needs.
type Request struct {
	// Model is the provider-specific model ID.
	Model string

	// System is the system instruction for this call.
	System string

	// History is the prior conversation, ordered, role-tagged relative to
	// the current speaker.
	History []Turn

	// Prompt is the new user prompt appended after History.
	Prompt string

	// Temperature overrides the sampling temperature (nil = adapter default).
	Temperature *float64

	// Token is an optional bearer credential. Transports that do not need it
	// ignore it; the relay sends it as an Authorization header when set.
	Token string
}

// ---------------------------------------------------------------------------
// Provider
// ---------------------------------------------------------------------------

// Provider streams a model response as incremental text fragments.
//
// The fragment channel is closed when the stream ends for any reason; wait
// blocks until then and returns the full concatenated text or the error that
// ended the stream. Fragments already received before an error are not
// retracted. Implementations must close the channel (and not panic) even when
// ctx is cancelled, so callers can always range over it safely.
type Provider interface {
	// Name returns the provider family identifier, e.g. "gemini".
	Name() string

	// Stream starts one streaming generation call.
	Stream(ctx context.Context, req Request) (<-chan string, func() (string, error))
}
