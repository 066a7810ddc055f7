// Package auth is the boundary to the identity collaborator. The engine only
// needs two things from it: an optional bearer credential to forward to the
// relay, and whether the current identity passed the allow list. How the
// token is minted (identity-provider sign-in, allow-list lookup) lives
// outside this module.
package auth

import "os"

// TokenSource supplies the relay credential for the current identity.
type TokenSource interface {
	// Token returns the bearer credential, or "" to send unauthenticated.
	// The relay may then reject with a non-success status, surfaced as a
	// generation failure.
	Token() string

	// Authorized reports whether the current identity is on the allow list.
	Authorized() bool
}

// Static is a fixed-token source. An empty token is a valid "unauthenticated"
// source with Authorized() == false.
type Static struct {
	token string
}

// NewStatic returns a Static source for token.
func NewStatic(token string) *Static { return &Static{token: token} }

func (s *Static) Token() string    { return s.token }
func (s *Static) Authorized() bool { return s.token != "" }

// Env reads the token from an environment variable on every call, so rotated
// credentials are picked up without a restart.
type Env struct {
	key string
}

// FromEnv returns an Env source reading the named variable.
func FromEnv(key string) *Env { return &Env{key: key} }

func (e *Env) Token() string    { return os.Getenv(e.key) }
func (e *Env) Authorized() bool { return e.Token() != "" }
