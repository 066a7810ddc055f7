// Package catalog is the static model catalog: every selectable model, its
// display label, and the provider family it belongs to.
//
// The catalog is process-wide configuration, loaded once and never mutated.
// Lookups fail open: an unrecognized model ID resolves to the direct Gemini
// family, so forward-compatible IDs degrade to a provider error on first call
// instead of a hard resolution failure.
package catalog

// Provider identifies one of the two provider families.
type Provider string

const (
	// ProviderGemini is the direct, streaming-native Gemini REST family.
	ProviderGemini Provider = "gemini"

	// ProviderClaudeVertex is the relay family: Claude on Vertex AI reached
	// through the trusted intermediary server.
	ProviderClaudeVertex Provider = "claude-vertex"
)

// ModelOption is one catalog entry.
type ModelOption struct {
	ID       string
	Label    string
	Provider Provider
}

// models is the ordered catalog. Order matters: the first entry is the
// default model offered to new sessions.
var models = []ModelOption{
	{ID: "gemini-3-flash-preview", Label: "Gemini 3 Flash", Provider: ProviderGemini},
	{ID: "gemini-3-pro-preview", Label: "Gemini 3 Pro", Provider: ProviderGemini},
	{ID: "claude-opus-4-6", Label: "Claude Opus 4.6", Provider: ProviderClaudeVertex},
	{ID: "claude-sonnet-4-5@20250929", Label: "Claude Sonnet 4.5", Provider: ProviderClaudeVertex},
}

// Models returns the ordered catalog as a copy.
func Models() []ModelOption {
	out := make([]ModelOption, len(models))
	copy(out, models)
	return out
}

// Default returns the catalog's first entry.
func Default() ModelOption { return models[0] }

// Lookup returns the entry for id, or nil if the model is unknown.
func Lookup(id string) *ModelOption {
	for i := range models {
		if models[i].ID == id {
			m := models[i]
			return &m
		}
	}
	return nil
}

// ProviderFor resolves the provider family for id. Unknown IDs resolve to
// ProviderGemini (fail open, not closed).
func ProviderFor(id string) Provider {
	if m := Lookup(id); m != nil {
		return m.Provider
	}
	return ProviderGemini
}
