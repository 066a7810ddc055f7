package ai

import (
	"context"

	"github.com/bitop-dev/debate/pkg/ai/catalog"
)

// Generator is the single entry point the debate engine calls. It resolves
// the provider family for the requested model and dispatches to the matching
// transport, passing the fragment stream through unmodified.
//
// Adding a provider family means adding one Provider and one catalog tag;
// the engine never changes.
type Generator struct {
	direct Provider // catalog.ProviderGemini
	relay  Provider // catalog.ProviderClaudeVertex
}

// NewGenerator returns a Generator over the two transports.
func NewGenerator(direct, relay Provider) *Generator {
	return &Generator{direct: direct, relay: relay}
}

// Stream dispatches req to the adapter for its model's provider family.
func (g *Generator) Stream(ctx context.Context, req Request) (<-chan string, func() (string, error)) {
	switch catalog.ProviderFor(req.Model) {
	case catalog.ProviderClaudeVertex:
		return g.relay.Stream(ctx, req)
	default:
		return g.direct.Stream(ctx, req)
	}
}
