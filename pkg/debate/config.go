package debate

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/bitop-dev/debate/pkg/ai/catalog"
)

// Config is one session's settings, read once per Start.
type Config struct {
	// ModelA / ModelB are the model IDs for side A (even turns, opens the
	// debate, owns the conclusion call) and side B.
	ModelA string `yaml:"model_a"`
	ModelB string `yaml:"model_b"`

	// MaxTurns is the total number of turns before the conclusion. Must be
	// at least 1; Validate rejects anything lower rather than clamping.
	MaxTurns int `yaml:"max_turns"`

	// Language is the output language every turn must respond in.
	Language string `yaml:"language"`

	// ResponseLength is the qualitative length bound phrase.
	ResponseLength string `yaml:"response_length"`

	// ReportContext optionally grounds the opening turn and the conclusion
	// in a report under review. Passed verbatim into prompts.
	ReportContext string `yaml:"report_context"`

	// AdditionalContext carries extra constraints, also verbatim.
	AdditionalContext string `yaml:"additional_context"`

	// Personas maps both sides to their configs. Missing sides are filled
	// from the built-in defaults by Validate.
	Personas map[Persona]PersonaConfig `yaml:"personas"`
}

// DefaultConfig returns a ready-to-run config: default personas, first
// catalog model on both sides, three turns, Japanese output.
func DefaultConfig() Config {
	return Config{
		ModelA:         catalog.Default().ID,
		ModelB:         catalog.Default().ID,
		MaxTurns:       defaultMaxTurns,
		Language:       defaultLanguage,
		ResponseLength: defaultResponseLength,
		Personas:       DefaultPersonas(),
	}
}

// Validate fills defaulted fields and rejects configurations the engine
// cannot run.
func (c *Config) Validate() error {
	if c.MaxTurns < 1 {
		return fmt.Errorf("debate: max_turns must be at least 1, got %d", c.MaxTurns)
	}
	if c.ModelA == "" {
		c.ModelA = catalog.Default().ID
	}
	if c.ModelB == "" {
		c.ModelB = catalog.Default().ID
	}
	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if c.ResponseLength == "" {
		c.ResponseLength = defaultResponseLength
	}
	if c.Personas == nil {
		c.Personas = map[Persona]PersonaConfig{}
	}
	for _, side := range []Persona{SideA, SideB} {
		pc, ok := c.Personas[side]
		if !ok {
			c.Personas[side] = DefaultPersona(side)
			continue
		}
		def := DefaultPersona(side)
		if pc.Name == "" {
			pc.Name = def.Name
		}
		if pc.SystemInstruction == "" {
			pc.SystemInstruction = def.SystemInstruction
		}
		c.Personas[side] = pc
	}
	return nil
}

// clone returns a copy whose Personas map is independent of the receiver's,
// so validating or reading the copy never writes through to shared state.
func (c Config) clone() Config {
	out := c
	if c.Personas != nil {
		out.Personas = make(map[Persona]PersonaConfig, len(c.Personas))
		for side, pc := range c.Personas {
			out.Personas[side] = pc
		}
	}
	return out
}

// persona returns the config for one side. Only valid after Validate.
func (c *Config) persona(p Persona) PersonaConfig { return c.Personas[p] }

// modelFor returns the configured model for one side.
func (c *Config) modelFor(p Persona) string {
	if p == SideA {
		return c.ModelA
	}
	return c.ModelB
}

// ---------------------------------------------------------------------------
// File config
// ---------------------------------------------------------------------------

// FileConfig is the YAML structure of the debate config file consumed by the
// CLI. The session section embeds Config; the rest wires transports.
type FileConfig struct {
	Config `yaml:",inline"`

	// GeminiAPIKey can be a literal key or "${ENV_VAR}".
	GeminiAPIKey string `yaml:"gemini_api_key"`

	// RelayURL is the base URL of the relay server.
	RelayURL string `yaml:"relay_url"`

	// RelayToken is the bearer credential forwarded to the relay. Empty
	// means send unauthenticated.
	RelayToken string `yaml:"relay_token"`
}

// LoadFileConfig reads and parses a YAML config file, expanding ${ENV_VAR}
// references before parsing and validating the session settings.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := FileConfig{Config: DefaultConfig()}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
