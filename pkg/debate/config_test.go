package debate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitop-dev/debate/pkg/ai/catalog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debate.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.ModelA != catalog.Default().ID || cfg.ModelB != catalog.Default().ID {
		t.Errorf("default models = %q/%q, want catalog default", cfg.ModelA, cfg.ModelB)
	}
	if cfg.MaxTurns != 3 {
		t.Errorf("default MaxTurns = %d, want 3", cfg.MaxTurns)
	}
	if cfg.Personas[SideA].Name == "" || cfg.Personas[SideB].Name == "" {
		t.Errorf("default personas incomplete: %+v", cfg.Personas)
	}
}

func TestValidate_RejectsBadMaxTurns(t *testing.T) {
	for _, n := range []int{0, -5} {
		cfg := DefaultConfig()
		cfg.MaxTurns = n
		if err := cfg.Validate(); err == nil {
			t.Errorf("MaxTurns=%d: want error", n)
		}
	}
}

func TestValidate_FillsMissingPersonaFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Personas = map[Persona]PersonaConfig{
		SideA: {Title: "only a title"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	a := cfg.Personas[SideA]
	if a.Name == "" || a.SystemInstruction == "" {
		t.Errorf("side A not defaulted: %+v", a)
	}
	if a.Title != "only a title" {
		t.Errorf("explicit fields must be kept, got %q", a.Title)
	}
	if _, ok := cfg.Personas[SideB]; !ok {
		t.Errorf("missing side B must be filled from defaults")
	}
}

func TestLoadFileConfig(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "k-123")
	path := writeConfig(t, `
model_a: gemini-3-pro-preview
model_b: claude-opus-4-6
max_turns: 5
language: English
gemini_api_key: ${TEST_GEMINI_KEY}
relay_url: http://localhost:3001
personas:
  SIDE_A:
    name: Nori
`)
	cfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	if cfg.GeminiAPIKey != "k-123" {
		t.Errorf("env expansion failed: %q", cfg.GeminiAPIKey)
	}
	if cfg.MaxTurns != 5 || cfg.ModelA != "gemini-3-pro-preview" {
		t.Errorf("session fields wrong: %+v", cfg.Config)
	}
	if cfg.Personas[SideA].Name != "Nori" {
		t.Errorf("persona override lost: %+v", cfg.Personas[SideA])
	}
	if cfg.Personas[SideA].SystemInstruction == "" {
		t.Errorf("persona defaults must backfill missing fields")
	}
	if cfg.Language != "English" || cfg.ResponseLength == "" {
		t.Errorf("language/length defaults wrong: %+v", cfg.Config)
	}
}

func TestLoadFileConfig_InvalidTurns(t *testing.T) {
	path := writeConfig(t, "max_turns: 0\n")
	if _, err := LoadFileConfig(path); err == nil ||
		!strings.Contains(err.Error(), "max_turns") {
		t.Fatalf("err = %v, want max_turns validation failure", err)
	}
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}
