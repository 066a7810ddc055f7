package catalog

import "testing"

func TestProviderFor(t *testing.T) {
	tests := []struct {
		id   string
		want Provider
	}{
		{"gemini-3-flash-preview", ProviderGemini},
		{"gemini-3-pro-preview", ProviderGemini},
		{"claude-opus-4-6", ProviderClaudeVertex},
		{"claude-sonnet-4-5@20250929", ProviderClaudeVertex},
		// Fail open: unknown IDs resolve to the direct family.
		{"gemini-4-future", ProviderGemini},
		{"", ProviderGemini},
	}
	for _, tt := range tests {
		if got := ProviderFor(tt.id); got != tt.want {
			t.Errorf("ProviderFor(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestModelsOrderedAndCopied(t *testing.T) {
	ms := Models()
	if len(ms) != 4 {
		t.Fatalf("catalog size = %d, want 4", len(ms))
	}
	if ms[0].ID != Default().ID {
		t.Errorf("first entry %q must be the default", ms[0].ID)
	}

	ms[0].ID = "mutated"
	if Models()[0].ID == "mutated" {
		t.Error("Models must return a copy")
	}
}

func TestLookup(t *testing.T) {
	if m := Lookup("claude-opus-4-6"); m == nil || m.Label != "Claude Opus 4.6" {
		t.Errorf("Lookup known = %+v", m)
	}
	if m := Lookup("nope"); m != nil {
		t.Errorf("Lookup unknown = %+v, want nil", m)
	}
}
