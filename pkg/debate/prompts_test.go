package debate

import (
	"strings"
	"testing"
)

func promptConfig() Config {
	cfg := testConfig(3)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func TestOpeningPrompt_DefaultFraming(t *testing.T) {
	cfg := promptConfig()
	got := openingPrompt(cfg, cfg.persona(SideA), cfg.persona(SideB))

	for _, want := range []string{
		"Start the debate in English.",
		"Your name is Aiko.",
		"You are speaking to Blair.",
		"'Global-first' strategy",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("opening prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "report/context") {
		t.Errorf("no report framing expected without report context:\n%s", got)
	}
}

func TestOpeningPrompt_WithReportAndConstraints(t *testing.T) {
	cfg := promptConfig()
	cfg.ReportContext = "Q3 localization report"
	cfg.AdditionalContext = "budget is frozen"
	got := openingPrompt(cfg, cfg.persona(SideA), cfg.persona(SideB))

	for _, want := range []string{
		`"Q3 localization report"`,
		`"budget is frozen"`,
		"Use the provided report as the basis",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("opening prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Global-first") {
		t.Errorf("default framing must be replaced when a report is given:\n%s", got)
	}
}

func TestRebuttalPrompt(t *testing.T) {
	cfg := promptConfig()
	got := rebuttalPrompt(cfg, cfg.persona(SideB), cfg.persona(SideA))

	for _, want := range []string{
		"Respond to the previous point from Aiko in English.",
		"Your name is Blair.",
		"Address Aiko directly by name.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rebuttal prompt missing %q:\n%s", want, got)
		}
	}
}

func TestTurnSystemInstruction(t *testing.T) {
	cfg := promptConfig()
	got := turnSystemInstruction(cfg, cfg.persona(SideA), cfg.persona(SideB))

	for _, want := range []string{
		"argue for local", // persona's own instruction comes first
		"Always respond in English.",
		"Your name is Aiko.",
		"The person you are debating is Blair.",
		"Keep your response length to: " + defaultResponseLength,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("system instruction missing %q:\n%s", want, got)
		}
	}
	if !strings.HasPrefix(got, "argue for local") {
		t.Errorf("persona instruction must lead the system prompt")
	}
}

func TestConclusionPrompt_Variants(t *testing.T) {
	cfg := promptConfig()
	got := conclusionPrompt(cfg)
	if !strings.Contains(got, "Japan marketing strategy") ||
		!strings.Contains(got, "'Trust as a Currency'") {
		t.Errorf("default conclusion framing wrong:\n%s", got)
	}
	if !strings.Contains(got, "Aiko can present to the Global Leadership") {
		t.Errorf("conclusion must be framed for side A:\n%s", got)
	}

	cfg.ReportContext = "the draft plan"
	cfg.AdditionalContext = "two quarters max"
	got = conclusionPrompt(cfg)
	if !strings.Contains(got, "the provided report") ||
		!strings.Contains(got, "concrete recommendations") ||
		!strings.Contains(got, `"two quarters max"`) {
		t.Errorf("report conclusion framing wrong:\n%s", got)
	}
}

func TestConclusionSystemInstruction(t *testing.T) {
	cfg := promptConfig()
	got := conclusionSystemInstruction(cfg)
	for _, want := range []string{
		"helping Aiko bridge the gap with Blair",
		"persuasive, universal business case",
		"Always respond in English.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("conclusion system missing %q:\n%s", want, got)
		}
	}
}
