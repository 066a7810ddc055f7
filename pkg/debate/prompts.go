package debate

import (
	"fmt"
	"strings"
)

// Fallback texts substituted when a stream completes with zero fragments.
// Not errors: the transcript stays well-formed.
const (
	fallbackTurnText       = "No response generated."
	fallbackConclusionText = "Failed to generate summary."
)

// openingPrompt frames turn 0. Report context and additional constraints are
// included verbatim when present; without a report the opener falls back to
// the default framing.
func openingPrompt(cfg Config, persona, other PersonaConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Start the debate in %s. Your name is %s. You are speaking to %s.\n",
		cfg.Language, persona.Name, other.Name)
	if cfg.ReportContext != "" {
		fmt.Fprintf(&b, "We are reviewing this report/context: %q.\n", cfg.ReportContext)
	}
	if cfg.AdditionalContext != "" {
		fmt.Fprintf(&b, "Additional constraints/context: %q.\n", cfg.AdditionalContext)
	}
	b.WriteString("Open the discussion. ")
	if cfg.ReportContext != "" {
		b.WriteString("Use the provided report as the basis for the discussion and aim to refine or challenge its assumptions.")
	} else {
		b.WriteString("Explain why the current 'Global-first' strategy is struggling in the Japanese market.")
	}
	return b.String()
}

// rebuttalPrompt frames every turn after the first.
func rebuttalPrompt(cfg Config, persona, other PersonaConfig) string {
	return fmt.Sprintf("Respond to the previous point from %s in %s. Your name is %s.\nAddress %s directly by name. Continue the debate.",
		other.Name, cfg.Language, persona.Name, other.Name)
}

// turnSystemInstruction is the persona's configured instruction plus the
// fixed per-turn directives: output language, self-identification, opponent
// name, and the qualitative length bound.
func turnSystemInstruction(cfg Config, persona, other PersonaConfig) string {
	return fmt.Sprintf(`%s

IMPORTANT:
- Always respond in %s.
- Your name is %s.
- The person you are debating is %s.
- Address them by name.
- Keep your response length to: %s.`,
		persona.SystemInstruction, cfg.Language, persona.Name, other.Name, cfg.ResponseLength)
}

// conclusionPrompt asks for the closing synthesis over the full transcript.
func conclusionPrompt(cfg Config) string {
	a := cfg.persona(SideA)

	subject := "Japan marketing strategy"
	if cfg.ReportContext != "" {
		subject = "the provided report"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the debate above regarding %s, write a final \"Executive Summary\" in %s that %s can present to the Global Leadership.\n",
		subject, cfg.Language, a.Name)
	b.WriteString("The summary must clearly explain WHY simple translation/subtitling fails in Japan in a way that any global executive can understand.\n")
	if cfg.ReportContext != "" {
		b.WriteString("Specifically, provide concrete recommendations on how to improve the initial report/context we discussed.")
	} else {
		b.WriteString("Focus on the concept of 'Trust as a Currency' in the Japanese market.")
	}
	if cfg.AdditionalContext != "" {
		fmt.Fprintf(&b, "\nTake into account these constraints: %q.", cfg.AdditionalContext)
	}
	return b.String()
}

// conclusionSystemInstruction frames the synthesizer as a neutral consultant
// bridging the two sides.
func conclusionSystemInstruction(cfg Config) string {
	return fmt.Sprintf("You are a strategic consultant helping %s bridge the gap with %s. Summarize the core arguments into a persuasive, universal business case. Always respond in %s.",
		cfg.persona(SideA).Name, cfg.persona(SideB).Name, cfg.Language)
}
