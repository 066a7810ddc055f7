package debate

import (
	"fmt"
	"strings"
	"time"
)

// ExportMarkdown renders the committed transcript and conclusion as a flat
// markdown document: one section per turn, headed by the speaker's display
// name and model, with the conclusion appended after a rule.
func ExportMarkdown(messages []Message, personas map[Persona]PersonaConfig, conclusion string) string {
	var b strings.Builder
	b.WriteString("# AI Debate Export\n\n")

	for _, m := range messages {
		name := string(m.Persona)
		if pc, ok := personas[m.Persona]; ok && pc.Name != "" {
			name = pc.Name
		}
		fmt.Fprintf(&b, "## %s (%s)\n\n%s\n\n", name, m.Model, m.Content)
	}

	if conclusion != "" {
		fmt.Fprintf(&b, "---\n\n## Strategic Conclusion\n\n%s\n", conclusion)
	}

	return b.String()
}

// ExportFileName returns a timestamped default file name for an export.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("debate-%d.md", now.UnixMilli())
}
