package advisor

import (
	"fmt"
	"strings"
)

// BuildFinalText assembles the user-facing answer from a recommendation,
// its detailed summary and the source list. Pure formatting.
func BuildFinalText(titles []string, pitch string, reasons []string, detailedSummary, sources string) string {
	titleLine := "**Recommended Title:** (n/a)"
	if len(titles) > 0 {
		titleLine = fmt.Sprintf("**Recommended Title:** %s", titles[0])
	}

	bullets := "• —"
	if len(reasons) > 0 {
		if len(reasons) > 3 {
			reasons = reasons[:3]
		}
		lines := make([]string, 0, len(reasons))
		for _, r := range reasons {
			lines = append(lines, fmt.Sprintf("• %s", r))
		}
		bullets = strings.Join(lines, "\n")
	}

	alt := ""
	if len(titles) > 1 {
		alt = fmt.Sprintf("\n_Alternative:_ %s", titles[1])
	}

	summaryBlock := "**Detailed summary**\n(n/a)"
	if detailedSummary != "" {
		summaryBlock = fmt.Sprintf("**Detailed summary**\n%s", detailedSummary)
	}

	return fmt.Sprintf("%s — %s\n%s%s\n\n%s\n\n(Sources for recommendation: %s)",
		titleLine, pitch, bullets, alt, summaryBlock, sources)
}
