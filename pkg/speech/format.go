package speech

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	sourcesRe = regexp.MustCompile(`(?s)\(Sources.*?\)$`)
)

// FormatForNarration strips markup the voice should not read out: bold
// markers (inner text kept), bullet glyphs, and the trailing
// "(Sources...)" parenthetical. Empty input is an error, callers must
// not attempt synthesis on empty narration.
func FormatForNarration(finalText string) (string, error) {
	trimmed := strings.TrimSpace(finalText)
	if trimmed == "" {
		return "", fmt.Errorf("empty text for narration")
	}

	text := boldRe.ReplaceAllString(trimmed, "$1")
	text = strings.ReplaceAll(text, "•", "-")
	text = sourcesRe.ReplaceAllString(strings.TrimSpace(text), "")
	return strings.TrimSpace(text), nil
}
