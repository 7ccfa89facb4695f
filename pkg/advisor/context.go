package advisor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vbaranceanu/book-advisor/pkg/retrieval"
)

// FormatContext turns ranked passages into a single prompt-ready block:
// one "[source] text" line per passage, blank-line separated, relevance
// order preserved.
func FormatContext(passages []retrieval.Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		text := strings.ReplaceAll(strings.TrimSpace(p.Text), "\n", " ")
		source := p.Source
		if source == "" {
			source = "unknown"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", source, text))
	}
	return strings.Join(parts, "\n\n")
}

// UniqueSources derives the display source list: basenames, deduplicated
// in first-seen order, at most topN, "n/a" when nothing was retrieved.
// Passages without a source are skipped so they never occupy a display
// slot.
func UniqueSources(passages []retrieval.Passage, topN int) string {
	var uniq []string
	seen := make(map[string]bool)
	for _, p := range passages {
		if p.Source == "" {
			continue
		}
		base := filepath.Base(p.Source)
		if !seen[base] {
			seen[base] = true
			uniq = append(uniq, base)
		}
	}
	if len(uniq) == 0 {
		return "n/a"
	}
	if len(uniq) > topN {
		uniq = uniq[:topN]
	}
	return strings.Join(uniq, ", ")
}
