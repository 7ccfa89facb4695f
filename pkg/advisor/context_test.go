package advisor

import (
	"testing"

	"github.com/vbaranceanu/book-advisor/pkg/retrieval"
)

func TestFormatContext(t *testing.T) {
	passages := []retrieval.Passage{
		{Text: "Dune is an epic\nscience fiction novel.", Source: "/library/dune.md"},
		{Text: "Mistborn blends heists\nand magic.", Source: "/library/mistborn.md"},
	}

	got := FormatContext(passages)
	want := "[/library/dune.md] Dune is an epic science fiction novel.\n\n[/library/mistborn.md] Mistborn blends heists and magic."
	if got != want {
		t.Errorf("FormatContext() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatContextEmpty(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Errorf("FormatContext(nil) = %q, want empty", got)
	}
}

func TestFormatContextUnknownSource(t *testing.T) {
	got := FormatContext([]retrieval.Passage{{Text: "orphan text"}})
	if got != "[unknown] orphan text" {
		t.Errorf("FormatContext() = %q", got)
	}
}

func TestUniqueSources(t *testing.T) {
	tests := []struct {
		name     string
		passages []retrieval.Passage
		topN     int
		expected string
	}{
		{
			name:     "Empty list",
			passages: nil,
			topN:     3,
			expected: "n/a",
		},
		{
			name: "Dedup preserves first-seen order",
			passages: []retrieval.Passage{
				{Source: "/lib/b.md"},
				{Source: "/lib/a.md"},
				{Source: "/other/b.md"},
			},
			topN:     3,
			expected: "b.md, a.md",
		},
		{
			name: "Capped at topN",
			passages: []retrieval.Passage{
				{Source: "a.md"}, {Source: "b.md"}, {Source: "c.md"}, {Source: "d.md"},
			},
			topN:     3,
			expected: "a.md, b.md, c.md",
		},
		{
			name:     "Only sourceless passages",
			passages: []retrieval.Passage{{Text: "no source"}},
			topN:     3,
			expected: "n/a",
		},
		{
			name: "Sourceless passage does not take a display slot",
			passages: []retrieval.Passage{
				{Text: "no source"}, {Source: "a.md"}, {Source: "b.md"}, {Source: "c.md"},
			},
			topN:     3,
			expected: "a.md, b.md, c.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueSources(tt.passages, tt.topN); got != tt.expected {
				t.Errorf("UniqueSources() = %q, want %q", got, tt.expected)
			}
		})
	}
}
