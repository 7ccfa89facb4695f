package speech

import (
	"strings"
	"testing"
)

func TestFormatForNarration(t *testing.T) {
	input := "**Recommended Title:** Dune — A sweeping epic.\n• r1\n• r2\n\n**Detailed summary**\nPaul on Arrakis.\n\n(Sources for recommendation: dune.md, mistborn.md)"

	got, err := FormatForNarration(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(got, "**") {
		t.Errorf("bold markers survived: %q", got)
	}
	if !strings.Contains(got, "Recommended Title: Dune") {
		t.Errorf("inner text of bold span lost: %q", got)
	}
	if strings.Contains(got, "•") {
		t.Errorf("bullet glyphs survived: %q", got)
	}
	if !strings.Contains(got, "- r1") {
		t.Errorf("bullets should become plain hyphens: %q", got)
	}
	if strings.Contains(got, "Sources") {
		t.Errorf("trailing sources parenthetical survived: %q", got)
	}
}

func TestFormatForNarrationMultilineSources(t *testing.T) {
	input := "Some answer text.\n\n(Sources for recommendation:\ndune.md,\nmistborn.md)"
	got, err := FormatForNarration(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Some answer text." {
		t.Errorf("multi-line sources block not stripped: %q", got)
	}
}

func TestFormatForNarrationKeepsInteriorParens(t *testing.T) {
	input := "A book (really good) worth reading."
	got, err := FormatForNarration(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("interior parenthetical mangled: %q", got)
	}
}

func TestFormatForNarrationEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		if _, err := FormatForNarration(input); err == nil {
			t.Errorf("expected error for input %q", input)
		}
	}
}
