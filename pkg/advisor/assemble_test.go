package advisor

import (
	"strings"
	"testing"
)

func TestBuildFinalText(t *testing.T) {
	got := BuildFinalText(
		[]string{"Dune"},
		"A sweeping desert epic.",
		[]string{"r1", "r2"},
		"Paul Atreides on Arrakis.",
		"dune.md",
	)

	if !strings.Contains(got, "**Recommended Title:** Dune — A sweeping desert epic.") {
		t.Errorf("missing title line: %q", got)
	}
	if !strings.Contains(got, "• r1\n• r2") {
		t.Errorf("missing reason bullets: %q", got)
	}
	if strings.Contains(got, "_Alternative:_") {
		t.Errorf("no alternative expected: %q", got)
	}
	if !strings.Contains(got, "**Detailed summary**\nPaul Atreides on Arrakis.") {
		t.Errorf("missing summary block: %q", got)
	}
	if !strings.HasSuffix(got, "(Sources for recommendation: dune.md)") {
		t.Errorf("missing sources suffix: %q", got)
	}
}

func TestBuildFinalTextExactlyOneTitleLine(t *testing.T) {
	got := BuildFinalText([]string{"Dune", "Mistborn"}, "p", nil, "", "n/a")
	if n := strings.Count(got, "**Recommended Title:**"); n != 1 {
		t.Errorf("expected exactly one Recommended Title line, got %d", n)
	}
	if !strings.Contains(got, "_Alternative:_ Mistborn") {
		t.Errorf("expected alternative line: %q", got)
	}
}

func TestBuildFinalTextPlaceholders(t *testing.T) {
	got := BuildFinalText(nil, "", nil, "", "n/a")

	if !strings.Contains(got, "**Recommended Title:** (n/a)") {
		t.Errorf("missing title placeholder: %q", got)
	}
	if !strings.Contains(got, "• —") {
		t.Errorf("missing bullet placeholder: %q", got)
	}
	if !strings.Contains(got, "**Detailed summary**\n(n/a)") {
		t.Errorf("missing summary placeholder: %q", got)
	}
}

func TestBuildFinalTextCapsReasons(t *testing.T) {
	got := BuildFinalText([]string{"Dune"}, "p", []string{"r1", "r2", "r3", "r4", "r5"}, "", "n/a")
	if n := strings.Count(got, "• "); n != 3 {
		t.Errorf("expected 3 bullets, got %d in %q", n, got)
	}
	if strings.Contains(got, "r4") {
		t.Errorf("reason past 3 leaked into output: %q", got)
	}
}
