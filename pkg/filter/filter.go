package filter

import (
	"strings"
	"unicode"

	"github.com/cloudflare/ahocorasick"
	"github.com/mtibben/confusables"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Filter classifies free text against a fixed denylist of offensive terms.
// Matching is whole-word only: a denylisted term embedded inside a longer
// word never triggers.
type Filter struct {
	matcher *ahocorasick.Matcher
	terms   []string
}

// DefaultDenylist returns the built-in English denylist, with inflected
// forms enumerated so the matcher can stay a plain phrase match.
func DefaultDenylist() []string {
	return []string{
		"fuck", "shit",
		"bitch", "bitches",
		"asshole", "assholes",
		"retard", "retarded",
		"idiot", "idiots",
		"moron", "morons",
		"stupid",
		"slut", "whore",
		"bastard", "bastards",
	}
}

// New builds a filter for the given terms. Terms run through the same
// normalization as query text, so the denylist may contain accents or
// mixed case.
func New(terms []string) *Filter {
	f := &Filter{}
	patterns := make([][]byte, 0, len(terms))
	for _, term := range terms {
		normalized := Normalize(term)
		if normalized == "" {
			continue
		}
		f.terms = append(f.terms, normalized)
		// Surrounding spaces give whole-word semantics: Normalize collapses
		// every non-word run to a single space, and IsInappropriate pads the
		// haystack the same way.
		patterns = append(patterns, []byte(" "+normalized+" "))
	}
	if len(patterns) > 0 {
		f.matcher = ahocorasick.NewMatcher(patterns)
	}
	return f
}

// IsInappropriate reports whether text contains a denylisted term as a
// whole word. Empty or whitespace-only input is always appropriate.
// Safe for concurrent use: Matcher.Match mutates internal counters, so
// the thread-safe variant is required for a shared filter.
func (f *Filter) IsInappropriate(text string) bool {
	if f.matcher == nil || strings.TrimSpace(text) == "" {
		return false
	}
	padded := " " + Normalize(text) + " "
	return len(f.matcher.MatchThreadSafe([]byte(padded))) > 0
}

// Terms returns the normalized denylist, mainly for logging and tests.
func (f *Filter) Terms() []string {
	out := make([]string, len(f.terms))
	copy(out, f.terms)
	return out
}

// Normalize maps text to the canonical form used for matching:
// homoglyphs folded to their skeleton, accents stripped via NFKD,
// case folded, and every run of non-word characters collapsed to a
// single space. A Caser may carry state, so one is built per call.
func Normalize(text string) string {
	skeleton := confusables.Skeleton(text)
	decomposed := norm.NFKD.String(skeleton)
	folded := cases.Fold().String(decomposed)

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from NFKD: drop it
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
