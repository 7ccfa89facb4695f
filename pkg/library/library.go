package library

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const titleHeading = "## Title:"

// Library holds the detailed book summaries parsed from the local
// markdown source. Keys are exact titles as written in the document;
// lookups are case-sensitive with no fuzzy matching.
type Library struct {
	summaries map[string]string
	titles    []string
}

// Load reads and parses the summaries document. A missing or unreadable
// file is a startup failure, not a recoverable condition.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summaries file: %w", err)
	}
	return New(ParseSummaries(string(data))), nil
}

// New builds a Library from an already-parsed title -> summary mapping.
func New(summaries map[string]string) *Library {
	titles := make([]string, 0, len(summaries))
	for title := range summaries {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return &Library{summaries: summaries, titles: titles}
}

// ParseSummaries splits a document into "## Title: X" blocks. Each block
// runs until the next heading or end of document. Bodies keep their text
// verbatim except that line breaks are flattened to spaces.
func ParseSummaries(text string) map[string]string {
	summaries := make(map[string]string)

	parts := strings.Split(text, titleHeading)
	for _, part := range parts[1:] {
		title, body, _ := strings.Cut(part, "\n")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		summaries[title] = flatten(body)
	}
	return summaries
}

func flatten(body string) string {
	return strings.ReplaceAll(strings.TrimSpace(body), "\n", " ")
}

// Lookup returns the stored summary for an exact title.
func (l *Library) Lookup(title string) (string, bool) {
	summary, ok := l.summaries[title]
	return summary, ok
}

// LookupMessage resolves a title to its summary, or to the standard
// negative-result message. An unknown title is expected user input, so
// this never fails.
func (l *Library) LookupMessage(title string) string {
	if summary, ok := l.summaries[title]; ok {
		return summary
	}
	return fmt.Sprintf("❌ I couldn't find any summary for the title: %s", title)
}

// Titles returns all known titles in sorted order.
func (l *Library) Titles() []string {
	out := make([]string, len(l.titles))
	copy(out, l.titles)
	return out
}

// Len reports how many summaries were loaded.
func (l *Library) Len() int {
	return len(l.summaries)
}
