package ingest

import "testing"

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain file", "book_summaries.md", "book_summaries"},
		{"nested path", "library/dune_notes.md", "dune_notes"},
		{"no extension", "library/README", "README"},
		{"dotted name", "notes.v2.md", "notes.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documentTitle(tt.path); got != tt.want {
				t.Errorf("documentTitle(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
