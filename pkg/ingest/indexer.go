package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/vbaranceanu/book-advisor/pkg/vectorstore"
)

// Embedder is the slice of the embeddings client the indexer needs.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Indexer populates the passage store from a directory of markdown
// library documents. It runs once at startup, before the interactive
// loop; the store is read-only afterwards.
type Indexer struct {
	Store        *vectorstore.Store
	Embedder     Embedder
	ChunkSize    int
	ChunkOverlap int
	Logger       *slog.Logger
}

func NewIndexer(store *vectorstore.Store, embedder Embedder, chunkSize, chunkOverlap int) *Indexer {
	return &Indexer{
		Store:        store,
		Embedder:     embedder,
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Logger:       slog.Default(),
	}
}

// IndexDirectory indexes every *.md file in dir and returns the number
// of passages stored.
func (ix *Indexer) IndexDirectory(ctx context.Context, dir string) (int, error) {
	pattern := filepath.Join(dir, "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("failed to list library files: %w", err)
	}
	if len(files) == 0 {
		ix.Logger.Warn("No library documents found", "pattern", pattern)
		return 0, nil
	}

	total := 0
	for _, path := range files {
		n, err := ix.IndexFile(ctx, path)
		if err != nil {
			return total, fmt.Errorf("failed to index %s: %w", path, err)
		}
		total += n
	}

	ix.Logger.Info("Library indexed", "files", len(files), "passages", total)
	return total, nil
}

// IndexFile splits one document into chunks, embeds them and stores the
// resulting passages.
func (ix *Indexer) IndexFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read document: %w", err)
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(ix.ChunkSize),
		textsplitter.WithChunkOverlap(ix.ChunkOverlap),
	)
	chunks, err := splitter.SplitText(string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to split document: %w", err)
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	vectors, err := ix.Embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	title := documentTitle(path)
	passages := make([]vectorstore.Passage, len(chunks))
	for i, chunk := range chunks {
		passages[i] = vectorstore.Passage{
			ID:        uuid.NewString(),
			Text:      chunk,
			Source:    path,
			Title:     title,
			Embedding: vectors[i],
		}
	}

	if err := ix.Store.AddPassages(ctx, passages); err != nil {
		return 0, fmt.Errorf("failed to store passages: %w", err)
	}

	ix.Logger.Debug("Indexed document", "path", path, "chunks", len(chunks))
	return len(passages), nil
}

func documentTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
