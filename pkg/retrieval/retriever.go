package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbaranceanu/book-advisor/pkg/vectorstore"
)

// Passage is one retrieved context fragment. Slices of passages are
// ordered by relevance, most relevant first, and that order is preserved
// all the way into the prompt.
type Passage struct {
	Text   string
	Source string
}

// Retriever finds passages relevant to a free-text query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]Passage, error)
}

// Embedder is the slice of the embeddings client the retriever needs.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// VectorRetriever answers queries with a similarity search over the
// pgvector passage store.
type VectorRetriever struct {
	store    *vectorstore.Store
	embedder Embedder
	logger   *slog.Logger
}

func NewVectorRetriever(store *vectorstore.Store, embedder Embedder) *VectorRetriever {
	return &VectorRetriever{
		store:    store,
		embedder: embedder,
		logger:   slog.Default(),
	}
}

func (r *VectorRetriever) Search(ctx context.Context, query string, k int) ([]Passage, error) {
	queryEmbedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.store.SimilaritySearch(ctx, queryEmbedding, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	passages := make([]Passage, 0, len(results))
	for _, res := range results {
		passages = append(passages, Passage{
			Text:   res.Passage.Text,
			Source: res.Passage.Source,
		})
	}

	r.logger.Debug("Retrieved passages", "query", query, "count", len(passages))
	return passages, nil
}
