package vectorstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Passage is one indexed chunk of a library document.
type Passage struct {
	ID        string
	Text      string
	Source    string
	Title     string
	Embedding []float32
}

// SearchResult pairs a passage with its cosine similarity to the query.
type SearchResult struct {
	Passage    Passage
	Similarity float64
}

// Store handles pgvector operations for one passage collection.
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// isValidTableName validates that a collection name contains only safe
// characters to prevent SQL injection through the table identifier.
func isValidTableName(name string) bool {
	// Letters, digits and underscores, starting with a letter or
	// underscore, within the 63-char PostgreSQL identifier limit.
	matched, _ := regexp.MatchString(`^[a-z_][a-zA-Z0-9_]{0,62}$`, name)
	return matched
}

// NewStore creates a passage store over the named collection table.
func NewStore(pool *pgxpool.Pool, tableName string) (*Store, error) {
	if !isValidTableName(tableName) {
		return nil, fmt.Errorf("invalid collection name %q: must contain only alphanumeric characters and underscores, start with a letter or underscore, and be 1-63 characters long", tableName)
	}
	return &Store{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// AddPassages inserts passages with their embeddings in one batch.
// Passages without an ID get one assigned.
func (s *Store) AddPassages(ctx context.Context, passages []Passage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, source, title, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`, pgx.Identifier{s.tableName}.Sanitize())

	batch := &pgx.Batch{}
	for _, p := range passages {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch.Queue(query, id, p.Text, p.Source, p.Title, pgvector.NewVector(p.Embedding))
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range passages {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert passage: %w", err)
		}
	}

	return nil
}

// SimilaritySearch returns the topK passages closest to the query
// embedding, most similar first.
func (s *Store) SimilaritySearch(ctx context.Context, queryEmbedding []float32, topK int) ([]SearchResult, error) {
	query := fmt.Sprintf(`
		SELECT id, content, source, title, 1 - (embedding <=> $1) as similarity
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgx.Identifier{s.tableName}.Sanitize())

	rows, err := s.pool.Query(ctx, query, pgvector.NewVector(queryEmbedding), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to execute similarity search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var p Passage
		var title *string
		var similarity float64

		if err := rows.Scan(&p.ID, &p.Text, &p.Source, &title, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if title != nil {
			p.Title = *title
		}

		results = append(results, SearchResult{Passage: p, Similarity: similarity})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

// CountPassages reports how many passages the collection holds.
func (s *Store) CountPassages(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pgx.Identifier{s.tableName}.Sanitize())

	var count int64
	if err := s.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count passages: %w", err)
	}
	return count, nil
}
