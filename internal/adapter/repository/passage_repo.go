package repository

import (
	"context"
	"fmt"

	"booking-orchestrator/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PassageRepo stores and searches indexed corpus passages in Postgres with
// pgvector. It implements both the read side (PassageIndex) and the write
// side (PassageWriter).
type PassageRepo struct {
	pool    *pgxpool.Pool
	encoder domain.VectorEncoder
}

func NewPassageRepo(pool *pgxpool.Pool, encoder domain.VectorEncoder) *PassageRepo {
	return &PassageRepo{pool: pool, encoder: encoder}
}

// Search embeds the query and returns the k nearest passages by cosine
// distance, most similar first.
func (r *PassageRepo) Search(ctx context.Context, query string, k int) ([]domain.Passage, error) {
	embeddings, err := r.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("expected 1 query embedding, got %d", len(embeddings))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, content, source, 1 - (embedding <=> $1) AS score
		FROM hotel_passages
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(embeddings[0]), k)
	if err != nil {
		return nil, fmt.Errorf("passage search failed: %w", err)
	}
	defer rows.Close()

	var passages []domain.Passage
	for rows.Next() {
		var p domain.Passage
		if err := rows.Scan(&p.ID, &p.Content, &p.Source, &p.Score); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("passage iteration failed: %w", err)
	}

	return passages, nil
}

// Count reports the number of indexed passages. It doubles as the index
// reachability probe at startup.
func (r *PassageRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM hotel_passages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count passages: %w", err)
	}
	return count, nil
}

// DeleteBySource removes every passage previously indexed from the source so
// re-indexing a document replaces it instead of duplicating it.
func (r *PassageRepo) DeleteBySource(ctx context.Context, source string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM hotel_passages WHERE source = $1", source)
	if err != nil {
		return fmt.Errorf("failed to delete passages for %s: %w", source, err)
	}
	return nil
}

// BulkInsert copies the passages in a single round trip.
func (r *PassageRepo) BulkInsert(ctx context.Context, passages []domain.IndexedPassage) error {
	if len(passages) == 0 {
		return nil
	}

	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"hotel_passages"},
		[]string{"id", "source", "ordinal", "content", "content_hash", "embedding", "created_at"},
		pgx.CopyFromSlice(len(passages), func(i int) ([]any, error) {
			p := passages[i]
			return []any{p.ID, p.Source, p.Ordinal, p.Content, p.Hash, p.Embedding, p.CreatedAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert passages: %w", err)
	}
	return nil
}

var (
	_ domain.PassageIndex  = (*PassageRepo)(nil)
	_ domain.PassageWriter = (*PassageRepo)(nil)
)
