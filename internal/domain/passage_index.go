package domain

import (
	"context"

	"github.com/google/uuid"
)

// Passage is one retrieved piece of the hotel corpus with its source metadata.
type Passage struct {
	ID      uuid.UUID
	Content string
	Source  string
	Score   float32
}

// PassageIndex is the pre-built similarity index the document path retrieves
// from. Index construction and persistence happen out-of-band (see cmd/indexer).
type PassageIndex interface {
	// Search returns the k most similar passages, most relevant first.
	Search(ctx context.Context, query string, k int) ([]Passage, error)
	// Count reports how many passages the index holds. Used at startup to
	// refuse operating against an empty index.
	Count(ctx context.Context) (int64, error)
}
