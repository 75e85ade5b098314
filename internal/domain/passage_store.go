package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// IndexedPassage is a corpus chunk plus its embedding, ready for persistence.
type IndexedPassage struct {
	ID        uuid.UUID
	Source    string
	Ordinal   int
	Content   string
	Hash      string
	Embedding pgvector.Vector
	CreatedAt time.Time
}

// PassageWriter persists passages into the index. Used by the out-of-band
// corpus indexer, not by the per-question answer path.
type PassageWriter interface {
	// DeleteBySource removes all passages of a source document before reindexing.
	DeleteBySource(ctx context.Context, source string) error
	BulkInsert(ctx context.Context, passages []IndexedPassage) error
}
