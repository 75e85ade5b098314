package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"booking-orchestrator/internal/domain"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// CorpusDocument is one source document to index: hotel JSON records or
// markdown detail files.
type CorpusDocument struct {
	Source string
	Body   string
}

// IndexCorpusUsecase builds the passage index out-of-band. Reindexing a
// source replaces its previous passages.
type IndexCorpusUsecase interface {
	Index(ctx context.Context, doc CorpusDocument) (int, error)
}

type indexCorpusUsecase struct {
	writer  domain.PassageWriter
	chunker domain.Chunker
	encoder domain.VectorEncoder
	log     *slog.Logger
}

// NewIndexCorpusUsecase creates the corpus indexer.
func NewIndexCorpusUsecase(
	writer domain.PassageWriter,
	chunker domain.Chunker,
	encoder domain.VectorEncoder,
	log *slog.Logger,
) IndexCorpusUsecase {
	return &indexCorpusUsecase{
		writer:  writer,
		chunker: chunker,
		encoder: encoder,
		log:     log,
	}
}

// Index chunks the document, embeds every chunk in one encoder call, and
// replaces the source's passages. Returns the number of passages written.
func (u *indexCorpusUsecase) Index(ctx context.Context, doc CorpusDocument) (int, error) {
	if doc.Source == "" {
		return 0, fmt.Errorf("document source is required")
	}

	chunks, err := u.chunker.Chunk(doc.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to chunk %s: %w", doc.Source, err)
	}
	if len(chunks) == 0 {
		u.log.Warn("document produced no chunks", slog.String("source", doc.Source))
		return 0, nil
	}

	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}
	embeddings, err := u.encoder.Encode(ctx, contents)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", doc.Source, err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch for %s: got %d, want %d",
			doc.Source, len(embeddings), len(chunks))
	}

	now := time.Now()
	passages := make([]domain.IndexedPassage, len(chunks))
	for i, c := range chunks {
		passages[i] = domain.IndexedPassage{
			ID:        uuid.New(),
			Source:    doc.Source,
			Ordinal:   c.Ordinal,
			Content:   c.Content,
			Hash:      c.Hash,
			Embedding: pgvector.NewVector(embeddings[i]),
			CreatedAt: now,
		}
	}

	if err := u.writer.DeleteBySource(ctx, doc.Source); err != nil {
		return 0, fmt.Errorf("failed to clear previous passages of %s: %w", doc.Source, err)
	}
	if err := u.writer.BulkInsert(ctx, passages); err != nil {
		return 0, fmt.Errorf("failed to insert passages of %s: %w", doc.Source, err)
	}

	u.log.Info("document indexed",
		slog.String("source", doc.Source),
		slog.Int("passages", len(passages)),
		slog.String("encoder", u.encoder.Version()))
	return len(passages), nil
}
