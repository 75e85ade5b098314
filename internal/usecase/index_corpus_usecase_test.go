package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"booking-orchestrator/internal/domain"
	"booking-orchestrator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIndexCorpus_IndexesDocument(t *testing.T) {
	body := strings.Repeat("Obsidian Tower is a luxury hotel on the waterfront in Nice, France. ", 3) +
		"\n\n" + strings.Repeat("It offers full board, half board and bed and breakfast meal plans. ", 3)

	writer := new(mockPassageWriter)
	writer.On("DeleteBySource", mock.Anything, "hotel_details.md").Return(nil)
	writer.On("BulkInsert", mock.Anything, mock.MatchedBy(func(passages []domain.IndexedPassage) bool {
		if len(passages) != 2 {
			return false
		}
		for i, p := range passages {
			if p.Source != "hotel_details.md" || p.Ordinal != i || p.Hash == "" {
				return false
			}
		}
		return true
	})).Return(nil)

	encoder := new(mockVectorEncoder)
	encoder.On("Encode", mock.Anything, mock.MatchedBy(func(texts []string) bool {
		return len(texts) == 2
	})).Return([][]float32{{0.1, 0.2}, {0.3, 0.4}}, nil)

	uc := usecase.NewIndexCorpusUsecase(writer, domain.NewChunker(), encoder, testLogger())
	n, err := uc.Index(context.Background(), usecase.CorpusDocument{
		Source: "hotel_details.md",
		Body:   body,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	writer.AssertExpectations(t)
}

func TestIndexCorpus_EmptyBodyWritesNothing(t *testing.T) {
	writer := new(mockPassageWriter)
	encoder := new(mockVectorEncoder)

	uc := usecase.NewIndexCorpusUsecase(writer, domain.NewChunker(), encoder, testLogger())
	n, err := uc.Index(context.Background(), usecase.CorpusDocument{Source: "empty.md", Body: "  "})
	require.NoError(t, err)
	assert.Zero(t, n)
	writer.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything)
}

func TestIndexCorpus_EncoderFailure(t *testing.T) {
	writer := new(mockPassageWriter)
	encoder := new(mockVectorEncoder)
	encoder.On("Encode", mock.Anything, mock.Anything).Return(nil, errors.New("embedder down"))

	uc := usecase.NewIndexCorpusUsecase(writer, domain.NewChunker(), encoder, testLogger())
	_, err := uc.Index(context.Background(), usecase.CorpusDocument{
		Source: "hotel_details.md",
		Body:   strings.Repeat("Imperial Crown sits in central Paris near the Louvre museum. ", 3),
	})
	assert.Error(t, err)
	writer.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything)
}

func TestIndexCorpus_MissingSource(t *testing.T) {
	uc := usecase.NewIndexCorpusUsecase(new(mockPassageWriter), domain.NewChunker(), new(mockVectorEncoder), testLogger())
	_, err := uc.Index(context.Background(), usecase.CorpusDocument{Body: "text"})
	assert.Error(t, err)
}
