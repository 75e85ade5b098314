package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"booking-orchestrator/internal/domain"
	"booking-orchestrator/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hotelPassages() []domain.Passage {
	return []domain.Passage{
		{ID: uuid.New(), Content: "Obsidian Tower, 12 Rue de la Mer, 06000 Nice, France.", Source: "hotel_details.md", Score: 0.93},
		{ID: uuid.New(), Content: "Obsidian Tower offers full board and half board meal plans.", Source: "hotel_details.md", Score: 0.81},
	}
}

func newDocumentUsecase(t *testing.T, index *mockPassageIndex, llm *mockLLMClient) usecase.DocumentAnswerUsecase {
	t.Helper()
	uc, err := usecase.NewDocumentAnswerUsecase(
		context.Background(), index, llm, usecase.NewPromptBuilder(8000, 2000), 5, 768, testLogger())
	require.NoError(t, err)
	return uc
}

func TestNewDocumentAnswerUsecase_EmptyIndexIsFatal(t *testing.T) {
	index := new(mockPassageIndex)
	index.On("Count", mock.Anything).Return(int64(0), nil)

	_, err := usecase.NewDocumentAnswerUsecase(
		context.Background(), index, new(mockLLMClient), usecase.NewPromptBuilder(8000, 2000), 5, 768, testLogger())
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestNewDocumentAnswerUsecase_UnreachableIndexIsFatal(t *testing.T) {
	index := new(mockPassageIndex)
	index.On("Count", mock.Anything).Return(int64(0), errors.New("relation does not exist"))

	_, err := usecase.NewDocumentAnswerUsecase(
		context.Background(), index, new(mockLLMClient), usecase.NewPromptBuilder(8000, 2000), 5, 768, testLogger())
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestDocumentAnswer_Grounded(t *testing.T) {
	index := new(mockPassageIndex)
	index.On("Count", mock.Anything).Return(int64(42), nil)
	index.On("Search", mock.Anything, "What is the full address of Obsidian Tower?", 5).
		Return(hotelPassages(), nil)

	llm := new(mockLLMClient)
	llm.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		// All retrieved passages reach the model in one call.
		return strings.Contains(prompt, "12 Rue de la Mer") && strings.Contains(prompt, "meal plans")
	}), 768).Return(&domain.LLMResponse{
		Text: "Obsidian Tower is located at 12 Rue de la Mer, 06000 Nice, France.",
		Done: true,
	}, nil)

	answer, err := newDocumentUsecase(t, index, llm).Execute(context.Background(), "What is the full address of Obsidian Tower?")
	require.NoError(t, err)
	assert.True(t, answer.Grounded)
	assert.Contains(t, answer.Answer, "12 Rue de la Mer")
	require.Len(t, answer.Citations, 2)
	// Citations keep retrieval rank order, most relevant first.
	assert.GreaterOrEqual(t, answer.Citations[0].Score, answer.Citations[1].Score)
	assert.Contains(t, answer.Markdown(), "**Sources:**")

	llm.AssertNumberOfCalls(t, "Generate", 1)
	index.AssertNumberOfCalls(t, "Search", 1)
}

func TestDocumentAnswer_RefusalPhraseMeansUngrounded(t *testing.T) {
	index := new(mockPassageIndex)
	index.On("Count", mock.Anything).Return(int64(42), nil)
	index.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(hotelPassages(), nil)

	llm := new(mockLLMClient)
	llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.LLMResponse{Text: usecase.RefusalPhrase, Done: true}, nil)

	answer, err := newDocumentUsecase(t, index, llm).Execute(context.Background(), "What is the wifi password?")
	require.NoError(t, err)
	assert.False(t, answer.Grounded)
	assert.Empty(t, answer.Citations)
}

func TestDocumentAnswer_NoPassagesSkipsGateway(t *testing.T) {
	index := new(mockPassageIndex)
	index.On("Count", mock.Anything).Return(int64(42), nil)
	index.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Passage{}, nil)

	llm := new(mockLLMClient)
	answer, err := newDocumentUsecase(t, index, llm).Execute(context.Background(), "Anything")
	require.NoError(t, err)
	assert.False(t, answer.Grounded)
	llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentAnswer_GatewayError(t *testing.T) {
	index := new(mockPassageIndex)
	index.On("Count", mock.Anything).Return(int64(42), nil)
	index.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(hotelPassages(), nil)

	llm := new(mockLLMClient)
	llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("gateway down"))

	_, err := newDocumentUsecase(t, index, llm).Execute(context.Background(), "Anything")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
