package usecase_test

import (
	"context"
	"errors"
	"testing"

	"booking-orchestrator/internal/domain"
	"booking-orchestrator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(llm *mockLLMClient) usecase.RouteQuestionUsecase {
	return usecase.NewRouteQuestionUsecase(llm, usecase.NewPromptBuilder(8000, 2000), testLogger())
}

func TestRouteQuestion_Labels(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     domain.Classification
	}{
		{"structured", "STRUCTURED", domain.ClassificationStructured},
		{"document", "document", domain.ClassificationDocument},
		{"unsupported", "This is UNSUPPORTED.", domain.ClassificationUnsupported},
		// Priority tie-break: a response mentioning both labels resolves to
		// STRUCTURED deterministically.
		{"both labels", "Either DOCUMENT or STRUCTURED would work here.", domain.ClassificationStructured},
		{"routing miss", "42", domain.ClassificationUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := new(mockLLMClient)
			llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return(&domain.LLMResponse{Text: tt.response, Done: true}, nil)

			got, err := newRouter(llm).Execute(context.Background(), "some question")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouteQuestion_GatewayError(t *testing.T) {
	llm := new(mockLLMClient)
	llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	_, err := newRouter(llm).Execute(context.Background(), "some question")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
