package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"booking-orchestrator/internal/domain"
	"booking-orchestrator/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) Generate(ctx context.Context, prompt string, maxTokens int) (*domain.LLMResponse, error) {
	args := m.Called(ctx, prompt, maxTokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMResponse), args.Error(1)
}

func (m *mockLLMClient) Version() string {
	return "mock"
}

type mockDataSource struct {
	mock.Mock
}

func (m *mockDataSource) DescribeSchema(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockDataSource) Execute(ctx context.Context, query string) (*domain.QueryResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueryResult), args.Error(1)
}

type mockPassageIndex struct {
	mock.Mock
}

func (m *mockPassageIndex) Search(ctx context.Context, query string, k int) ([]domain.Passage, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passage), args.Error(1)
}

func (m *mockPassageIndex) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockPassageWriter struct {
	mock.Mock
}

func (m *mockPassageWriter) DeleteBySource(ctx context.Context, source string) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *mockPassageWriter) BulkInsert(ctx context.Context, passages []domain.IndexedPassage) error {
	args := m.Called(ctx, passages)
	return args.Error(0)
}

type mockVectorEncoder struct {
	mock.Mock
}

func (m *mockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *mockVectorEncoder) Version() string {
	return "mock-encoder"
}

type mockValidateUsecase struct {
	mock.Mock
}

func (m *mockValidateUsecase) Execute(ctx context.Context, question string) (domain.Verdict, error) {
	args := m.Called(ctx, question)
	return args.Get(0).(domain.Verdict), args.Error(1)
}

type mockRouteUsecase struct {
	mock.Mock
}

func (m *mockRouteUsecase) Execute(ctx context.Context, question string) (domain.Classification, error) {
	args := m.Called(ctx, question)
	return args.Get(0).(domain.Classification), args.Error(1)
}

type mockStructuredUsecase struct {
	mock.Mock
}

func (m *mockStructuredUsecase) GenerateQuery(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *mockStructuredUsecase) ExecuteQuery(ctx context.Context, queryText string) (*domain.QueryResult, error) {
	args := m.Called(ctx, queryText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueryResult), args.Error(1)
}

func (m *mockStructuredUsecase) Execute(ctx context.Context, input usecase.StructuredAnswerInput) (*usecase.StructuredAnswer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StructuredAnswer), args.Error(1)
}

type mockDocumentUsecase struct {
	mock.Mock
}

func (m *mockDocumentUsecase) Execute(ctx context.Context, question string) (*usecase.DocumentAnswer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DocumentAnswer), args.Error(1)
}
