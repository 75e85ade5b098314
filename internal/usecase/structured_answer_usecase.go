package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"booking-orchestrator/internal/domain"
)

const summaryRowLimit = 20

// MetricParams supplies the capacity inputs the derived hospitality metrics
// need. Zero values disable metric computation.
type MetricParams struct {
	RoomCount    int
	DaysInPeriod int
}

// StructuredAnswerInput drives one structured-path answer.
type StructuredAnswerInput struct {
	Question string
	Metrics  MetricParams
}

// StructuredAnswer keeps the generated query text and the execution result as
// distinct fields: generation can succeed while execution fails independently.
type StructuredAnswer struct {
	Query   string
	Result  *domain.QueryResult
	Summary string
}

// StructuredAnswerUsecase turns a question into an executed query. The two
// sub-steps stay independently invocable so callers can generate without
// executing, or execute an edited query.
type StructuredAnswerUsecase interface {
	GenerateQuery(ctx context.Context, question string) (string, error)
	ExecuteQuery(ctx context.Context, queryText string) (*domain.QueryResult, error)
	Execute(ctx context.Context, input StructuredAnswerInput) (*StructuredAnswer, error)
}

type structuredAnswerUsecase struct {
	dataSource domain.DataSource
	llm        domain.LLMClient
	prompts    *PromptBuilder
	maxTokens  int
	log        *slog.Logger
}

// NewStructuredAnswerUsecase creates the structured query engine.
func NewStructuredAnswerUsecase(
	dataSource domain.DataSource,
	llm domain.LLMClient,
	prompts *PromptBuilder,
	maxTokens int,
	log *slog.Logger,
) StructuredAnswerUsecase {
	return &structuredAnswerUsecase{
		dataSource: dataSource,
		llm:        llm,
		prompts:    prompts,
		maxTokens:  maxTokens,
		log:        log,
	}
}

// GenerateQuery asks the gateway for a query with the data source's schema as
// context. Only markdown code fences are stripped from the output; the query
// text itself is never rewritten.
func (u *structuredAnswerUsecase) GenerateQuery(ctx context.Context, question string) (string, error) {
	schema, err := u.dataSource.DescribeSchema(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: schema introspection failed: %v", domain.ErrGenerationFailed, err)
	}

	resp, err := u.llm.Generate(ctx, u.prompts.BuildQueryPrompt(schema, question), u.maxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	query := stripCodeFences(resp.Text)
	if query == "" {
		return "", fmt.Errorf("%w: model returned no query", domain.ErrGenerationFailed)
	}

	u.log.Debug("query generated", slog.String("query", query))
	return query, nil
}

// ExecuteQuery sends the query text verbatim to the data source. Safety rules
// live in the generation prompt only; nothing is validated or sandboxed here.
// Failures carry the literal query text to support debugging.
func (u *structuredAnswerUsecase) ExecuteQuery(ctx context.Context, queryText string) (*domain.QueryResult, error) {
	result, err := u.dataSource.Execute(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (query: %s)", domain.ErrExecutionFailed, err, queryText)
	}
	return result, nil
}

// Execute runs both sub-steps and formats a human-readable summary, applying
// the derived metrics when the question explicitly asks for them.
func (u *structuredAnswerUsecase) Execute(ctx context.Context, input StructuredAnswerInput) (*StructuredAnswer, error) {
	query, err := u.GenerateQuery(ctx, input.Question)
	if err != nil {
		return nil, err
	}

	result, err := u.ExecuteQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	return &StructuredAnswer{
		Query:   query,
		Result:  result,
		Summary: u.summarize(input, result),
	}, nil
}

func (u *structuredAnswerUsecase) summarize(input StructuredAnswerInput, result *domain.QueryResult) string {
	if metric := deriveMetric(input, result); metric != "" {
		return metric
	}
	if result.Empty() {
		return "The query returned no rows."
	}
	if v, ok := result.Scalar(); ok {
		return fmt.Sprintf("Result: %s", formatNumber(v))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(result.Columns, " | "))
	sb.WriteString("\n")
	for i, row := range result.Rows {
		if i == summaryRowLimit {
			sb.WriteString(fmt.Sprintf("... (%d more rows)\n", len(result.Rows)-summaryRowLimit))
			break
		}
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// deriveMetric applies the named business formulas when the question asks for
// them, the caller supplied capacity parameters, and execution produced a
// scalar. The division happens here, never in the model.
func deriveMetric(input StructuredAnswerInput, result *domain.QueryResult) string {
	m := input.Metrics
	if m.RoomCount <= 0 || m.DaysInPeriod <= 0 {
		return ""
	}
	value, ok := result.Scalar()
	if !ok {
		return ""
	}

	lowered := strings.ToLower(input.Question)
	switch {
	case strings.Contains(lowered, "occupancy"):
		rate := domain.OccupancyRate(value, m.RoomCount, m.DaysInPeriod)
		return fmt.Sprintf("Occupancy Rate: %.2f%% (occupied nights: %s, rooms: %d, days: %d)",
			rate, formatNumber(value), m.RoomCount, m.DaysInPeriod)
	case strings.Contains(lowered, "revpar") || strings.Contains(lowered, "rev par"):
		revpar := domain.RevPAR(value, m.RoomCount, m.DaysInPeriod)
		return fmt.Sprintf("RevPAR: %.2f (total revenue: %s, available rooms: %d)",
			revpar, formatNumber(value), m.RoomCount*m.DaysInPeriod)
	}
	return ""
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// stripCodeFences removes a surrounding markdown code fence (```sql ... ```)
// that chat models commonly wrap queries in.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 && !strings.ContainsAny(trimmed[:idx], " \t;") {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
