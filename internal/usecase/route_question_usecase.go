package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"booking-orchestrator/internal/domain"
)

const routeMaxTokens = 10

// RouteQuestionUsecase classifies a validated question into exactly one
// target engine.
type RouteQuestionUsecase interface {
	Execute(ctx context.Context, question string) (domain.Classification, error)
}

type routeQuestionUsecase struct {
	llm     domain.LLMClient
	prompts *PromptBuilder
	log     *slog.Logger
}

// NewRouteQuestionUsecase creates the router.
func NewRouteQuestionUsecase(llm domain.LLMClient, prompts *PromptBuilder, log *slog.Logger) RouteQuestionUsecase {
	return &routeQuestionUsecase{llm: llm, prompts: prompts, log: log}
}

// Execute sends the closed-set routing prompt and parses the first label in
// priority order. An unparseable classification is a routing miss resolved to
// UNSUPPORTED, not an error.
func (u *routeQuestionUsecase) Execute(ctx context.Context, question string) (domain.Classification, error) {
	resp, err := u.llm.Generate(ctx, u.prompts.BuildRoutingPrompt(question), routeMaxTokens)
	if err != nil {
		return domain.ClassificationUnsupported, fmt.Errorf("%w: routing call failed: %v", domain.ErrUpstreamUnavailable, err)
	}

	raw := ""
	if resp != nil {
		raw = resp.Text
	}
	classification, recognized := domain.ParseClassification(raw)
	if !recognized {
		u.log.Warn("routing miss, no label recognized",
			slog.String("response", strings.TrimSpace(raw)))
		return domain.ClassificationUnsupported, nil
	}

	u.log.Debug("question routed", slog.String("classification", string(classification)))
	return classification, nil
}
