package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"booking-orchestrator/internal/domain"
)

const verdictMaxTokens = 10

// ValidateQuestionUsecase decides whether a question is answerable by the
// system at all, before any routing happens.
type ValidateQuestionUsecase interface {
	Execute(ctx context.Context, question string) (domain.Verdict, error)
}

type validateQuestionUsecase struct {
	llm     domain.LLMClient
	prompts *PromptBuilder
	log     *slog.Logger
}

// NewValidateQuestionUsecase creates the domain validator.
func NewValidateQuestionUsecase(llm domain.LLMClient, prompts *PromptBuilder, log *slog.Logger) ValidateQuestionUsecase {
	return &validateQuestionUsecase{llm: llm, prompts: prompts, log: log}
}

// Execute fails fast on empty input, then asks the gateway for a closed-set
// verdict. Unparseable output fails closed to Invalid; a gateway failure is
// surfaced as ErrUpstreamUnavailable, never as a silent rejection.
func (u *validateQuestionUsecase) Execute(ctx context.Context, question string) (domain.Verdict, error) {
	if strings.TrimSpace(question) == "" {
		return domain.VerdictInvalid, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	resp, err := u.llm.Generate(ctx, u.prompts.BuildValidationPrompt(question), verdictMaxTokens)
	if err != nil {
		return domain.VerdictInvalid, fmt.Errorf("%w: validation call failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return domain.VerdictInvalid, fmt.Errorf("%w: empty validation response", domain.ErrUpstreamUnavailable)
	}

	verdict := domain.ParseVerdict(resp.Text)
	u.log.Debug("question validated",
		slog.String("verdict", string(verdict)),
		slog.String("model", u.llm.Version()))
	return verdict, nil
}
