package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"booking-orchestrator/internal/domain"
)

// DocumentAnswer is the document-path result: the composed answer plus the
// passages actually used, in retrieval rank order.
type DocumentAnswer struct {
	Answer    string
	Citations []domain.Passage
	Grounded  bool
}

// Markdown renders the answer with a sources section for presentation.
func (a *DocumentAnswer) Markdown() string {
	var sb strings.Builder
	sb.WriteString(a.Answer)
	if len(a.Citations) > 0 {
		sb.WriteString("\n\n---\n**Sources:**\n")
		for _, c := range a.Citations {
			sb.WriteString(fmt.Sprintf("- %s\n", c.Source))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// DocumentAnswerUsecase composes grounded answers from the passage index.
type DocumentAnswerUsecase interface {
	Execute(ctx context.Context, question string) (*DocumentAnswer, error)
}

type documentAnswerUsecase struct {
	index     domain.PassageIndex
	llm       domain.LLMClient
	prompts   *PromptBuilder
	topK      int
	maxTokens int
	log       *slog.Logger
}

// NewDocumentAnswerUsecase creates the retrieval engine. It refuses to
// operate against an empty or unreachable index: that would silently produce
// ungrounded answers disguised as grounded ones, so construction fails with
// ErrIndexUnavailable instead of deferring the problem to query time.
func NewDocumentAnswerUsecase(
	ctx context.Context,
	index domain.PassageIndex,
	llm domain.LLMClient,
	prompts *PromptBuilder,
	topK, maxTokens int,
	log *slog.Logger,
) (DocumentAnswerUsecase, error) {
	count, err := index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: index holds no passages", domain.ErrIndexUnavailable)
	}
	if topK <= 0 {
		topK = 5
	}
	return &documentAnswerUsecase{
		index:     index,
		llm:       llm,
		prompts:   prompts,
		topK:      topK,
		maxTokens: maxTokens,
		log:       log,
	}, nil
}

// Execute retrieves the top-K passages, composes a single grounded-answer
// prompt with all of them, and makes exactly one gateway call.
func (u *documentAnswerUsecase) Execute(ctx context.Context, question string) (*DocumentAnswer, error) {
	passages, err := u.index.Search(ctx, question, u.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	if len(passages) == 0 {
		u.log.Warn("retrieval returned no passages", slog.String("question", question))
		return &DocumentAnswer{Answer: RefusalPhrase, Grounded: false}, nil
	}

	prompt, used := u.prompts.BuildGroundedPrompt(passages, question)
	resp, err := u.llm.Generate(ctx, prompt, u.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: grounded generation failed: %v", domain.ErrUpstreamUnavailable, err)
	}
	answer := ""
	if resp != nil {
		answer = strings.TrimSpace(resp.Text)
	}
	if answer == "" {
		return nil, fmt.Errorf("%w: empty grounded response", domain.ErrUpstreamUnavailable)
	}

	grounded := !strings.Contains(answer, RefusalPhrase)
	if !grounded {
		u.log.Info("model signaled insufficient context",
			slog.Int("passages", len(used)))
		return &DocumentAnswer{Answer: RefusalPhrase, Grounded: false}, nil
	}

	return &DocumentAnswer{
		Answer:    answer,
		Citations: used,
		Grounded:  true,
	}, nil
}
