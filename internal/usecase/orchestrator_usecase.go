package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"booking-orchestrator/internal/domain"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cycleState tracks one orchestration cycle through its state machine.
type cycleState string

const (
	stateReceived    cycleState = "RECEIVED"
	stateValidated   cycleState = "VALIDATED"
	stateRouted      cycleState = "ROUTED"
	stateAnswered    cycleState = "ANSWERED"
	stateFormatted   cycleState = "FORMATTED"
	stateRejected    cycleState = "REJECTED"
	stateUnsupported cycleState = "UNSUPPORTED"
	stateFailed      cycleState = "FAILED"
)

const rejectionNotInDomain = "not related to the domain"

// OrchestratorUsecase is the top-level control loop: Validator -> Router ->
// one engine -> formatted response. It always returns a well-formed
// AgentResponse; engine failures never escape unformatted.
type OrchestratorUsecase interface {
	Execute(ctx context.Context, question string) domain.AgentResponse
}

type orchestratorUsecase struct {
	validator      ValidateQuestionUsecase
	router         RouteQuestionUsecase
	structured     StructuredAnswerUsecase
	document       DocumentAnswerUsecase
	defaultMetrics MetricParams
	cache          *expirable.LRU[string, domain.AgentResponse]
	log            *slog.Logger
}

// NewOrchestratorUsecase wires the orchestration cycle. A cacheSize of zero
// disables the answer cache.
func NewOrchestratorUsecase(
	validator ValidateQuestionUsecase,
	router RouteQuestionUsecase,
	structured StructuredAnswerUsecase,
	document DocumentAnswerUsecase,
	defaultMetrics MetricParams,
	cacheSize int,
	cacheTTL time.Duration,
	log *slog.Logger,
) OrchestratorUsecase {
	var cache *expirable.LRU[string, domain.AgentResponse]
	if cacheSize > 0 {
		cache = expirable.NewLRU[string, domain.AgentResponse](cacheSize, nil, cacheTTL)
	}
	return &orchestratorUsecase{
		validator:      validator,
		router:         router,
		structured:     structured,
		document:       document,
		defaultMetrics: defaultMetrics,
		cache:          cache,
		log:            log,
	}
}

// Execute runs one strictly sequential orchestration cycle. Cycles for
// different questions share no mutable state beyond the cache, so callers may
// run them concurrently.
func (u *orchestratorUsecase) Execute(ctx context.Context, question string) domain.AgentResponse {
	cycleID := uuid.NewString()
	log := u.log.With(slog.String("cycle_id", cycleID))
	log.Debug("cycle state", slog.String("state", string(stateReceived)))

	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		// Fail fast: no gateway call for empty input.
		return u.terminal(log, stateRejected, domain.NewRejection("question is empty"))
	}

	if u.cache != nil {
		if cached, ok := u.cache.Get(trimmed); ok {
			log.Debug("cache hit")
			return cached
		}
	}

	verdict, err := u.validator.Execute(ctx, trimmed)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return u.terminal(log, stateRejected, domain.NewRejection("question is empty"))
		}
		return u.terminal(log, stateFailed, domain.NewRejection(err.Error()))
	}
	if verdict != domain.VerdictValid {
		return u.terminal(log, stateRejected, domain.NewRejection(rejectionNotInDomain))
	}
	log.Debug("cycle state", slog.String("state", string(stateValidated)))

	classification, err := u.router.Execute(ctx, trimmed)
	if err != nil {
		return u.terminal(log, stateFailed, domain.NewRejection(err.Error()))
	}
	log.Debug("cycle state",
		slog.String("state", string(stateRouted)),
		slog.String("classification", string(classification)))

	var response domain.AgentResponse
	switch classification {
	case domain.ClassificationStructured:
		answer, err := u.structured.Execute(ctx, StructuredAnswerInput{
			Question: trimmed,
			Metrics:  u.defaultMetrics,
		})
		if err != nil {
			return u.terminal(log, stateFailed, domain.NewRejection(err.Error()))
		}
		response = domain.NewAnswer(answer.Summary, answer.Query)

	case domain.ClassificationDocument:
		answer, err := u.document.Execute(ctx, trimmed)
		if err != nil {
			return u.terminal(log, stateFailed, domain.NewRejection(err.Error()))
		}
		if !answer.Grounded {
			return u.terminal(log, stateRejected,
				domain.NewRejection("the indexed documents do not contain the relevant information"))
		}
		response = domain.NewAnswer(answer.Markdown(), "")

	default:
		return u.terminal(log, stateUnsupported,
			domain.NewRejection("the question is not supported by this assistant"))
	}
	log.Debug("cycle state", slog.String("state", string(stateAnswered)))

	if u.cache != nil && response.Answerable {
		u.cache.Add(trimmed, response)
	}
	return u.terminal(log, stateFormatted, response)
}

func (u *orchestratorUsecase) terminal(log *slog.Logger, state cycleState, resp domain.AgentResponse) domain.AgentResponse {
	attrs := []any{
		slog.String("state", string(state)),
		slog.Bool("answerable", resp.Answerable),
	}
	if state == stateFailed {
		log.Warn("cycle failed", append(attrs, slog.String("reason", resp.Reason))...)
	} else {
		log.Debug("cycle state", attrs...)
	}
	return resp
}
