package agent_http

import (
	"context"
	"log/slog"
	"net/http"

	"booking-orchestrator/internal/domain"
	"booking-orchestrator/internal/infra/logger"

	"github.com/labstack/echo/v4"
)

// Orchestrator is the single entry point the HTTP surface needs.
type Orchestrator interface {
	Execute(ctx context.Context, question string) domain.AgentResponse
}

type askRequest struct {
	Question string `json:"question"`
}

// Handler serves the question answering API.
type Handler struct {
	orchestrator Orchestrator
	log          *slog.Logger
}

func NewHandler(orchestrator Orchestrator, log *slog.Logger) *Handler {
	return &Handler{orchestrator: orchestrator, log: log}
}

// Register mounts the API routes on the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/v1/ask", h.Ask)
	e.GET("/healthz", h.Healthz)
}

// Ask runs a full orchestration cycle for the posted question. The cycle
// never fails the HTTP request: malformed questions come back as structured
// rejections with status 200.
func (h *Handler) Ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		h.log.Warn("rejecting malformed ask request", slog.String("error", err.Error()))
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be JSON with a question field")
	}

	ctx := c.Request().Context()
	if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
		ctx = logger.WithCycleID(ctx, requestID)
	}

	resp := h.orchestrator.Execute(ctx, req.Question)
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
