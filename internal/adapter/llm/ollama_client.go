package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"booking-orchestrator/internal/domain"

	"golang.org/x/time/rate"
)

const generationTemperature = 0.0

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string         `json:"model"`
	Messages  []chatMessage  `json:"messages"`
	Stream    bool           `json:"stream"`
	KeepAlive int            `json:"keep_alive"`
	Options   map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// OllamaClient sends prompts to Ollama's chat endpoint and returns the plain
// assistant message. A shared rate limiter keeps concurrent orchestration
// cycles from overwhelming the upstream model.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewOllamaClient constructs a client for the given endpoint and model.
// requestsPerSecond <= 0 disables rate limiting.
func NewOllamaClient(baseURL, model string, client *http.Client, requestsPerSecond float64) *OllamaClient {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
		limiter: limiter,
	}
}

// Generate sends the prompt and returns the assistant message. Temperature is
// pinned to zero: classification and query generation need determinism, not
// creativity.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, maxTokens int) (*domain.LLMResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	reqBody := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		Stream:    false,
		KeepAlive: -1,
		Options: map[string]any{
			"temperature": generationTemperature,
		},
	}
	if maxTokens > 0 {
		reqBody.Options["num_predict"] = maxTokens
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call generation endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generation endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}

	return &domain.LLMResponse{
		Text: strings.TrimSpace(chatResp.Message.Content),
		Done: chatResp.Done,
	}, nil
}

// Version returns the wrapped model name.
func (c *OllamaClient) Version() string {
	return c.model
}

var _ domain.LLMClient = (*OllamaClient)(nil)
