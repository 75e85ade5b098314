package domain

import "errors"

// Sentinel errors for the orchestration core. Callers classify failures with
// errors.Is and decide whether to recover locally or surface a rejection.
var (
	// ErrInvalidInput marks an empty or whitespace-only question. Recovered
	// locally before any gateway call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable marks a failed or unreachable LLM gateway.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrGenerationFailed marks a structured-query generation failure.
	ErrGenerationFailed = errors.New("query generation failed")

	// ErrExecutionFailed marks a data-source rejection of a generated query.
	// Messages wrapping it must include the literal query text attempted.
	ErrExecutionFailed = errors.New("query execution failed")

	// ErrIndexUnavailable marks a missing or empty passage index. Fatal at
	// startup: the document engine refuses construction rather than serving
	// ungrounded answers.
	ErrIndexUnavailable = errors.New("passage index unavailable")
)
