package domain

import "strings"

// AgentResponse is the unified output every answer path normalizes into.
// Invariants: answerable=true carries a non-empty summary and no reason;
// answerable=false carries a non-empty reason and no summary. The
// constructors below are the only intended way to build one.
type AgentResponse struct {
	Answerable bool   `json:"answerable"`
	Reason     string `json:"reason,omitempty"`
	Query      string `json:"query,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// NewAnswer builds an answerable response. The query text is optional and
// only populated by the structured path.
func NewAnswer(summary, query string) AgentResponse {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return NewRejection("engine produced an empty answer")
	}
	return AgentResponse{
		Answerable: true,
		Query:      query,
		Summary:    summary,
	}
}

// NewRejection builds a non-answerable response with the given reason.
func NewRejection(reason string) AgentResponse {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "the question could not be answered"
	}
	return AgentResponse{
		Answerable: false,
		Reason:     reason,
	}
}
