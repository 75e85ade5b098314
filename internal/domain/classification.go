package domain

import "strings"

// Classification is the routing target for a validated question.
type Classification string

const (
	// ClassificationStructured routes to the SQL engine.
	ClassificationStructured Classification = "STRUCTURED"
	// ClassificationDocument routes to the retrieval engine.
	ClassificationDocument Classification = "DOCUMENT"
	// ClassificationUnsupported marks questions neither engine can answer.
	ClassificationUnsupported Classification = "UNSUPPORTED"
)

// classificationPriority fixes the tie-break for responses that mention more
// than one label: STRUCTURED wins over DOCUMENT wins over UNSUPPORTED.
var classificationPriority = []Classification{
	ClassificationStructured,
	ClassificationDocument,
	ClassificationUnsupported,
}

// ParseClassification extracts a routing label from raw LLM output using
// case-insensitive substring matching in priority order. The second return
// value is false when no label is recognized; callers treat that as a routing
// miss, not an error.
func ParseClassification(raw string) (Classification, bool) {
	lowered := strings.ToLower(raw)
	for _, c := range classificationPriority {
		if strings.Contains(lowered, strings.ToLower(string(c))) {
			return c, true
		}
	}
	return ClassificationUnsupported, false
}

// Verdict is the domain-relevance decision for a question.
type Verdict string

const (
	VerdictValid   Verdict = "Valid"
	VerdictInvalid Verdict = "Invalid"
)

// ParseVerdict extracts a verdict from raw LLM output. "invalid" is checked
// before "valid" because the former contains the latter as a substring.
// Unrecognized output fails closed to Invalid.
func ParseVerdict(raw string) Verdict {
	lowered := strings.ToLower(raw)
	if strings.Contains(lowered, "invalid") {
		return VerdictInvalid
	}
	if strings.Contains(lowered, "valid") {
		return VerdictValid
	}
	return VerdictInvalid
}
