package domain_test

import (
	"testing"

	"booking-orchestrator/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       domain.Classification
		recognized bool
	}{
		{"plain structured", "STRUCTURED", domain.ClassificationStructured, true},
		{"lowercase document", "the answer is document", domain.ClassificationDocument, true},
		{"unsupported", "Unsupported", domain.ClassificationUnsupported, true},
		{"prose around label", "I would classify this as STRUCTURED because it counts rows.", domain.ClassificationStructured, true},
		{"both labels resolves structured", "This could be DOCUMENT or STRUCTURED.", domain.ClassificationStructured, true},
		{"document and unsupported resolves document", "unsupported... maybe document", domain.ClassificationDocument, true},
		{"no label", "I cannot decide.", domain.ClassificationUnsupported, false},
		{"empty", "", domain.ClassificationUnsupported, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.ParseClassification(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.recognized, ok)
		})
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Verdict
	}{
		{"valid", "Valid", domain.VerdictValid},
		{"valid lowercase with prose", "the question is valid.", domain.VerdictValid},
		{"invalid", "Invalid", domain.VerdictInvalid},
		// "invalid" contains "valid"; the parser must not misread it.
		{"invalid not misread as valid", "This question is INVALID for our domain.", domain.VerdictInvalid},
		{"unrecognized fails closed", "I am not sure what you mean.", domain.VerdictInvalid},
		{"empty fails closed", "", domain.VerdictInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseVerdict(tt.raw))
		})
	}
}
