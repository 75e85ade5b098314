package usecase_test

import (
	"strings"
	"testing"

	"booking-orchestrator/internal/domain"
	"booking-orchestrator/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildValidationPrompt(t *testing.T) {
	prompt := usecase.NewPromptBuilder(8000, 2000).BuildValidationPrompt("How many bookings?")
	assert.Contains(t, prompt, "Valid or Invalid")
	assert.Contains(t, prompt, "How many bookings?")
}

func TestBuildRoutingPrompt_ListsAllLabels(t *testing.T) {
	prompt := usecase.NewPromptBuilder(8000, 2000).BuildRoutingPrompt("Where is Obsidian Tower?")
	for _, label := range []string{"STRUCTURED", "DOCUMENT", "UNSUPPORTED"} {
		assert.Contains(t, prompt, label)
	}
	assert.Contains(t, prompt, "Where is Obsidian Tower?")
}

func TestBuildQueryPrompt_CarriesSchemaAndRules(t *testing.T) {
	prompt := usecase.NewPromptBuilder(8000, 2000).BuildQueryPrompt("bookings(id uuid)", "count bookings")
	assert.Contains(t, prompt, "bookings(id uuid)")
	assert.Contains(t, prompt, "SELECT queries only")
	assert.Contains(t, prompt, "No prose")
}

func TestBuildGroundedPrompt_KeepsAllPassagesWithinBudget(t *testing.T) {
	builder := usecase.NewPromptBuilder(8000, 2000)
	passages := []domain.Passage{
		{ID: uuid.New(), Content: "First passage.", Source: "a.md", Score: 0.9},
		{ID: uuid.New(), Content: "Second passage.", Source: "b.md", Score: 0.8},
	}

	prompt, used := builder.BuildGroundedPrompt(passages, "question?")
	assert.Len(t, used, 2)
	assert.Contains(t, prompt, "First passage.")
	assert.Contains(t, prompt, "Second passage.")
	assert.Contains(t, prompt, usecase.RefusalPhrase)
}

func TestBuildGroundedPrompt_DropsLeastRelevantFirst(t *testing.T) {
	// Budget fits roughly one passage after the reserved share.
	builder := usecase.NewPromptBuilder(600, 300)
	passages := []domain.Passage{
		{ID: uuid.New(), Content: strings.Repeat("most relevant ", 15), Source: "a.md", Score: 0.9},
		{ID: uuid.New(), Content: strings.Repeat("less relevant ", 15), Source: "b.md", Score: 0.5},
	}

	prompt, used := builder.BuildGroundedPrompt(passages, "question?")
	require.Len(t, used, 1)
	assert.Equal(t, "a.md", used[0].Source)
	assert.Contains(t, prompt, "most relevant")
	assert.NotContains(t, prompt, "less relevant")
}

func TestBuildGroundedPrompt_TopPassageAlwaysIncluded(t *testing.T) {
	builder := usecase.NewPromptBuilder(200, 100)
	passages := []domain.Passage{
		{ID: uuid.New(), Content: strings.Repeat("oversized passage ", 50), Source: "a.md", Score: 0.9},
	}

	prompt, used := builder.BuildGroundedPrompt(passages, "question?")
	require.Len(t, used, 1)
	assert.Contains(t, prompt, "oversized passage")
}
