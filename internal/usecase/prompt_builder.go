package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"booking-orchestrator/internal/domain"
)

// RefusalPhrase is the fixed phrase the grounded-answer prompt instructs the
// model to emit when the retrieved context is insufficient. The orchestrator
// pattern-matches on it to detect ungrounded answers.
const RefusalPhrase = "I don't have the relevant information."

// PromptBuilder renders the prompts sent to the language-model gateway. The
// context budget caps how many runes the grounded prompt may carry; the
// reserved share is held back for instructions, question and answer.
type PromptBuilder struct {
	contextBudget int
	reserved      int
}

// NewPromptBuilder creates a builder with the given total rune budget for the
// grounded prompt and the share of it reserved for non-context sections.
func NewPromptBuilder(contextBudget, reserved int) *PromptBuilder {
	if contextBudget <= 0 {
		contextBudget = 8000
	}
	if reserved <= 0 || reserved >= contextBudget {
		reserved = contextBudget / 4
	}
	return &PromptBuilder{
		contextBudget: contextBudget,
		reserved:      reserved,
	}
}

// BuildValidationPrompt renders the closed-set domain-relevance prompt.
func (b *PromptBuilder) BuildValidationPrompt(question string) string {
	var sb strings.Builder
	sb.WriteString("You are a gatekeeper for a hospitality booking assistant.\n")
	sb.WriteString("The assistant answers questions about hotels, rooms, bookings, guests, prices, availability, meal plans and hospitality business metrics.\n\n")
	sb.WriteString("Decide whether the following question belongs to that domain.\n")
	sb.WriteString("Respond with exactly one word: Valid or Invalid. No other text.\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}

// BuildRoutingPrompt renders the closed-set classification prompt listing the
// three routing labels with explicit decision rules.
func (b *PromptBuilder) BuildRoutingPrompt(question string) string {
	var sb strings.Builder
	sb.WriteString("Classify the following question about a hospitality booking business into exactly one label:\n\n")
	sb.WriteString("- STRUCTURED: the answer requires counting, aggregating, computing rates or revenue, or filtering bookings by dates. These questions are answered by querying the bookings database.\n")
	sb.WriteString("- DOCUMENT: the answer is descriptive, such as hotel addresses, locations, policies, meal plan descriptions or room amenities. These questions are answered from hotel documents.\n")
	sb.WriteString("- UNSUPPORTED: the question is outside the hospitality domain.\n\n")
	sb.WriteString("Respond with exactly one label: STRUCTURED, DOCUMENT or UNSUPPORTED.\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nLabel:")
	return sb.String()
}

// BuildQueryPrompt renders the SQL generation prompt. Read-only intent and
// result limits are instructions to the model, not mechanical guarantees.
func (b *PromptBuilder) BuildQueryPrompt(schema, question string) string {
	var sb strings.Builder
	sb.WriteString("You are a senior data assistant for a hospitality booking platform.\n")
	sb.WriteString("You translate business questions into correct PostgreSQL queries.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Only use the tables and columns listed in the schema below. Never assume column names.\n")
	sb.WriteString("- Write SELECT queries only. No INSERT, UPDATE, DELETE or DROP.\n")
	sb.WriteString("- Limit results unless the question explicitly asks for all records.\n")
	sb.WriteString("- Dates matter. Be careful with time ranges.\n\n")
	sb.WriteString("Schema:\n")
	sb.WriteString(schema)
	sb.WriteString("\n\nGenerate only the SQL query for this question. No prose, no explanation, no execution.\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nSQL:")
	return sb.String()
}

// BuildGroundedPrompt renders the document-path prompt with all retained
// passages concatenated as context. Passages arrive most relevant first;
// when the context budget is exceeded, the least relevant are dropped first.
// It returns the prompt and the passages actually included, in rank order.
func (b *PromptBuilder) BuildGroundedPrompt(passages []domain.Passage, question string) (string, []domain.Passage) {
	budget := b.contextBudget - b.reserved

	var used []domain.Passage
	var ctxSb strings.Builder
	spent := 0
	for _, p := range passages {
		section := fmt.Sprintf("[source: %s]\n%s\n\n", p.Source, p.Content)
		cost := utf8.RuneCountInString(section)
		if spent+cost > budget {
			if len(used) > 0 {
				break
			}
			// Always keep the top passage, trimmed to the budget.
			section = truncateRunes(section, budget)
			cost = utf8.RuneCountInString(section)
		}
		ctxSb.WriteString(section)
		spent += cost
		used = append(used, p)
	}

	var sb strings.Builder
	sb.WriteString("You are a helpful assistant that provides information about hotels.\n\n")
	sb.WriteString("Use ONLY the information in the context to answer the question.\n")
	sb.WriteString("If the answer is not in the context, respond with:\n")
	sb.WriteString("\"" + RefusalPhrase + "\"\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(ctxSb.String())
	sb.WriteString("\nQuestion:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String(), used
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
