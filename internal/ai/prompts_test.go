package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"paisabot/internal/types"
)

// Prompt construction is pure, so its content can be pinned without any
// network access.

func TestClassifyPrompt(t *testing.T) {
	p := ClassifyPrompt(ClassifyParams{Text: "spent 50 on coffee"})
	assert.Contains(t, p, "expense")
	assert.Contains(t, p, "query")
	assert.Contains(t, p, "conversation")
	assert.Contains(t, p, `"spent 50 on coffee"`)
}

func TestExtractPrompt(t *testing.T) {
	p := ExtractPrompt(ExtractParams{Text: "lunch 180"})
	for _, c := range types.Categories {
		assert.Contains(t, p, c)
	}
	assert.Contains(t, p, "JSON array")
	assert.Contains(t, p, `"lunch 180"`)
	assert.Contains(t, p, "[]", "must allow an empty result")
}

func TestPlanPromptAnchorsDates(t *testing.T) {
	p := PlanPrompt(PlanParams{Question: "how much last month?", Today: "2026-08-31"})
	assert.Contains(t, p, "2026-08-31", "today's date anchors relative phrases")
	assert.Contains(t, p, "last month")
	assert.Contains(t, p, "this week")
	assert.Contains(t, p, "yesterday")
	assert.Contains(t, p, "start_date")
	assert.Contains(t, p, "1-500")
}

func TestSummarizePromptForbidsOutsideInfo(t *testing.T) {
	p := SummarizePrompt(SummarizeParams{
		Question: "what did I spend on food?",
		Table:    "2026-08-30 | food | coffee | 50.00\n",
		Total:    "₹50.00",
	})
	assert.Contains(t, p, "ONLY")
	assert.Contains(t, strings.ToLower(p), "do not invent")
	assert.Contains(t, p, "coffee")
	assert.Contains(t, p, "₹50.00")
}
