package ai

import (
	"fmt"
	"strings"

	"paisabot/internal/types"
)

// Every prompt is a pure function from a typed parameter struct to a
// string, so prompt content is unit-testable without any network call.

// ClassifyParams feeds the intent-classification prompt.
type ClassifyParams struct {
	Text string
}

// ClassifyPrompt asks for exactly one of the three intent labels.
func ClassifyPrompt(p ClassifyParams) string {
	return fmt.Sprintf(`Classify the following message into exactly one label.

Labels:
- expense: the user is recording money they spent
- query: the user is asking about their past spending
- conversation: greetings, thanks, small talk, or questions about what you can do

Reply with only the label, nothing else.

Message: %q`, p.Text)
}

// ExtractParams feeds the expense-extraction prompt.
type ExtractParams struct {
	Text string
}

// ExtractPrompt asks for a JSON array of expense objects constrained to the
// fixed category set.
func ExtractPrompt(p ExtractParams) string {
	return fmt.Sprintf(`Extract every expense from the message below.

Respond with a JSON array only, no prose, no markdown. Each element:
{"amount": <positive number>, "category": <string>, "description": <string>}

Rules:
- category must be one of: %s
- pick "food" for meals, snacks, coffee and restaurants
- pick "other" when nothing else fits
- description is a short noun phrase; strip filler verbs like "spent",
  "paid", "bought"
- if the message contains no expense, respond with []

Message: %q`, strings.Join(types.Categories, ", "), p.Text)
}

// PlanParams feeds the query-planning prompt. Today anchors the model's
// relative-date arithmetic.
type PlanParams struct {
	Question string
	Today    string // YYYY-MM-DD
}

// PlanPrompt asks for a single JSON filter object.
func PlanPrompt(p PlanParams) string {
	return fmt.Sprintf(`Today's date is %s.

Convert the question below into a JSON filter object only, no prose,
no markdown:
{"start_date": "YYYY-MM-DD" or null,
 "end_date": "YYYY-MM-DD" or null,
 "category": one of [%s] or null,
 "sort_by": "date" or "amount",
 "order": "asc" or "desc",
 "limit": integer 1-500}

Date rules:
- "last month" = first to last day of the previous calendar month
- "this month" = first day of the current month to today
- "this week" = most recent Monday to today
- "yesterday" = the single previous day
- a named month means that month in the current year, or the most recent
  past occurrence if it has not happened yet this year
- no date mentioned = both dates null

Question: %q`, p.Today, strings.Join(types.Categories, ", "), p.Question)
}

// SummarizeParams feeds the answer-composition prompt.
type SummarizeParams struct {
	Question string
	Table    string // rendered rows, one per line: date | category | description | amount
	Total    string // formatted total
}

// SummarizePrompt grounds the answer strictly in the supplied rows.
func SummarizePrompt(p SummarizeParams) string {
	return fmt.Sprintf(`Answer the user's question using ONLY the expense rows below.
Do not use any other information, do not invent records or figures.
Keep the answer short and conversational, and state the total.

Question: %q

Rows (date | category | description | amount):
%s
Total: %s`, p.Question, p.Table, p.Total)
}
