package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"paisabot/internal/ai"
	"paisabot/internal/types"
)

// rawExpense is one element of the model's extraction array before
// validation.
type rawExpense struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// extractExpenses turns free text into validated records and persists them
// as one batch. Invalid elements are dropped, never repaired; zero
// survivors means nothing is written.
func (p *Pipeline) extractExpenses(ctx context.Context, st *state) result {
	raw, err := p.svcCtx.AI.Complete(ctx, st.apiKey, ai.ExtractPrompt(ai.ExtractParams{Text: st.text}))
	if err != nil {
		return fail(replyCantUnderstand, err)
	}

	records := parseExpenses(raw, st.account.ID)
	if len(records) == 0 {
		return done(replyCantUnderstand)
	}

	now := p.now()
	for i := range records {
		records[i].SpentAt = now
	}
	if err := p.svcCtx.DB.InsertExpenses(ctx, records); err != nil {
		return fail(replySomethingWrong, err)
	}

	noun := "expense"
	if len(records) > 1 {
		noun = "expenses"
	}
	return done(fmt.Sprintf("Recorded %d %s:\n%s", len(records), noun, formatRecords(records)))
}

// parseExpenses parses the model response and keeps only elements that pass
// validation: positive amount, known category, non-empty description.
func parseExpenses(raw, accountID string) []types.ExpenseRecord {
	var parsed []rawExpense
	if err := json.Unmarshal([]byte(ai.StripCodeFence(raw)), &parsed); err != nil {
		return nil
	}

	var out []types.ExpenseRecord
	for _, e := range parsed {
		category := strings.ToLower(strings.TrimSpace(e.Category))
		description := strings.TrimSpace(e.Description)
		if e.Amount <= 0 || description == "" || !types.ValidCategory(category) {
			continue
		}
		out = append(out, types.ExpenseRecord{
			AccountID:   accountID,
			Amount:      e.Amount,
			Category:    category,
			Description: description,
		})
	}
	return out
}
