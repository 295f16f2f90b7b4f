package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"paisabot/internal/ai"
	"paisabot/internal/logging"
	"paisabot/internal/types"
)

// rawFilter is the planner's JSON shape before validation.
type rawFilter struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Category  *string `json:"category"`
	SortBy    string  `json:"sort_by"`
	Order     string  `json:"order"`
	Limit     int     `json:"limit"`
}

// answerQuery plans a filter from the question, runs it, and summarizes the
// rows. Every failure mode still ends in a chat reply.
func (p *Pipeline) answerQuery(ctx context.Context, st *state) result {
	filter := p.planFilter(ctx, st)

	records, err := p.svcCtx.DB.QueryExpenses(ctx, st.account.ID, filter)
	if err != nil {
		return fail(replySomethingWrong, err)
	}
	if len(records) == 0 {
		return done(scopeEcho(filter))
	}

	table, total := renderTable(records)
	answer, err := p.svcCtx.AI.Complete(ctx, st.apiKey, ai.SummarizePrompt(ai.SummarizeParams{
		Question: st.text,
		Table:    table,
		Total:    formatAmount(total),
	}))
	if err != nil {
		// Grounded fallback: the rows themselves are still a correct answer.
		logging.Errorf("summarization call failed, replying with raw rows: %v", err)
		return done(fmt.Sprintf("Here's what I found:\n%sTotal: %s", table, formatAmount(total)))
	}
	return done(answer)
}

// planFilter asks the model for a structured filter. Any request or parse
// failure substitutes the default unscoped filter; the substitution loses
// the user's implied scope, so it is always logged.
func (p *Pipeline) planFilter(ctx context.Context, st *state) types.QueryFilter {
	raw, err := p.svcCtx.AI.Complete(ctx, st.apiKey, ai.PlanPrompt(ai.PlanParams{
		Question: st.text,
		Today:    p.now().Format("2006-01-02"),
	}))
	if err != nil {
		logging.Warnf("query planning call failed, substituting default filter: %v", err)
		return types.DefaultQueryFilter()
	}

	filter, err := parseFilter(raw)
	if err != nil {
		logging.Warnf("query plan unparseable (%v), substituting default filter", err)
		return types.DefaultQueryFilter()
	}
	return filter
}

// parseFilter validates the planner output into a QueryFilter. Unknown
// categories are ignored rather than failing the whole plan.
func parseFilter(raw string) (types.QueryFilter, error) {
	var parsed rawFilter
	if err := json.Unmarshal([]byte(ai.StripCodeFence(raw)), &parsed); err != nil {
		return types.QueryFilter{}, err
	}

	var f types.QueryFilter
	if parsed.StartDate != nil && *parsed.StartDate != "" {
		t, err := time.ParseInLocation("2006-01-02", *parsed.StartDate, time.Local)
		if err != nil {
			return types.QueryFilter{}, err
		}
		f.StartDate = &t
	}
	if parsed.EndDate != nil && *parsed.EndDate != "" {
		t, err := time.ParseInLocation("2006-01-02", *parsed.EndDate, time.Local)
		if err != nil {
			return types.QueryFilter{}, err
		}
		// Make the end date inclusive of its whole day.
		t = t.Add(24*time.Hour - time.Second)
		f.EndDate = &t
	}
	if parsed.Category != nil && types.ValidCategory(*parsed.Category) {
		f.Category = strings.ToLower(strings.TrimSpace(*parsed.Category))
	}
	f.SortBy = types.SortKey(parsed.SortBy)
	f.Order = types.SortOrder(parsed.Order)
	f.Limit = parsed.Limit
	f.Clamp()
	return f, nil
}
