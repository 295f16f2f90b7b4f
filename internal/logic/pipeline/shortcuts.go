package pipeline

import (
	"context"
	"fmt"
	"strings"
)

// shortcut intercepts the fixed command vocabulary before any model call.
// Matching is case-insensitive and exact after trimming.
func (p *Pipeline) shortcut(ctx context.Context, st *state) result {
	switch strings.ToLower(strings.TrimSpace(st.text)) {
	case "help":
		return done(helpText)
	case "today":
		return p.todayCommand(ctx, st)
	case "total":
		return p.totalCommand(ctx, st)
	}
	return skip()
}

// todayCommand lists and totals the records since local midnight.
func (p *Pipeline) todayCommand(ctx context.Context, st *state) result {
	records, err := p.svcCtx.DB.ExpensesSince(ctx, st.account.ID, startOfDay(p.now()))
	if err != nil {
		return fail(replySomethingWrong, err)
	}
	if len(records) == 0 {
		return done("No expenses recorded today yet.")
	}
	return done("Today's expenses:\n" + formatRecords(records))
}

// totalCommand reports the current month's total with a per-category
// breakdown, largest first.
func (p *Pipeline) totalCommand(ctx context.Context, st *state) result {
	now := p.now()
	totals, err := p.svcCtx.DB.CategoryTotals(ctx, st.account.ID, startOfMonth(now), now)
	if err != nil {
		return fail(replySomethingWrong, err)
	}
	if len(totals) == 0 {
		return done(fmt.Sprintf("No expenses recorded in %s yet.", now.Format("January")))
	}

	var sum float64
	var b strings.Builder
	for _, ct := range totals {
		fmt.Fprintf(&b, "• %s: %s\n", ct.Category, formatAmount(ct.Total))
		sum += ct.Total
	}
	return done(fmt.Sprintf("%s so far: %s\n%s", now.Format("January"), formatAmount(sum), strings.TrimRight(b.String(), "\n")))
}
