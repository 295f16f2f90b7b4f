package pipeline

import (
	"fmt"
	"strings"
	"time"

	"paisabot/internal/types"
)

const (
	replyLinkAccount = "Hi! This number isn't linked to an account yet. " +
		"Open the app, go to Settings → Link WhatsApp, and follow the steps to connect."

	replyNotConfigured = "Your account isn't fully set up yet: no model credential is configured. " +
		"Please add one in the app settings and try again."

	replyTranscribeFailed = "Sorry, I couldn't make out that voice note. " +
		"Could you try again, or type it out instead?"

	replyCantUnderstand = "Sorry, I couldn't find an expense in that. " +
		"Try something like \"spent 250 on groceries\"."

	replySomethingWrong = "Something went wrong on my end. Please try again in a moment."

	helpText = "Here's what I can do:\n" +
		"• Send an expense in plain words: \"coffee 50\", \"paid 1200 rent\"\n" +
		"• Send a voice note, I'll transcribe it\n" +
		"• Ask questions: \"how much did I spend last month?\"\n" +
		"• *today* - today's expenses\n" +
		"• *total* - this month's total by category\n" +
		"• *help* - this message"

	replyConversation = "Hey! I'm your expense tracker. Tell me what you spent " +
		"(\"lunch 180\") or ask about your spending (\"total for groceries this week\"). " +
		"Send *help* for all commands."
)

// formatAmount renders a monetary value the way replies show it.
func formatAmount(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

// formatRecords renders a bullet list of records with a trailing total.
func formatRecords(records []types.ExpenseRecord) string {
	var b strings.Builder
	var total float64
	for _, rec := range records {
		fmt.Fprintf(&b, "• %s (%s): %s\n", rec.Description, rec.Category, formatAmount(rec.Amount))
		total += rec.Amount
	}
	fmt.Fprintf(&b, "Total: %s", formatAmount(total))
	return b.String()
}

// scopeEcho describes the resolved filter scope so an empty result still
// shows the user their question was understood.
func scopeEcho(f types.QueryFilter) string {
	var parts []string
	switch {
	case f.StartDate != nil && f.EndDate != nil:
		parts = append(parts, fmt.Sprintf("from %s to %s",
			f.StartDate.Format("2 Jan 2006"), f.EndDate.Format("2 Jan 2006")))
	case f.StartDate != nil:
		parts = append(parts, "since "+f.StartDate.Format("2 Jan 2006"))
	case f.EndDate != nil:
		parts = append(parts, "until "+f.EndDate.Format("2 Jan 2006"))
	}
	if f.Category != "" {
		parts = append(parts, "in "+f.Category)
	}
	if len(parts) == 0 {
		return "No expenses found."
	}
	return fmt.Sprintf("No expenses found %s.", strings.Join(parts, " "))
}

// renderTable lays out query rows one per line for the summarizer.
func renderTable(records []types.ExpenseRecord) (table string, total float64) {
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s | %s | %s | %.2f\n",
			rec.SpentAt.Format("2006-01-02"), rec.Category, rec.Description, rec.Amount)
		total += rec.Amount
	}
	return b.String(), total
}

// startOfDay returns local midnight for t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfMonth returns the first instant of t's calendar month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
