package types

import (
	"strings"
	"time"
)

// MessageKind distinguishes the two inbound payload shapes we handle.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindAudio MessageKind = "audio"
)

// InboundMessage is the normalized form of one delivered webhook message.
// Created once per event and never mutated afterwards.
type InboundMessage struct {
	MessageID string // provider-assigned id, used as the idempotency key
	From      string // raw sender address as delivered
	Kind      MessageKind
	Text      string // body for text messages
	MediaID   string // media reference for audio messages
}

// Account links a normalized phone number to an owner id. Rows are written
// by the external linking flow (or the `link` CLI); this service only reads
// them.
type Account struct {
	ID        string
	Phone     string // digits only
	OpenAIKey string // optional per-account credential
	CreatedAt time.Time
}

// ExpenseRecord is a single persisted monetary entry.
type ExpenseRecord struct {
	ID          int64
	AccountID   string
	Amount      float64
	Category    string
	Description string
	SpentAt     time.Time
}

// Intent is the label assigned to a free-form message.
type Intent string

const (
	IntentExpense      Intent = "expense"
	IntentQuery        Intent = "query"
	IntentConversation Intent = "conversation"
)

// SortKey and SortOrder control query result ordering.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// QueryFilter is the structured form of a natural-language question.
// Built per query and discarded after use.
type QueryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string // empty means all categories
	SortBy    SortKey
	Order     SortOrder
	Limit     int
}

const (
	// MaxQueryLimit bounds how many rows a single query may return.
	MaxQueryLimit = 500
	// DefaultQueryLimit is used when the planner gives no limit or fails.
	DefaultQueryLimit = 100
)

// DefaultQueryFilter is substituted when query planning fails: no date
// bounds, no category, newest first. Using it loses the user's implied
// scope, which is why the substitution is always logged.
func DefaultQueryFilter() QueryFilter {
	return QueryFilter{
		SortBy: SortByDate,
		Order:  OrderDesc,
		Limit:  DefaultQueryLimit,
	}
}

// Clamp bounds the filter limit to [1, MaxQueryLimit] and fills in
// zero-value sort parameters.
func (f *QueryFilter) Clamp() {
	if f.Limit < 1 || f.Limit > MaxQueryLimit {
		f.Limit = DefaultQueryLimit
	}
	if f.SortBy != SortByAmount {
		f.SortBy = SortByDate
	}
	if f.Order != OrderAsc {
		f.Order = OrderDesc
	}
}

// Categories is the closed set every persisted expense must belong to.
var Categories = []string{"food", "travel", "groceries", "entertainment", "utilities", "rent", "other"}

// ValidCategory reports whether c (case-insensitive) is a member of the
// fixed category set.
func ValidCategory(c string) bool {
	c = strings.ToLower(strings.TrimSpace(c))
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizePhone strips every non-digit character from an address.
// All lookups and comparisons go through this first.
func NormalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CategoryTotal is one row of a per-category spending breakdown.
type CategoryTotal struct {
	Category string
	Total    float64
}
