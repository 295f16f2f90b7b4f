package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"paisabot/internal/types"
)

// InsertExpenses persists a batch of records in a single transaction.
// Callers are expected to have validated every record already.
func (s *Store) InsertExpenses(ctx context.Context, records []types.ExpenseRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (account_id, amount, category, description, spent_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.AccountID, rec.Amount, rec.Category, rec.Description, rec.SpentAt.Unix()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// QueryExpenses applies a filter as a scoped, ordered, limited read for one
// account.
func (s *Store) QueryExpenses(ctx context.Context, accountID string, filter types.QueryFilter) ([]types.ExpenseRecord, error) {
	filter.Clamp()

	var sb strings.Builder
	sb.WriteString(`SELECT id, account_id, amount, category, description, spent_at FROM expenses WHERE account_id = ?`)
	args := []any{accountID}

	if filter.StartDate != nil {
		sb.WriteString(` AND spent_at >= ?`)
		args = append(args, filter.StartDate.Unix())
	}
	if filter.EndDate != nil {
		sb.WriteString(` AND spent_at <= ?`)
		args = append(args, filter.EndDate.Unix())
	}
	if filter.Category != "" {
		sb.WriteString(` AND category = ?`)
		args = append(args, strings.ToLower(filter.Category))
	}

	col := "spent_at"
	if filter.SortBy == types.SortByAmount {
		col = "amount"
	}
	dir := "DESC"
	if filter.Order == types.OrderAsc {
		dir = "ASC"
	}
	fmt.Fprintf(&sb, ` ORDER BY %s %s LIMIT ?`, col, dir)
	args = append(args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.ExpenseRecord
	for rows.Next() {
		var rec types.ExpenseRecord
		var spentAt int64
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.Amount, &rec.Category, &rec.Description, &spentAt); err != nil {
			return nil, err
		}
		rec.SpentAt = time.Unix(spentAt, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ExpensesSince returns all records on or after the given instant, oldest
// first. Backs the `today` shortcut.
func (s *Store) ExpensesSince(ctx context.Context, accountID string, since time.Time) ([]types.ExpenseRecord, error) {
	return s.QueryExpenses(ctx, accountID, types.QueryFilter{
		StartDate: &since,
		SortBy:    types.SortByDate,
		Order:     types.OrderAsc,
		Limit:     types.MaxQueryLimit,
	})
}

// CategoryTotals computes the per-category spend between start and end,
// sorted by amount descending. Backs the `total` shortcut.
func (s *Store) CategoryTotals(ctx context.Context, accountID string, start, end time.Time) ([]types.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total FROM expenses
		 WHERE account_id = ? AND spent_at >= ? AND spent_at <= ?
		 GROUP BY category ORDER BY total DESC`,
		accountID, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.CategoryTotal
	for rows.Next() {
		var ct types.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}
