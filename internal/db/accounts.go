package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"paisabot/internal/types"
)

// GetAccountByPhone looks up an account by its digits-only phone number.
// Returns (nil, nil) when no account is linked to that number.
func (s *Store) GetAccountByPhone(ctx context.Context, phone string) (*types.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, phone, openai_api_key, created_at FROM accounts WHERE phone = ?`, phone)

	var a types.Account
	var createdAt int64
	if err := row.Scan(&a.ID, &a.Phone, &a.OpenAIKey, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.CreatedAt = time.Unix(createdAt, 0)
	return &a, nil
}

// UpsertAccount creates or replaces the account row for a phone number.
// Used by the `link` CLI; the runtime pipeline never writes accounts.
func (s *Store) UpsertAccount(ctx context.Context, phone, openaiKey string) (*types.Account, error) {
	existing, err := s.GetAccountByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		_, err = s.db.ExecContext(ctx,
			`UPDATE accounts SET openai_api_key = ? WHERE id = ?`, openaiKey, existing.ID)
		if err != nil {
			return nil, err
		}
		existing.OpenAIKey = openaiKey
		return existing, nil
	}

	a := types.Account{
		ID:        uuid.New().String(),
		Phone:     phone,
		OpenAIKey: openaiKey,
		CreatedAt: time.Now(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, phone, openai_api_key, created_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.Phone, a.OpenAIKey, a.CreatedAt.Unix())
	if err != nil {
		return nil, err
	}
	return &a, nil
}
