package db

import (
	"context"
	"time"
)

// MarkEventProcessed records a provider-assigned message id and reports
// whether it was seen for the first time. A false return means the event is
// a redelivery and must be dropped before any model call or insert.
func (s *Store) MarkEventProcessed(ctx context.Context, messageID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_events (message_id, seen_at) VALUES (?, ?)`,
		messageID, time.Now().Unix())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeProcessedEvents drops idempotency rows older than maxAge. The
// provider stops redelivering long before then, so the table stays small.
func (s *Store) PurgeProcessedEvents(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge).Unix()
	_, err := s.db.ExecContext(ctx, `DELETE FROM processed_events WHERE seen_at < ?`, cutoff)
	return err
}
