package store

import (
	"context"
	"fmt"
)

// WriteRun inserts a run and its branches in one transaction.
// Uses ON CONFLICT DO NOTHING for idempotency - writing the same run token
// twice is silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (token, circuit_hash, mode)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, run.Token, run.CircuitHash, run.Mode)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	// A duplicate token means the whole run is already logged.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	for i, b := range run.Branches {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO branches (run_token, idx, probability, cbits)
			VALUES (?, ?, ?, ?)
		`, run.Token, i, b.Probability, encodeCbits(b.Cbits))
		if err != nil {
			return fmt.Errorf("write run branch %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}
