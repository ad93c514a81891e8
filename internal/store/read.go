package store

import (
	"context"
	"fmt"
)

// ListRuns returns every logged run for a circuit hash, oldest first.
// Tokens are UUIDv7, so ordering by token is chronological.
//
// Returns an empty slice (not nil) if no runs are logged for the hash.
func (s *Store) ListRuns(ctx context.Context, circuitHash string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, circuit_hash, mode
		FROM runs
		WHERE circuit_hash = ?
		ORDER BY token COLLATE BINARY ASC
	`, circuitHash)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Token, &r.CircuitHash, &r.Mode); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range runs {
		branches, err := s.readBranches(ctx, runs[i].Token)
		if err != nil {
			return nil, err
		}
		runs[i].Branches = branches
	}

	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}

func (s *Store) readBranches(ctx context.Context, token string) ([]BranchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT probability, cbits
		FROM branches
		WHERE run_token = ?
		ORDER BY idx ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query branches: %w", err)
	}
	defer rows.Close()

	var out []BranchRecord
	for rows.Next() {
		var b BranchRecord
		var cbits string
		if err := rows.Scan(&b.Probability, &cbits); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		b.Cbits, err = decodeCbits(cbits)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}
	return out, nil
}
