package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/session"
)

// SetFlash stores both phases for (sessionID, key), replacing any previous
// value. Returns changed=false when the stored digest already matches.
func (s *Store) SetFlash(ctx context.Context, sessionID, key string, p session.Phases) (changed bool, err error) {
	if sessionID == "" {
		return false, fmt.Errorf("write flash: session id is required")
	}

	earlyJSON, err := marshalSegments(p.Early)
	if err != nil {
		return false, fmt.Errorf("write flash: %w", err)
	}
	normalJSON, err := marshalSegments(p.Normal)
	if err != nil {
		return false, fmt.Errorf("write flash: %w", err)
	}
	digest, err := ir.SegmentsDigest(p.Early, p.Normal)
	if err != nil {
		return false, fmt.Errorf("write flash: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write flash: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var existing string
	err = tx.QueryRowContext(ctx, `
		SELECT digest FROM flash_entries
		WHERE session_id = ? AND key = ?
	`, sessionID, key).Scan(&existing)
	switch {
	case err == nil && existing == digest:
		return false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("write flash: select digest: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO flash_entries (session_id, key, early, normal, digest)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET
			early = excluded.early,
			normal = excluded.normal,
			digest = excluded.digest
	`, sessionID, key, earlyJSON, normalJSON, digest)
	if err != nil {
		return false, fmt.Errorf("write flash: upsert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write flash: commit: %w", err)
	}
	return true, nil
}

// DeleteSession removes every flash entry of a session and returns the
// number of rows removed.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM flash_entries WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("delete session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete session: rows affected: %w", err)
	}
	return n, nil
}
