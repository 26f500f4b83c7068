package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gaq/internal/session"
)

// Entry summarizes one stored flash entry.
type Entry struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
	Early     int    `json:"early"`  // number of early segments
	Normal    int    `json:"normal"` // number of normal segments
	Digest    string `json:"digest"`
}

// GetFlash returns the phases stored for (sessionID, key).
// ok is false when no row exists.
func (s *Store) GetFlash(ctx context.Context, sessionID, key string) (p session.Phases, ok bool, err error) {
	var earlyJSON, normalJSON string
	err = s.db.QueryRowContext(ctx, `
		SELECT early, normal FROM flash_entries
		WHERE session_id = ? AND key = ?
	`, sessionID, key).Scan(&earlyJSON, &normalJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Phases{}, false, nil
	}
	if err != nil {
		return session.Phases{}, false, fmt.Errorf("read flash: %w", err)
	}

	if p.Early, err = unmarshalSegments(earlyJSON); err != nil {
		return session.Phases{}, false, fmt.Errorf("read flash %s/%s early: %w", sessionID, key, err)
	}
	if p.Normal, err = unmarshalSegments(normalJSON); err != nil {
		return session.Phases{}, false, fmt.Errorf("read flash %s/%s normal: %w", sessionID, key, err)
	}
	return p, true, nil
}

// Sessions lists all stored entries ordered by session id then key.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) Sessions(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, key, early, normal, digest
		FROM flash_entries
		ORDER BY session_id COLLATE BINARY ASC, key COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var earlyJSON, normalJSON string
		if err := rows.Scan(&e.SessionID, &e.Key, &earlyJSON, &normalJSON, &e.Digest); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		early, err := unmarshalSegments(earlyJSON)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", e.SessionID, err)
		}
		normal, err := unmarshalSegments(normalJSON)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", e.SessionID, err)
		}
		e.Early, e.Normal = len(early), len(normal)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}
