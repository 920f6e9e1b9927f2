// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annostore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one row per symbol and kind.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers and keeps in-memory databases alive.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS annotations (
		symbol     TEXT NOT NULL,
		kind       TEXT NOT NULL,
		records    TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
		PRIMARY KEY (symbol, kind)
	)`)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, symbol string, kind string, records Set) error {
	b, err := encodeSet(records)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO annotations (symbol, kind, records) VALUES (?, ?, ?)
		 ON CONFLICT(symbol, kind) DO UPDATE SET records = excluded.records, updated_at = strftime('%s','now')`,
		symbol, kind, string(b))
	if err != nil {
		return fmt.Errorf("save %s annotations of %s: %w", kind, symbol, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, symbol string) (map[string]Set, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, records FROM annotations WHERE symbol = ?`, symbol)
	if err != nil {
		return nil, fmt.Errorf("load annotations of %s: %w", symbol, err)
	}
	defer rows.Close()
	out := make(map[string]Set)
	for rows.Next() {
		var kind, raw string
		if err := rows.Scan(&kind, &raw); err != nil {
			return nil, fmt.Errorf("scan annotations of %s: %w", symbol, err)
		}
		set, err := decodeSet([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("decode %s annotations of %s: %w", kind, symbol, err)
		}
		out[kind] = set
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
