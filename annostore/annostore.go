// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annostore

import (
	"context"
	"encoding/json"
	"errors"
)

// Record is one persisted annotation.
type Record struct {
	Data    json.RawMessage `json:"data"`
	Options json.RawMessage `json:"options"`
}

// Set maps annotation ids to records.
type Set map[string]Record

// Store persists the annotations of a symbol, one set per annotation kind.
// Save replaces the complete set of a kind.
type Store interface {
	Save(ctx context.Context, symbol string, kind string, records Set) error
	Load(ctx context.Context, symbol string) (map[string]Set, error)
	Close() error
}

var ErrClosed = errors.New("annotation store is closed")

func encodeSet(s Set) ([]byte, error) {
	if s == nil {
		s = Set{}
	}
	return json.Marshal(s)
}

func decodeSet(b []byte) (Set, error) {
	var s Set
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = Set{}
	}
	return s, nil
}
