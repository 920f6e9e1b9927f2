// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annostore

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mutex  sync.Mutex
	data   map[string]map[string][]byte
	saves  int
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Save(ctx context.Context, symbol string, kind string, records Set) error {
	b, err := encodeSet(records)
	if err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.data[symbol] == nil {
		m.data[symbol] = make(map[string][]byte)
	}
	m.data[symbol][kind] = b
	m.saves++
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, symbol string) (map[string]Set, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make(map[string]Set)
	for kind, b := range m.data[symbol] {
		s, err := decodeSet(b)
		if err != nil {
			return nil, err
		}
		out[kind] = s
	}
	return out, nil
}

// Saves returns the number of successful saves.
func (m *MemoryStore) Saves() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.saves
}

func (m *MemoryStore) Close() error {
	m.mutex.Lock()
	m.closed = true
	m.mutex.Unlock()
	return nil
}
