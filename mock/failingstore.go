// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"context"
	"errors"
	"maycharts/annostore"
	"sync/atomic"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// FailingStore rejects every call.
type FailingStore struct {
	saves atomic.Int32
}

func (s *FailingStore) Save(ctx context.Context, symbol string, kind string, records annostore.Set) error {
	s.saves.Add(1)
	return ErrStoreUnavailable
}

func (s *FailingStore) Load(ctx context.Context, symbol string) (map[string]annostore.Set, error) {
	return nil, ErrStoreUnavailable
}

func (s *FailingStore) Close() error {
	return nil
}

// Saves is the number of attempted saves.
func (s *FailingStore) Saves() int {
	return int(s.saves.Load())
}
