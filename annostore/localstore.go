// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annostore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"github.com/lotodore/localcache"
)

// LocalStore keeps one JSON file per symbol and kind in the user cache directory.
type LocalStore struct {
	data  *localcache.Cache
	kinds []string
	mutex sync.Mutex
}

// NewLocalStore opens the store below the user cache directory. Load only
// looks for the given kinds.
func NewLocalStore(name string, kinds []string) (*LocalStore, error) {
	c, err := localcache.New(name)
	if err != nil {
		return nil, fmt.Errorf("error initializing annotation cache: %w", err)
	}
	return &LocalStore{data: c, kinds: kinds}, nil
}

func cacheKey(symbol, kind string) string {
	return "annotations_" + symbol + "_" + kind
}

func (s *LocalStore) Save(ctx context.Context, symbol string, kind string, records Set) error {
	b, err := encodeSet(records)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(records) == 0 {
		err = s.data.Remove(cacheKey(symbol, kind))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error removing %s annotations of %s: %w", kind, symbol, err)
		}
		return nil
	}
	if err := s.data.WriteFile(cacheKey(symbol, kind), b); err != nil {
		return fmt.Errorf("error writing %s annotations of %s: %w", kind, symbol, err)
	}
	return nil
}

func (s *LocalStore) Load(ctx context.Context, symbol string) (map[string]Set, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make(map[string]Set)
	for _, kind := range s.kinds {
		key := cacheKey(symbol, kind)
		raw, err := s.data.ReadFile(key)
		if err != nil {
			// Nothing stored yet.
			continue
		}
		set, err := decodeSet(raw)
		if err != nil {
			log.Printf("%s annotation cache of %s contains invalid data", kind, symbol)
			if err := s.data.Remove(key); err != nil {
				log.Printf("error deleting cache %s, annotations may be invalid", key)
			}
			continue
		}
		out[kind] = set
	}
	return out, nil
}

func (s *LocalStore) Close() error {
	return nil
}
