// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annostore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"maycharts/metrics"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Save(ctx context.Context, symbol string, kind string, records Set) error {
	return errors.New("disk full")
}

func (failingStore) Load(ctx context.Context, symbol string) (map[string]Set, error) {
	return nil, errors.New("disk full")
}

func (failingStore) Close() error { return nil }

func testSet(n int) Set {
	s := Set{}
	for i := 0; i < n; i++ {
		s[string(rune('a'+i))] = Record{
			Data:    json.RawMessage(`{"p1":{"time":100,"price":50}}`),
			Options: json.RawMessage(`{}`),
		}
	}
	return s
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	sets, err := s.Load(ctx, "AAPL")
	require.NoError(t, err)
	assert.Empty(t, sets)

	require.NoError(t, s.Save(ctx, "AAPL", "trendline", testSet(2)))
	require.NoError(t, s.Save(ctx, "AAPL", "fibonacci", testSet(1)))
	require.NoError(t, s.Save(ctx, "AAPL", "trendline", testSet(3)))
	require.NoError(t, s.Save(ctx, "MSFT", "trendline", testSet(1)))

	sets, err = s.Load(ctx, "AAPL")
	require.NoError(t, err)
	assert.Len(t, sets, 2)
	assert.Len(t, sets["trendline"], 3)
	assert.JSONEq(t, `{"p1":{"time":100,"price":50}}`, string(sets["fibonacci"]["a"].Data))

	require.NoError(t, s.Save(ctx, "AAPL", "fibonacci", Set{}))
	sets, err = s.Load(ctx, "AAPL")
	require.NoError(t, err)
	assert.Empty(t, sets["fibonacci"])
	assert.NoError(t, s.Close())
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "annotations.db"))
	require.NoError(t, err)
	testStore(t, s)
}

func TestLocalStore(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	s, err := NewLocalStore("maycharts-test", []string{"trendline", "fibonacci"})
	require.NoError(t, err)
	testStore(t, s)
}

func TestRedisStoreUnreachable(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestOutboxCoalesces(t *testing.T) {
	store := NewMemoryStore()
	m := metrics.New(nil)
	o := NewOutbox(store, quietLogger(), m)
	for i := 1; i <= 5; i++ {
		o.Enqueue(Intent{Symbol: "AAPL", Kind: "trendline", Records: testSet(i)})
	}
	o.Enqueue(Intent{Symbol: "AAPL", Kind: "fibonacci", Records: testSet(1)})
	assert.Equal(t, 2, o.Pending())

	assert.Equal(t, 0, o.Flush(context.Background()))
	assert.Equal(t, 2, store.Saves())
	assert.Equal(t, 0, o.Pending())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PersistSaves))

	sets, err := store.Load(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Len(t, sets["trendline"], 5)
}

func TestOutboxSwallowsFailures(t *testing.T) {
	m := metrics.New(nil)
	o := NewOutbox(failingStore{}, quietLogger(), m)
	o.Enqueue(Intent{Symbol: "AAPL", Kind: "trendline", Records: testSet(1)})
	o.Enqueue(Intent{Symbol: "MSFT", Kind: "trendline", Records: testSet(1)})
	assert.Equal(t, 2, o.Flush(context.Background()))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PersistFailures))
	assert.Equal(t, 0, o.Pending())

	sets := o.Load(context.Background(), "AAPL")
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistLoadErrs))
}

func TestOutboxLoadPrefersPending(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "AAPL", "trendline", testSet(1)))
	o := NewOutbox(store, quietLogger(), nil)
	o.Enqueue(Intent{Symbol: "AAPL", Kind: "trendline", Records: testSet(4)})
	sets := o.Load(context.Background(), "AAPL")
	assert.Len(t, sets["trendline"], 4)
}

func TestOutboxMergesPartialIntents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "AAPL", "trendline", testSet(3)))
	o := NewOutbox(store, quietLogger(), nil)
	o.Enqueue(Intent{
		Symbol:  "AAPL",
		Kind:    "trendline",
		Records: Set{"z": Record{Data: json.RawMessage(`{}`)}},
		Partial: true,
		Removed: []string{"b"},
	})

	sets := o.Load(ctx, "AAPL")
	assert.ElementsMatch(t, []string{"a", "c", "z"}, keys(sets["trendline"]))

	assert.Equal(t, 0, o.Flush(ctx))
	sets, err := store.Load(ctx, "AAPL")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c", "z"}, keys(sets["trendline"]))
}

func TestOutboxDropsPartialIntentWhenStoreFails(t *testing.T) {
	m := metrics.New(nil)
	o := NewOutbox(failingStore{}, quietLogger(), m)
	o.Enqueue(Intent{Symbol: "AAPL", Kind: "trendline", Records: testSet(1), Partial: true})
	assert.Equal(t, 1, o.Flush(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures))
}

func keys(s Set) []string {
	var out []string
	for k := range s {
		out = append(out, k)
	}
	return out
}

func TestOutboxRun(t *testing.T) {
	store := NewMemoryStore()
	o := NewOutbox(store, quietLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		o.Run(ctx)
		close(done)
	}()
	o.Enqueue(Intent{Symbol: "AAPL", Kind: "trendline", Records: testSet(1)})
	assert.Eventually(t, func() bool { return store.Saves() == 1 }, time.Second, time.Millisecond*5)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("outbox did not stop")
	}
}
