// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annostore

import (
	"context"
	"fmt"
	"log"
	"maycharts/metrics"
	"sync"
	"time"

	"github.com/zhangyunhao116/skipmap"
)

const DefaultSaveTimeout = 10 * time.Second

// Intent is the latest snapshot of one annotation kind of a symbol.
// A partial intent was taken before the stored annotations were loaded. Its
// records are merged into the stored set per id, Removed ids are dropped.
type Intent struct {
	Symbol  string
	Kind    string
	Records Set
	Partial bool
	Removed []string
}

func (i Intent) key() string {
	return i.Symbol + "/" + i.Kind
}

func (i Intent) mergeInto(stored Set) Set {
	if !i.Partial {
		return i.Records
	}
	out := make(Set, len(stored)+len(i.Records))
	for id, r := range stored {
		out[id] = r
	}
	for _, id := range i.Removed {
		delete(out, id)
	}
	for id, r := range i.Records {
		out[id] = r
	}
	return out
}

// Outbox decouples annotation mutations from saving them. Enqueue never
// blocks; only the latest intent per symbol and kind is kept until it is
// drained by Run or Flush. Failed saves are logged and dropped.
type Outbox struct {
	store   Store
	pending *skipmap.StringMap[Intent]
	wake    chan struct{}
	timeout time.Duration
	logger  *log.Logger
	metrics *metrics.Metrics
	drain   sync.Mutex
}

func NewOutbox(store Store, logger *log.Logger, m *metrics.Metrics) *Outbox {
	if logger == nil {
		logger = log.Default()
	}
	return &Outbox{
		store:   store,
		pending: skipmap.NewString[Intent](),
		wake:    make(chan struct{}, 1),
		timeout: DefaultSaveTimeout,
		logger:  logger,
		metrics: m,
	}
}

func (o *Outbox) SetTimeout(d time.Duration) {
	o.timeout = d
}

func (o *Outbox) Enqueue(i Intent) {
	o.pending.Store(i.key(), i)
	select {
	case o.wake <- struct{}{}:
	default:
		// already woken
	}
}

func (o *Outbox) Pending() int {
	return o.pending.Len()
}

// Run drains the outbox until ctx is done. Pending intents are saved one
// last time on exit.
func (o *Outbox) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), o.timeout)
			o.Flush(flushCtx)
			cancel()
			return
		case <-o.wake:
			o.Flush(ctx)
		}
	}
}

// Flush saves all pending intents and returns the number of failures.
func (o *Outbox) Flush(ctx context.Context) int {
	o.drain.Lock()
	defer o.drain.Unlock()
	var keys []string
	o.pending.Range(func(k string, _ Intent) bool {
		keys = append(keys, k)
		return true
	})
	failures := 0
	for _, k := range keys {
		i, ok := o.pending.LoadAndDelete(k)
		if !ok {
			continue
		}
		if err := o.save(ctx, i); err != nil {
			failures++
			o.logger.Printf("error saving %s annotations of %s: %v", i.Kind, i.Symbol, err)
			if o.metrics != nil {
				o.metrics.PersistFailures.Inc()
			}
			continue
		}
		if o.metrics != nil {
			o.metrics.PersistSaves.Inc()
		}
	}
	return failures
}

func (o *Outbox) save(ctx context.Context, i Intent) error {
	saveCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	records := i.Records
	if i.Partial {
		sets, err := o.store.Load(saveCtx, i.Symbol)
		if err != nil {
			return fmt.Errorf("loading %s annotations to merge: %w", i.Kind, err)
		}
		records = i.mergeInto(sets[i.Kind])
	}
	return o.store.Save(saveCtx, i.Symbol, i.Kind, records)
}

// Load reads the annotations of a symbol. Errors are logged and yield an
// empty result, so that a chart can always be built.
// Load waits for a running flush, so that an intent being saved is seen
// either as pending or as stored.
func (o *Outbox) Load(ctx context.Context, symbol string) map[string]Set {
	o.drain.Lock()
	defer o.drain.Unlock()
	loadCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	sets, err := o.store.Load(loadCtx, symbol)
	if err != nil {
		o.logger.Printf("error loading annotations of %s: %v", symbol, err)
		if o.metrics != nil {
			o.metrics.PersistLoadErrs.Inc()
		}
		return map[string]Set{}
	}
	// Pending snapshots are newer than what is stored.
	o.pending.Range(func(_ string, i Intent) bool {
		if i.Symbol == symbol {
			sets[i.Kind] = i.mergeInto(sets[i.Kind])
		}
		return true
	})
	return sets
}
