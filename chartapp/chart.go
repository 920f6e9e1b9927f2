// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartapp

import (
	"context"
	"fmt"
	"log"
	"maycharts/annostore"
	"maycharts/calendar"
	"maycharts/chartmodel"
	"maycharts/config"
	"maycharts/drawing"
	"maycharts/metrics"
	"maycharts/series"
	"time"
)

const (
	MainSeries   = "main"
	VolumeSeries = "volume"

	demoCandleCount   = 300
	volumePaneStretch = 0.25
)

// NewChart creates a model for the configured symbol with a candlestick
// series, a volume pane and the configured indicators, filled with demo
// candles up to now.
func NewChart(c *config.AppConfig, sink chartmodel.IntentSink, logger *log.Logger, now time.Time) *chartmodel.Model {
	cc := &c.ChartConfig
	m := chartmodel.New(cc.ModelOptions(c.DevMode), nil, sink, logger)
	m.AddSeries(0, series.New(MainSeries, series.TypeCandlestick, series.Options{
		Title:   cc.Symbol,
		Visible: true,
	}))
	volumePane := m.AddPane(volumePaneStretch)
	m.AddSeries(volumePane, series.New(VolumeSeries, series.TypeHistogram, series.Options{
		Title:   "Volume",
		Visible: true,
	}))
	data := DemoCandles(cc.Symbol, cc.Resolution, now, demoCandleCount, calendar.NewNYSECalendar())
	m.SetCandles(MainSeries, data)
	m.SetCandles(VolumeSeries, data)
	for _, ic := range cc.Indicators {
		if _, ok := m.AddIndicator(ic.IndicatorId, ic.Properties, MainSeries); !ok {
			logger.Printf("skipping indicator %s", ic.IndicatorId)
		}
	}
	m.SetSymbol(cc.Symbol)
	return m
}

func openStore(p config.PersistenceConfig, appName string) (annostore.Store, error) {
	switch p.Backend {
	case config.BackendLocal:
		kinds := make([]string, 0, len(drawing.Kinds))
		for _, k := range drawing.Kinds {
			kinds = append(kinds, string(k))
		}
		return annostore.NewLocalStore(appName, kinds)
	case config.BackendSqlite:
		return annostore.NewSQLiteStore(p.SqlitePath)
	case config.BackendRedis:
		return annostore.NewRedisStore(annostore.RedisConfig{
			Addr:     p.RedisAddr,
			Password: p.RedisPassword,
			DB:       p.RedisDB,
		})
	case config.BackendMemory:
		return annostore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown annotation backend %q", p.Backend)
	}
}

// OpenOutbox opens the configured annotation store. If it is not available,
// annotations are kept in memory only and persistent is false.
func OpenOutbox(p config.PersistenceConfig, appName string, logger *log.Logger, m *metrics.Metrics) (outbox *annostore.Outbox, store annostore.Store, persistent bool) {
	store, err := openStore(p, appName)
	persistent = err == nil
	if err != nil {
		logger.Printf("error opening %s annotation store, annotations will not be saved: %v", p.Backend, err)
		store = annostore.NewMemoryStore()
	}
	outbox = annostore.NewOutbox(store, logger, m)
	outbox.SetTimeout(time.Duration(p.SaveTimeoutSeconds) * time.Second)
	return outbox, store, persistent
}

// LoadAnnotations reads the stored annotations of symbol.
func LoadAnnotations(ctx context.Context, outbox *annostore.Outbox, symbol string) []drawing.Annotation {
	return drawing.DecodeSets(outbox.Load(ctx, symbol))
}
