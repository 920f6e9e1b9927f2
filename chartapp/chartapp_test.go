// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartapp

import (
	"context"
	"image/png"
	"log"
	"maycharts/annostore"
	"maycharts/calendar"
	"maycharts/chartval"
	"maycharts/config"
	"maycharts/drawing"
	"maycharts/indapi/candles"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2023, 11, 27, 18, 0, 0, 0, time.UTC)

func TestDemoCandlesAreReproducible(t *testing.T) {
	cal := calendar.NewNYSECalendar()
	a := DemoCandles("SPY", candles.CandleOneDay, testNow, 50, cal)
	b := DemoCandles("SPY", candles.CandleOneDay, testNow, 50, cal)
	c := DemoCandles("QQQ", candles.CandleOneDay, testNow, 50, cal)
	require.Len(t, a, 50)
	assert.Equal(t, 0, a[10].ClosePrice.Cmp(b[10].ClosePrice))
	assert.NotEqual(t, 0, a[10].ClosePrice.Cmp(c[10].ClosePrice))
}

func TestDemoCandlesAreValid(t *testing.T) {
	cal := calendar.NewNYSECalendar()
	data := DemoCandles("SPY", candles.CandleOneDay, testNow, 100, cal)
	for i, d := range data {
		trading, _ := cal.IsTradingDay(d.Timestamp.Add(12 * time.Hour))
		assert.True(t, trading, d.Timestamp)
		if i > 0 {
			assert.True(t, data[i-1].Timestamp.Before(d.Timestamp))
		}
		high := chartval.DecimalToFloat(d.HighPrice)
		low := chartval.DecimalToFloat(d.LowPrice)
		assert.GreaterOrEqual(t, high, chartval.DecimalToFloat(d.OpenPrice))
		assert.GreaterOrEqual(t, high, chartval.DecimalToFloat(d.ClosePrice))
		assert.LessOrEqual(t, low, chartval.DecimalToFloat(d.OpenPrice))
		assert.LessOrEqual(t, low, chartval.DecimalToFloat(d.ClosePrice))
		assert.Positive(t, chartval.DecimalToFloat(d.Volume))
	}
}

func TestNewChart(t *testing.T) {
	c := config.NewAppConfig()
	m := NewChart(&c, nil, log.Default(), testNow)
	assert.Equal(t, 2, m.PaneCount())
	i, s, ok := m.FindSeries(MainSeries)
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, demoCandleCount, s.Len())
	i, s, ok = m.FindSeries(VolumeSeries)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, demoCandleCount, s.Len())
	// The default moving average is drawn on the price pane.
	assert.Len(t, m.Indicators(), 1)
	assert.Equal(t, "SPY", m.Session().Symbol())
}

func TestOpenOutboxFallsBackToMemory(t *testing.T) {
	p := config.NewAppConfig().PersistenceConfig
	p.Backend = "unknown"
	outbox, store, persistent := OpenOutbox(p, "test", log.Default(), nil)
	defer store.Close()
	assert.False(t, persistent)
	_, ok := store.(*annostore.MemoryStore)
	assert.True(t, ok)
	assert.NotNil(t, outbox)
}

func TestLoadAnnotations(t *testing.T) {
	p := config.NewAppConfig().PersistenceConfig
	p.Backend = config.BackendMemory
	outbox, store, persistent := OpenOutbox(p, "test", log.Default(), nil)
	defer store.Close()
	assert.True(t, persistent)

	a := drawing.NewAnnotation(drawing.KindTrendline,
		drawing.Anchor{Time: float64(testNow.Add(-48 * time.Hour).Unix()), Price: 100},
		drawing.Anchor{Time: float64(testNow.Unix()), Price: 110},
		drawing.Options{LineWidth: 1})
	r, err := drawing.ToRecord(a)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "SPY", string(drawing.KindTrendline), annostore.Set{a.ID: r}))

	annos := LoadAnnotations(context.Background(), outbox, "SPY")
	require.Len(t, annos, 1)
	assert.Equal(t, a.ID, annos[0].ID)
	assert.Equal(t, a.P2, annos[0].P2)
}

func TestSnapshot(t *testing.T) {
	c := config.NewTestConfig()
	appConfig, err := c.Lock()
	require.NoError(t, err)
	appConfig.PersistenceConfig.Backend = config.BackendMemory
	appConfig.WindowConfig.Size.X = 320
	appConfig.WindowConfig.Size.Y = 240
	require.NoError(t, c.Unlock(appConfig, false))

	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, Snapshot(context.Background(), c, path, log.Default()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}
