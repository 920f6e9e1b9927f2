// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"image"
	"maycharts/chartmodel"
	"maycharts/drawing"
	"maycharts/indapi/candles"
	"maycharts/pricescale"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	g := NewGlobalConfigAt(dir)
	c, err := g.Lock()
	require.NoError(t, err)
	c.ChartConfig.Symbol = "msft"
	c.ChartConfig.Resolution = candles.CandleFiveMinutes
	c.PersistenceConfig.Backend = BackendSqlite
	require.NoError(t, g.Unlock(c, false))

	file, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)
	assert.Contains(t, string(file), "fileversion: 1")
	assert.Contains(t, string(file), "resolution: 5m")
	// Defaults are not stored.
	assert.NotContains(t, string(file), "annotations.db")

	read, err := NewGlobalConfigAt(dir).Copy(false)
	require.NoError(t, err)
	assert.Equal(t, "MSFT", read.ChartConfig.Symbol)
	assert.Equal(t, candles.CandleFiveMinutes, read.ChartConfig.Resolution)
	assert.Equal(t, BackendSqlite, read.PersistenceConfig.Backend)
	assert.Equal(t, "annotations.db", read.PersistenceConfig.SqlitePath)
}

func TestUnchangedConfigIsNotWritten(t *testing.T) {
	dir := t.TempDir()
	g := NewGlobalConfigAt(dir)
	c, err := g.Lock()
	require.NoError(t, err)
	require.NoError(t, g.Unlock(c, false))
	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.True(t, os.IsNotExist(err))

	c, err = g.Lock()
	require.NoError(t, err)
	require.NoError(t, g.Unlock(c, true))
	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.NoError(t, err)
}

func TestNewerFileVersionIsRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("fileversion: 99\n"), 0600))
	_, err := NewGlobalConfigAt(dir).Copy(false)
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	c := NewAppConfig()
	c.WindowConfig.Size = image.Point{}
	c.ChartConfig.Symbol = " "
	c.ChartConfig.Resolution = 42
	c.ChartConfig.TimeScale.MinBarSpacing = -1
	c.ChartConfig.TimeScale.BarSpacing = 0
	c.ChartConfig.PriceScale.Mode = "cubic"
	c.ChartConfig.PriceScale.TopMargin = 0.8
	c.ChartConfig.PriceScale.BottomMargin = 0.5
	c.PersistenceConfig.Backend = "postgres"
	c.FeedConfig.ReconnectDelaySeconds = 60
	c.FeedConfig.MaxReconnectDelaySeconds = 1
	c.Sanitize()

	def := NewAppConfig()
	assert.Equal(t, def.WindowConfig.Size, c.WindowConfig.Size)
	assert.Equal(t, def.ChartConfig.Symbol, c.ChartConfig.Symbol)
	assert.Equal(t, candles.CandleOneDay, c.ChartConfig.Resolution)
	assert.Equal(t, def.ChartConfig.TimeScale.BarSpacing, c.ChartConfig.TimeScale.BarSpacing)
	assert.Equal(t, "normal", c.ChartConfig.PriceScale.Mode)
	assert.Equal(t, def.ChartConfig.PriceScale.TopMargin, c.ChartConfig.PriceScale.TopMargin)
	assert.Equal(t, BackendLocal, c.PersistenceConfig.Backend)
	assert.Equal(t, 60, c.FeedConfig.MaxReconnectDelaySeconds)
}

func TestModelOptions(t *testing.T) {
	c := NewChartConfig()
	c.Resolution = candles.CandleOneMinute
	c.PriceScale.Mode = "log"
	c.CrosshairMagnet = true
	c.Drawing.ClampToData = true
	c.Drawing.FibonacciLevels = []float64{0, 0.5, 1}
	o := c.ModelOptions(true)

	assert.True(t, o.DevMode)
	assert.Equal(t, candles.CandleOneMinute, o.Resolution)
	assert.Equal(t, 60.0, o.TimeScale.FallbackTimeStep)
	assert.Equal(t, pricescale.ModeLogarithmic, o.PriceScale.Mode)
	assert.Equal(t, chartmodel.CrosshairMagnet, o.CrosshairMode)
	assert.Equal(t, drawing.DragClampToData, o.DragPolicy)
	assert.Equal(t, []float64{0, 0.5, 1}, o.Annotation[drawing.KindFibonacci].Levels)
}

func TestTestConfig(t *testing.T) {
	c := NewTestConfig()
	a, err := c.Lock()
	require.NoError(t, err)
	a.LightTheme = true
	require.NoError(t, c.Unlock(a, false))
	read, _ := c.Copy(false)
	assert.True(t, read.LightTheme)
	assert.Equal(t, 1, c.Unlocks())
}

func TestConfigDirFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	g := NewGlobalConfigAt("")
	c, err := g.Lock()
	require.NoError(t, err)
	c.LightTheme = true
	require.NoError(t, g.Unlock(c, false))
	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.NoError(t, err)
}

func TestWriteKeepsDefaultsInMemory(t *testing.T) {
	g := NewGlobalConfigAt(t.TempDir())
	c, err := g.Lock()
	require.NoError(t, err)
	require.NoError(t, g.Unlock(c, true))
	read, err := g.Copy(false)
	require.NoError(t, err)
	assert.Equal(t, "annotations.db", read.PersistenceConfig.SqlitePath)
	assert.Equal(t, "localhost:6379", read.PersistenceConfig.RedisAddr)
}
