// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indapi

import (
	"image/color"
	"math"
	"maycharts/chartval"
	"maycharts/indapi/candles"
	"sync"
	"time"

	"github.com/ericlagergren/decimal"
)

type IndicatorId string

// For sorting
type IndicatorList []IndicatorId

func (x IndicatorList) Len() int           { return len(x) }
func (x IndicatorList) Less(i, j int) bool { return x[i] < x[j] }
func (x IndicatorList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

type CandleData struct {
	Timestamp  time.Time
	OpenPrice  *decimal.Big
	HighPrice  *decimal.Big
	LowPrice   *decimal.Big
	ClosePrice *decimal.Big
	Volume     *decimal.Big
}

// For sorting
type CandleList []CandleData

func (x CandleList) Len() int           { return len(x) }
func (x CandleList) Less(i, j int) bool { return x[i].Timestamp.Before(x[j].Timestamp) }
func (x CandleList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

// Columns holds float copies of candle data, one slice per field.
type Columns struct {
	LastUpdate  time.Time
	Timestamps  []time.Time
	OpenPrices  []float64
	HighPrices  []float64
	LowPrices   []float64
	ClosePrices []float64
	Volumes     []float64
}

type PlotData struct {
	Data           []CandleData
	DataLastChange time.Time
	DataMutex      *sync.RWMutex
	Cache          Columns
}

func NewPlotData() *PlotData {
	return &PlotData{DataMutex: new(sync.RWMutex)}
}

// SetData replaces the candles and refreshes the float columns.
// The caller must not hold the mutex.
func (p *PlotData) SetData(data []CandleData, now time.Time) {
	p.DataMutex.Lock()
	defer p.DataMutex.Unlock()
	p.Data = data
	p.DataLastChange = now
	p.updateCache()
}

// Upsert replaces the candle with the same timestamp or appends a newer one.
// Candles older than the last one and not already present are dropped.
func (p *PlotData) Upsert(c CandleData, now time.Time) bool {
	p.DataMutex.Lock()
	defer p.DataMutex.Unlock()
	n := len(p.Data)
	switch {
	case n > 0 && p.Data[n-1].Timestamp.Equal(c.Timestamp):
		p.Data[n-1] = c
	case n == 0 || p.Data[n-1].Timestamp.Before(c.Timestamp):
		p.Data = append(p.Data, c)
	default:
		return false
	}
	p.DataLastChange = now
	p.updateCache()
	return true
}

func (p *PlotData) updateCache() {
	c := &p.Cache
	c.Timestamps = c.Timestamps[:0]
	c.OpenPrices = c.OpenPrices[:0]
	c.HighPrices = c.HighPrices[:0]
	c.LowPrices = c.LowPrices[:0]
	c.ClosePrices = c.ClosePrices[:0]
	c.Volumes = c.Volumes[:0]
	for i := range p.Data {
		d := &p.Data[i]
		c.Timestamps = append(c.Timestamps, d.Timestamp)
		c.OpenPrices = append(c.OpenPrices, chartval.DecimalToFloat(d.OpenPrice))
		c.HighPrices = append(c.HighPrices, chartval.DecimalToFloat(d.HighPrice))
		c.LowPrices = append(c.LowPrices, chartval.DecimalToFloat(d.LowPrice))
		c.ClosePrices = append(c.ClosePrices, chartval.DecimalToFloat(d.ClosePrice))
		c.Volumes = append(c.Volumes, chartval.DecimalToFloat(d.Volume))
	}
	c.LastUpdate = p.DataLastChange
}

type PaneType int

const (
	PaneTypePrice PaneType = iota
	PaneTypeVolume
	PaneTypeOscillator
)

// IndicatorLine is one output line of an indicator. Values are aligned with
// Timestamps; NaN marks positions without a value.
type IndicatorLine struct {
	Name       string
	Timestamps []time.Time
	Values     []float64
	Color      color.NRGBA
}

type IndicatorData interface {
	Update(r candles.CandleResolution, data *PlotData)
	Lines(defaultColor color.NRGBA) []IndicatorLine
	GetId() IndicatorId
	GetProperties() map[string]string
	SetProperties(map[string]string)
	GetColors() []color.NRGBA
	SetColors([]color.NRGBA)
	GetPaneType() PaneType
}

func GetMinColors(c []color.NRGBA, numColors int) []color.NRGBA {
	for len(c) < numColors {
		c = append(c, color.NRGBA{})
	}
	return c
}

func GetNormalisedColors(c []color.NRGBA, def color.NRGBA) []color.NRGBA {
	out := make([]color.NRGBA, len(c))
	for i := range c {
		out[i] = c[i]
		if empty := (color.NRGBA{}); c[i] == empty {
			out[i] = def
		}
	}
	return out
}

// AlignRight pads a result that is shorter than the input with leading NaNs,
// so that the last value belongs to the last candle.
func AlignRight(values []float64, n int) []float64 {
	if len(values) >= n {
		return values[len(values)-n:]
	}
	out := make([]float64, n)
	pad := n - len(values)
	for i := 0; i < pad; i++ {
		out[i] = math.NaN()
	}
	copy(out[pad:], values)
	return out
}
