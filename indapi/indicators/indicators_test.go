// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indicators

import (
	"image/color"
	"math"
	"maycharts/indapi"
	"maycharts/indapi/candles"
	"maycharts/indapi/indicators/bollinger"
	"maycharts/indapi/indicators/rsi"
	"testing"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData(n int) *indapi.PlotData {
	p := indapi.NewPlotData()
	var data []indapi.CandleData
	for i := 0; i < n; i++ {
		c := decimal.New(int64(100+i%7), 0)
		data = append(data, indapi.CandleData{
			Timestamp:  time.Unix(int64(i)*60, 0),
			OpenPrice:  c,
			HighPrice:  new(decimal.Big).Add(c, decimal.New(1, 0)),
			LowPrice:   new(decimal.Big).Sub(c, decimal.New(1, 0)),
			ClosePrice: c,
			Volume:     decimal.New(10, 0),
		})
	}
	p.SetData(data, time.Unix(1, 0))
	return p
}

func TestGetList(t *testing.T) {
	assert.Equal(t, indapi.IndicatorList{"bollinger", "rsi", "sma", "stochastics"}, GetList())
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("macd", nil, nil)
	assert.Error(t, err)
}

func TestSmaLines(t *testing.T) {
	ind, err := Create(DefaultId, map[string]string{"Time Periods": "3"}, nil)
	require.NoError(t, err)
	ind.Update(candles.CandleOneMinute, testData(10))
	lines := ind.Lines(color.NRGBA{R: 1, A: 255})
	require.Len(t, lines, 1)
	v := lines[0].Values
	require.Len(t, v, 10)
	assert.True(t, math.IsNaN(v[0]))
	assert.True(t, math.IsNaN(v[1]))
	assert.InDelta(t, 101, v[2], 1e-9)
	assert.Equal(t, color.NRGBA{R: 1, A: 255}, lines[0].Color)
	assert.Equal(t, indapi.PaneTypePrice, ind.GetPaneType())
}

func TestRsiOscillator(t *testing.T) {
	ind, err := Create(rsi.Id, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, indapi.PaneTypeOscillator, ind.GetPaneType())
	ind.Update(candles.CandleOneMinute, testData(40))
	v := ind.Lines(color.NRGBA{})[0].Values
	require.Len(t, v, 40)
	for _, x := range v[14:] {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 100.0)
	}
}

func TestBollingerBands(t *testing.T) {
	ind, err := Create(bollinger.Id, nil, nil)
	require.NoError(t, err)
	ind.Update(candles.CandleOneMinute, testData(30))
	lines := ind.Lines(color.NRGBA{})
	require.Len(t, lines, 3)
	for i := range lines[1].Values {
		assert.GreaterOrEqual(t, lines[0].Values[i], lines[1].Values[i])
		assert.LessOrEqual(t, lines[2].Values[i], lines[1].Values[i])
	}
}
