// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package rsi

import (
	"image/color"
	"log"
	"math"
	"maycharts/indapi"
	"maycharts/indapi/candles"
	"maycharts/indapi/properties"
	"strconv"
	"time"

	"github.com/cinar/indicator"
)

type Indicator struct {
	timestamps     []time.Time
	result         []float64
	dataLastChange time.Time
	numPeriods     int
	colors         []color.NRGBA
}

const Id = "rsi"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{numPeriods: 14}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{
		"Time Periods": strconv.Itoa(d.numPeriods),
	}
}

func (d *Indicator) SetProperties(prop map[string]string) {
	for key, value := range prop {
		switch key {
		case "Time Periods":
			properties.SetPositive(&d.numPeriods, key, value)
		default:
			log.Printf("unknown property %s was ignored", key)
		}
	}
}

func (d *Indicator) GetColors() []color.NRGBA {
	return indapi.GetMinColors(d.colors, 1)
}

func (d *Indicator) SetColors(c []color.NRGBA) {
	d.colors = indapi.GetMinColors(c, 1)
}

func (d *Indicator) Update(r candles.CandleResolution, data *indapi.PlotData) {
	data.DataMutex.RLock()
	defer data.DataMutex.RUnlock()
	if !d.dataLastChange.Equal(data.DataLastChange) || d.result == nil {
		d.dataLastChange = data.DataLastChange
		n := len(data.Cache.ClosePrices)
		d.timestamps = append(d.timestamps[:0], data.Cache.Timestamps...)
		if n <= d.numPeriods {
			d.result = indapi.AlignRight(nil, n)
			return
		}
		_, values := indicator.RsiPeriod(d.numPeriods, data.Cache.ClosePrices)
		d.result = indapi.AlignRight(values, n)
		for i := 0; i < d.numPeriods && i < n; i++ {
			d.result[i] = math.NaN()
		}
	}
}

func (d *Indicator) Lines(defaultColor color.NRGBA) []indapi.IndicatorLine {
	c := indapi.GetNormalisedColors(d.GetColors(), defaultColor)
	return []indapi.IndicatorLine{
		{Name: "RSI " + strconv.Itoa(d.numPeriods), Timestamps: d.timestamps, Values: d.result, Color: c[0]},
	}
}

func (d *Indicator) GetPaneType() indapi.PaneType {
	return indapi.PaneTypeOscillator
}
