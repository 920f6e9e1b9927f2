// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stochastics

import (
	"image/color"
	"log"
	"maycharts/indapi"
	"maycharts/indapi/candles"
	"time"

	"github.com/cinar/indicator"
)

type Indicator struct {
	timestamps     []time.Time
	k              []float64
	d              []float64
	dataLastChange time.Time
	colors         []color.NRGBA
}

const Id = "stochastics"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{}
}

func (d *Indicator) SetProperties(prop map[string]string) {
	for key := range prop {
		log.Printf("unknown property %s was ignored", key)
	}
}

func (d *Indicator) GetColors() []color.NRGBA {
	return indapi.GetMinColors(d.colors, 2)
}

func (d *Indicator) SetColors(c []color.NRGBA) {
	d.colors = c
}

func (d *Indicator) Update(r candles.CandleResolution, data *indapi.PlotData) {
	data.DataMutex.RLock()
	defer data.DataMutex.RUnlock()
	if !d.dataLastChange.Equal(data.DataLastChange) || d.k == nil {
		d.dataLastChange = data.DataLastChange
		n := len(data.Cache.ClosePrices)
		k, dd := indicator.StochasticOscillator(data.Cache.HighPrices, data.Cache.LowPrices, data.Cache.ClosePrices)
		d.k = indapi.AlignRight(k, n)
		d.d = indapi.AlignRight(dd, n)
		d.timestamps = append(d.timestamps[:0], data.Cache.Timestamps...)
	}
}

func (d *Indicator) Lines(defaultColor color.NRGBA) []indapi.IndicatorLine {
	c := indapi.GetNormalisedColors(d.GetColors(), defaultColor)
	return []indapi.IndicatorLine{
		{Name: "%K", Timestamps: d.timestamps, Values: d.k, Color: c[0]},
		{Name: "%D", Timestamps: d.timestamps, Values: d.d, Color: c[1]},
	}
}

func (d *Indicator) GetPaneType() indapi.PaneType {
	return indapi.PaneTypeOscillator
}
