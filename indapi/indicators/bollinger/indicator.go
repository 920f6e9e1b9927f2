// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package bollinger

import (
	"image/color"
	"log"
	"maycharts/chartval"
	"maycharts/indapi"
	"maycharts/indapi/calc"
	"maycharts/indapi/candles"
	"maycharts/indapi/properties"
	"strconv"
	"time"

	"github.com/ericlagergren/decimal"
)

type Indicator struct {
	timestamps     []time.Time
	top            []float64
	mid            []float64
	bottom         []float64
	dataLastChange time.Time
	timeUnits      int
	bandWidth      int
	colors         []color.NRGBA
}

const Id = "bollinger"

func NewIndicator() indapi.IndicatorData {
	return &Indicator{timeUnits: 20, bandWidth: 2}
}

func (d *Indicator) GetId() indapi.IndicatorId {
	return Id
}

func (d *Indicator) GetProperties() map[string]string {
	return map[string]string{
		"Width":      strconv.Itoa(d.bandWidth),
		"Time Units": strconv.Itoa(d.timeUnits),
	}
}

func (d *Indicator) SetProperties(prop map[string]string) {
	for key, value := range prop {
		switch key {
		case "Width":
			properties.SetPositive(&d.bandWidth, key, value)
		case "Time Units":
			properties.SetPositive(&d.timeUnits, key, value)
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
	if d.dataLastChange.Equal(data.DataLastChange) && d.mid != nil {
		return
	}
	d.dataLastChange = data.DataLastChange
	d.timestamps = d.timestamps[:0]
	d.top = d.top[:0]
	d.mid = d.mid[:0]
	d.bottom = d.bottom[:0]
	width := decimal.New(int64(d.bandWidth), 0)
	for i := range data.Data {
		d.timestamps = append(d.timestamps, data.Data[i].Timestamp)
		bottom, mean, top := calc.Band(calc.Window(data.Data, i, d.timeUnits), width)
		d.top = append(d.top, chartval.DecimalToFloat(top))
		d.mid = append(d.mid, chartval.DecimalToFloat(mean))
		d.bottom = append(d.bottom, chartval.DecimalToFloat(bottom))
	}
}

func (d *Indicator) Lines(defaultColor color.NRGBA) []indapi.IndicatorLine {
	c := indapi.GetNormalisedColors(d.GetColors(), defaultColor)
	return []indapi.IndicatorLine{
		{Name: "BB upper", Timestamps: d.timestamps, Values: d.top, Color: c[0]},
		{Name: "BB mid", Timestamps: d.timestamps, Values: d.mid, Color: c[0]},
		{Name: "BB lower", Timestamps: d.timestamps, Values: d.bottom, Color: c[0]},
	}
}

func (d *Indicator) GetPaneType() indapi.PaneType {
	return indapi.PaneTypePrice
}
