// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartapp

import (
	"hash/fnv"
	"math"
	"maycharts/calendar"
	"maycharts/chartval"
	"maycharts/indapi"
	"maycharts/indapi/candles"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	demoStartPrice = 100.
	demoVolatility = 0.015
	demoVolume     = 1e6
)

func symbolSeed(symbol string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return h.Sum64()
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// DemoCandles generates n candles ending at end for trading times of the
// calendar. The prices are a random walk which is the same for every call
// with the same symbol.
func DemoCandles(symbol string, r candles.CandleResolution, end time.Time, n int, cal calendar.MarketCalendar) []indapi.CandleData {
	times := cal.CandleTimes(end, r, n)
	src := rand.NewSource(symbolSeed(symbol))
	returns := distuv.Normal{Mu: 0, Sigma: demoVolatility, Src: src}
	volumes := distuv.LogNormal{Mu: math.Log(demoVolume), Sigma: 0.4, Src: src}

	data := make([]indapi.CandleData, 0, len(times))
	last := demoStartPrice
	for _, t := range times {
		o := last
		c := o * math.Exp(returns.Rand())
		high := math.Max(o, c) * (1 + math.Abs(returns.Rand())/2)
		low := math.Min(o, c) * (1 - math.Abs(returns.Rand())/2)
		data = append(data, indapi.CandleData{
			Timestamp:  t,
			OpenPrice:  chartval.ConvertFloatToDecimal(roundCents(o), 64),
			HighPrice:  chartval.ConvertFloatToDecimal(roundCents(high), 64),
			LowPrice:   chartval.ConvertFloatToDecimal(roundCents(low), 64),
			ClosePrice: chartval.ConvertFloatToDecimal(roundCents(c), 64),
			Volume:     chartval.ConvertFloatToDecimal(math.Round(volumes.Rand()), 64),
		})
		last = c
	}
	return data
}
