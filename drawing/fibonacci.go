// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

import "math"

var DefaultFibonacciLevels = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1}

type Level struct {
	Ratio float64
	Price float64
}

// FibonacciLevels computes the level prices. In an uptrend (price2 > price1)
// levels count down from the higher anchor, otherwise up from the lower one.
func FibonacciLevels(price1, price2 float64, ratios []float64) []Level {
	if len(ratios) == 0 {
		ratios = DefaultFibonacciLevels
	}
	r := math.Abs(price2 - price1)
	uptrend := price2 > price1
	base := math.Min(price1, price2)
	if uptrend {
		base = math.Max(price1, price2)
	}
	levels := make([]Level, len(ratios))
	for i, l := range ratios {
		if uptrend {
			levels[i] = Level{Ratio: l, Price: base - r*l}
		} else {
			levels[i] = Level{Ratio: l, Price: base + r*l}
		}
	}
	return levels
}

func (a Annotation) Levels() []Level {
	return FibonacciLevels(a.P1.Price, a.P2.Price, a.Options.Levels)
}
