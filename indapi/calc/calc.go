// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package calc

import (
	"maycharts/indapi"

	"github.com/ericlagergren/decimal"
)

// Window returns up to n candles ending at index i.
func Window(data []indapi.CandleData, i, n int) []indapi.CandleData {
	return data[max(0, i+1-n) : i+1]
}

// Mean of the closing prices, zero for no candles.
func Mean(out *decimal.Big, val []indapi.CandleData) *decimal.Big {
	out.SetUint64(0)
	if len(val) == 0 {
		return out
	}
	for i := range val {
		out.Add(out, val[i].ClosePrice)
	}
	return out.Quo(out, decimal.New(int64(len(val)), 0))
}

// StdDev is the population standard deviation of the closing prices.
func StdDev(out *decimal.Big, val []indapi.CandleData) *decimal.Big {
	return stdDev(out, Mean(new(decimal.Big), val), val)
}

func stdDev(out, mean *decimal.Big, val []indapi.CandleData) *decimal.Big {
	out.SetUint64(0)
	if len(val) == 0 {
		return out
	}
	d := new(decimal.Big)
	for i := range val {
		d.Sub(val[i].ClosePrice, mean)
		out.Add(out, d.Mul(d, d))
	}
	out.Quo(out, decimal.New(int64(len(val)), 0))
	return out.Context.Sqrt(out, out)
}

// Band returns the mean of the closing prices and the bounds width
// standard deviations below and above it.
func Band(val []indapi.CandleData, width *decimal.Big) (lower, mean, upper *decimal.Big) {
	mean = Mean(new(decimal.Big), val)
	dev := stdDev(new(decimal.Big), mean, val)
	dev.Mul(dev, width)
	lower = new(decimal.Big).Sub(mean, dev)
	upper = new(decimal.Big).Add(mean, dev)
	return lower, mean, upper
}
