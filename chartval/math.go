// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"math"
	"strconv"

	"github.com/ericlagergren/decimal"
)

const NearZero = 0.000001

// The builtin decimal.Big conversion from float64 is an "exact" conversion, and useless for our cases.
// Therefore, convert using string conversion, even though this requires memory allocation.
// See also https://github.com/ericlagergren/decimal/issues/142

// Convert float to string and then to decimal.
func ConvertFloatToDecimal(v float64, bitSize int) *decimal.Big {
	d, _ := new(decimal.Big).SetString(strconv.FormatFloat(v, 'f', -1, bitSize))
	return d
}

// DecimalToFloat converts d, a nil decimal is NaN.
func DecimalToFloat(d *decimal.Big) float64 {
	if d == nil {
		return math.NaN()
	}
	f, _ := d.Float64()
	return f
}

// Calculate the number of segments for a plot grid
func CalcNumSegments(pos int, margin int, grid int) int {
	if grid == 0 {
		return 0
	}
	return max((pos-margin+grid)/grid, 0)
}

func IsGreenCandle(o, c float64) bool {
	// this may be adjusted based on whether it is considered to be green if open price equals close price.
	return c >= o
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RoundFloatIndex removes floating point noise from logical indices.
func RoundFloatIndex(v float64) float64 {
	return math.Round(v*1000000) / 1000000
}

// NiceStep returns the smallest 1/2/5 * 10^n step which is at least rawStep.
func NiceStep(rawStep float64) float64 {
	if rawStep <= 0 || math.IsNaN(rawStep) || math.IsInf(rawStep, 0) {
		return 0
	}
	base := math.Pow10(int(math.Floor(math.Log10(rawStep))))
	for _, m := range []float64{1, 2, 5, 10} {
		if base*m >= rawStep-NearZero*base {
			return base * m
		}
	}
	return base * 10
}
