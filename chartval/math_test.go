// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"math"
	"testing"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertFloatToDecimal(t *testing.T) {
	d := ConvertFloatToDecimal(116.15, 64)
	assert.Equal(t, 0, decimal.New(11615, 2).CmpTotal(d))
}

func TestDecimalToFloat(t *testing.T) {
	assert.Equal(t, 116.15, DecimalToFloat(decimal.New(11615, 2)))
	assert.True(t, math.IsNaN(DecimalToFloat(nil)))
}

func TestCalcNumSegments(t *testing.T) {
	assert.Equal(t, 0, CalcNumSegments(10, 0, 0))
	assert.Equal(t, 3, CalcNumSegments(200, 10, 90))
	assert.Equal(t, 0, CalcNumSegments(-500, 10, 90))
}

func TestNiceStep(t *testing.T) {
	assert.InDelta(t, 1.0, NiceStep(0.8), NearZero)
	assert.InDelta(t, 2.0, NiceStep(1.3), NearZero)
	assert.InDelta(t, 5.0, NiceStep(4.2), NearZero)
	assert.InDelta(t, 10.0, NiceStep(6), NearZero)
	assert.InDelta(t, 0.05, NiceStep(0.031), NearZero)
	assert.Equal(t, 0.0, NiceStep(0))
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTC_USD", NormalizeSymbol(" btc/usd "))
	assert.Equal(t, "SPY", NormalizeSymbol("spy"))
}

func TestRoundFloatIndex(t *testing.T) {
	assert.Equal(t, 3.0, RoundFloatIndex(2.9999999999))
}
