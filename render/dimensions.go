// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"math"
)

func getCandleWidth(barSpacing float64, maxBorderWidth int) (candleWidth, lineWidth, borderWidth int) {
	const minCandleWidth = 1
	const minLineWidth = 1
	const defaultCandleMultiplier = 0.8

	candleWidth = int(math.Abs(barSpacing) * defaultCandleMultiplier)
	if candleWidth < minCandleWidth {
		candleWidth = minCandleWidth
	}
	lineWidth = candleWidth / 16
	if lineWidth < minLineWidth {
		lineWidth = minLineWidth
	}
	borderWidth = candleWidth / 5
	if borderWidth > maxBorderWidth {
		borderWidth = maxBorderWidth
	}
	return
}
