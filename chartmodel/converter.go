// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"maycharts/pricescale"
	"maycharts/timescale"
)

// PaneConverter maps annotation anchors to pane coordinates through the time
// scale and the right price scale of a pane.
type PaneConverter struct {
	ts *timescale.TimeScale
	ps *pricescale.PriceScale
	fv pricescale.FirstValue
	m  *Model
}

func (c PaneConverter) TimeAtCoordinate(x float64) (float64, bool) {
	return c.ts.TimeAtCoordinate(x)
}

func (c PaneConverter) CoordinateForTime(t float64) (float64, bool) {
	return c.ts.CoordinateForTime(t)
}

func (c PaneConverter) PriceToCoordinate(price float64) (float64, bool) {
	return c.ps.PriceToCoordinate(price, c.fv)
}

func (c PaneConverter) CoordinateToPrice(y float64) (float64, bool) {
	return c.ps.CoordinateToPrice(y, c.fv)
}

func (c PaneConverter) DataTimeRange() (first, last float64, ok bool) {
	return c.m.DataTimeRange()
}

// Converter returns the coordinate converter of a pane.
func (m *Model) Converter(pane int) (PaneConverter, bool) {
	p, ok := m.Pane(pane)
	if !ok {
		return PaneConverter{}, false
	}
	return PaneConverter{ts: m.ts, ps: p.Right(), fv: m.firstValue(p, p.Right()), m: m}, true
}
