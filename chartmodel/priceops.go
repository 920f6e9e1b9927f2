// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"maycharts/invalidate"
	"maycharts/pricescale"
)

func (m *Model) visibleRange() (from, to int) {
	from, to, ok := m.ts.VisibleStrictRange()
	if !ok {
		return 0, -1
	}
	return from, to
}

func (m *Model) firstValue(p *Pane, ps *pricescale.PriceScale) pricescale.FirstValue {
	from, to := m.visibleRange()
	return p.FirstValue(ps, from, to)
}

// FirstValue is the baseline of a price scale for the current visible range.
func (m *Model) FirstValue(pane int, ps *pricescale.PriceScale) pricescale.FirstValue {
	p, ok := m.Pane(pane)
	if !ok {
		return pricescale.FirstValue{}
	}
	return m.firstValue(p, ps)
}

// RecalculateAutoScale fits the auto-scaled price scales of a pane to the
// visible bars.
func (m *Model) RecalculateAutoScale(pane int) {
	p, ok := m.Pane(pane)
	if !ok {
		return
	}
	from, to := m.visibleRange()
	p.recalculate(from, to)
}

func (m *Model) scale(op string, pane int, scaleId string) (*pricescale.PriceScale, bool) {
	p, ok := m.checkPane(op, pane)
	if !ok {
		return nil, false
	}
	ps, ok := p.PriceScale(scaleId)
	if !ok {
		m.badArg("%s: pane %d has no price scale %q", op, pane, scaleId)
	}
	return ps, ok
}

func (m *Model) paneMask(pane int, autoScale bool) *invalidate.Mask {
	mask := invalidate.New(invalidate.None)
	mask.InvalidatePane(pane, invalidate.PaneInvalidation{Level: invalidate.Light, AutoScale: autoScale})
	return mask
}

func (m *Model) SetAutoScale(pane int, scaleId string, on bool) {
	ps, ok := m.scale("SetAutoScale", pane, scaleId)
	if !ok {
		return
	}
	ps.SetAutoScale(on)
	m.emit(m.paneMask(pane, on))
}

// SetPriceRange sets a fixed range and disables auto-scale.
func (m *Model) SetPriceRange(pane int, scaleId string, r pricescale.Range) {
	ps, ok := m.scale("SetPriceRange", pane, scaleId)
	if !ok {
		return
	}
	if r.IsEmpty() || r.Max < r.Min {
		m.badArg("SetPriceRange: invalid range [%f, %f]", r.Min, r.Max)
		return
	}
	ps.SetCustomRange(r)
	m.emit(m.paneMask(pane, false))
}

func (m *Model) StartScalePrice(pane int, scaleId string, y float64) {
	if ps, ok := m.scale("StartScalePrice", pane, scaleId); ok {
		ps.StartScale(y)
	}
}

func (m *Model) ScalePriceTo(pane int, scaleId string, y float64) {
	if ps, ok := m.scale("ScalePriceTo", pane, scaleId); ok {
		ps.ScaleTo(y)
		m.emit(m.paneMask(pane, false))
	}
}

func (m *Model) EndScalePrice(pane int, scaleId string) {
	if ps, ok := m.scale("EndScalePrice", pane, scaleId); ok {
		ps.EndScale()
	}
}

func (m *Model) StartScrollPrice(pane int, scaleId string, y float64) {
	if ps, ok := m.scale("StartScrollPrice", pane, scaleId); ok {
		ps.StartScroll(y)
	}
}

func (m *Model) ScrollPriceTo(pane int, scaleId string, y float64) {
	if ps, ok := m.scale("ScrollPriceTo", pane, scaleId); ok {
		ps.ScrollTo(y)
		m.emit(m.paneMask(pane, false))
	}
}

func (m *Model) EndScrollPrice(pane int, scaleId string) {
	if ps, ok := m.scale("EndScrollPrice", pane, scaleId); ok {
		ps.EndScroll()
	}
}

// ResetPriceScale turns auto-scale back on, as a double click on the axis does.
func (m *Model) ResetPriceScale(pane int, scaleId string) {
	m.SetAutoScale(pane, scaleId, true)
}
