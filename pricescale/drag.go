// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package pricescale

import "math"

// StartScale begins stretching the range by dragging the axis at y.
// Auto-scale is turned off.
func (ps *PriceScale) StartScale(y float64) {
	if !ps.hasRange || ps.needsFirstValue() {
		return
	}
	ps.opts.AutoScale = false
	ps.scaling = true
	ps.scaleStartY = ps.height - y
	ps.rangeSnapshot = ps.rng
}

func (ps *PriceScale) ScaleTo(y float64) {
	if !ps.scaling {
		return
	}
	y = math.Max(ps.height-y, 0)
	margin := (ps.height - 1) * 0.2
	coeff := (ps.scaleStartY + margin) / (y + margin)
	coeff = math.Max(coeff, 0.1)
	ps.setRange(ps.rangeSnapshot.scaleAroundCenter(coeff))
}

func (ps *PriceScale) EndScale() {
	ps.scaling = false
}

// StartScroll begins panning the range. Panning requires auto-scale to be off.
func (ps *PriceScale) StartScroll(y float64) {
	if ps.opts.AutoScale || !ps.hasRange {
		return
	}
	ps.scrolling = true
	ps.scrollStartY = y
	ps.rangeSnapshot = ps.rng
}

func (ps *PriceScale) ScrollTo(y float64) {
	if !ps.scrolling || ps.internalHeight() <= 1 {
		return
	}
	delta := y - ps.scrollStartY
	if ps.opts.InvertScale {
		delta = -delta
	}
	perPixel := ps.rangeSnapshot.Length() / (ps.internalHeight() - 1)
	ps.setRange(ps.rangeSnapshot.shift(delta * perPixel))
}

func (ps *PriceScale) EndScroll() {
	ps.scrolling = false
}
