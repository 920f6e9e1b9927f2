// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"math"
	"maycharts/invalidate"
	"maycharts/timescale"
)

func (m *Model) nowMs() float64 {
	return float64(m.now().UnixMilli())
}

func (m *Model) StartScrollTime(x float64) {
	m.ts.StartScroll(x)
}

func (m *Model) ScrollTimeTo(x float64) {
	if !m.ts.IsScrolling() {
		return
	}
	m.ts.ScrollTo(x)
	m.emit(m.lightAll(true))
}

func (m *Model) EndScrollTime() {
	m.ts.EndScroll()
}

// ZoomTime zooms around x. A positive scale zooms in.
func (m *Model) ZoomTime(x, scale float64) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		m.badArg("ZoomTime: invalid scale %f", scale)
		return
	}
	if scale == 0 {
		return
	}
	m.ts.Zoom(x, scale)
	m.emit(m.lightAll(true))
}

func (m *Model) SetBarSpacing(v float64) {
	if !(v > 0) {
		m.badArg("SetBarSpacing: bar spacing %f must be positive", v)
		return
	}
	mask := m.lightAll(true)
	mask.SetBarSpacing(v)
	m.emit(mask)
}

func (m *Model) SetRightOffset(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		m.badArg("SetRightOffset: invalid offset %f", v)
		return
	}
	mask := m.lightAll(true)
	mask.SetRightOffset(v)
	m.emit(mask)
}

func (m *Model) FitContent() {
	mask := m.lightAll(true)
	mask.SetFitContent()
	m.emit(mask)
}

func (m *Model) ResetTimeScale() {
	mask := m.lightAll(true)
	mask.ResetTimeScale()
	m.emit(mask)
}

func (m *Model) SetVisibleLogicalRange(r invalidate.LogicalRange) {
	if !(r.To >= r.From) {
		m.badArg("SetVisibleLogicalRange: invalid range [%f, %f]", r.From, r.To)
		return
	}
	mask := m.lightAll(true)
	mask.ApplyRange(r)
	m.emit(mask)
}

// ScrollToPosition moves the right offset to pos, optionally animated.
func (m *Model) ScrollToPosition(pos float64, animated bool) {
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		m.badArg("ScrollToPosition: invalid position %f", pos)
		return
	}
	if !animated {
		m.SetRightOffset(pos)
		return
	}
	mask := m.lightAll(true)
	mask.SetAnimation(timescale.NewScrollAnimation(m.ts.RightOffset(), pos, m.nowMs()))
	m.emit(mask)
}

func (m *Model) ScrollToRealTime() {
	m.ScrollToPosition(m.ts.Options().RightOffset, true)
}

// ApplyTimeScaleOps replays the queued operations of a frame. A running
// animation keeps the chart invalidated until it is finished.
func (m *Model) ApplyTimeScaleOps(ops []invalidate.TimeScaleOp, nowMs float64) {
	if len(ops) == 0 {
		return
	}
	if a := m.ts.Replay(ops, nowMs); a != nil {
		mask := m.lightAll(true)
		mask.SetAnimation(a)
		m.emit(mask)
	}
}
