// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"maycharts/invalidate"
	"maycharts/pricescale"
)

type CrosshairMode int

const (
	CrosshairNormal CrosshairMode = iota
	// The price follows the close of the bar below the cursor.
	CrosshairMagnet
)

func (c CrosshairMode) String() string {
	switch c {
	case CrosshairNormal:
		return "normal"
	case CrosshairMagnet:
		return "magnet"
	default:
		return "invalid"
	}
}

// Crosshair is shared by all panes. Painters read it, only the model writes it.
type Crosshair struct {
	Visible bool
	X       float64
	Y       float64
	// Pane index at the time of the last update.
	Pane  int
	Index int
	Price float64
	Time  float64
	// Draw only a dot at the exact cursor position, used while placing annotations.
	DotOnly bool
}

func (m *Model) Crosshair() Crosshair {
	return m.crosshair
}

func (m *Model) CrosshairMode() CrosshairMode {
	return m.crosshairMode
}

// SetCrosshair moves the crosshair to (x, y), y relative to the pane.
func (m *Model) SetCrosshair(pane int, x, y float64) {
	p, ok := m.checkPane("SetCrosshair", pane)
	if !ok {
		return
	}
	c := Crosshair{Visible: true, X: x, Y: y, Pane: pane, DotOnly: m.crosshair.DotOnly}
	c.Index = m.ts.CoordinateToIndex(x)
	if t, ok := m.ts.TimeAtCoordinate(x); ok {
		c.Time = t
	}
	ps := p.Right()
	fv := m.firstValue(p, ps)
	if price, ok := ps.CoordinateToPrice(y, fv); ok {
		c.Price = price
	}
	if !c.DotOnly && !m.ts.IsEmpty() {
		if pt, ok := m.ts.IndexToPoint(c.Index); ok {
			c.X = m.ts.IndexToCoordinate(float64(pt.Index))
			c.Time = pt.Time
		}
		if m.crosshairMode == CrosshairMagnet {
			m.magnet(p, &c, fv)
		}
	}
	m.crosshair = c
	m.emit(invalidate.New(invalidate.Cursor))
}

func (m *Model) magnet(p *Pane, c *Crosshair, fv pricescale.FirstValue) {
	s, ok := p.MainSeries()
	if !ok {
		return
	}
	b, ok := s.At(c.Index)
	if !ok {
		return
	}
	price := s.PriceValue(b)
	if y, ok := p.ScaleOf(s).PriceToCoordinate(price, fv); ok {
		c.Price = price
		c.Y = y
	}
}

func (m *Model) ClearCrosshair() {
	if !m.crosshair.Visible {
		return
	}
	m.crosshair.Visible = false
	m.emit(invalidate.New(invalidate.Cursor))
}

func (m *Model) SetCrosshairMode(mode CrosshairMode) {
	if mode != CrosshairNormal && mode != CrosshairMagnet {
		m.badArg("SetCrosshairMode: invalid mode %d", mode)
		return
	}
	m.opts.CrosshairMode = mode
	if _, placing := m.toolbox.Active(); placing {
		// Applied when the placement ends.
		m.savedMode = mode
		return
	}
	m.crosshairMode = mode
	m.emit(invalidate.New(invalidate.Cursor))
}
