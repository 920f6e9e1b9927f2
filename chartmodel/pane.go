// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"maycharts/pricescale"
	"maycharts/series"
	"sort"

	"golang.org/x/exp/maps"
)

// Pane is a horizontal strip of the chart. Its index in the model is not a
// stable identity, use Id to refer to a pane across structural changes.
type Pane struct {
	id       int
	series   []*series.Series
	left     *pricescale.PriceScale
	right    *pricescale.PriceScale
	overlays map[string]*pricescale.PriceScale
	stretch  float64
	grid     bool
	top      float64
	height   float64
}

func (m *Model) newPane() *Pane {
	m.nextPaneId++
	return &Pane{
		id:       m.nextPaneId,
		left:     pricescale.New(pricescale.LeftId, m.opts.PriceScale),
		right:    pricescale.New(pricescale.RightId, m.opts.PriceScale),
		overlays: make(map[string]*pricescale.PriceScale),
		stretch:  1,
		grid:     true,
	}
}

func (p *Pane) Id() int {
	return p.id
}

func (p *Pane) Series() []*series.Series {
	return p.series
}

func (p *Pane) StretchFactor() float64 {
	return p.stretch
}

func (p *Pane) Grid() bool {
	return p.grid
}

func (p *Pane) Top() float64 {
	return p.top
}

func (p *Pane) Height() float64 {
	return p.height
}

func (p *Pane) setGeometry(top, height float64) {
	p.top = top
	p.height = height
	for _, s := range p.PriceScales() {
		s.SetHeight(height)
	}
}

func (p *Pane) Right() *pricescale.PriceScale {
	return p.right
}

func (p *Pane) Left() *pricescale.PriceScale {
	return p.left
}

// PriceScale returns the scale with the given id. The empty id is the right scale.
func (p *Pane) PriceScale(id string) (*pricescale.PriceScale, bool) {
	switch id {
	case "", pricescale.RightId:
		return p.right, true
	case pricescale.LeftId:
		return p.left, true
	}
	s, ok := p.overlays[id]
	return s, ok
}

// PriceScales returns right, left and the overlays sorted by id.
func (p *Pane) PriceScales() []*pricescale.PriceScale {
	out := []*pricescale.PriceScale{p.right, p.left}
	keys := maps.Keys(p.overlays)
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, p.overlays[k])
	}
	return out
}

func (p *Pane) scaleFor(s *series.Series, opts pricescale.Options) *pricescale.PriceScale {
	id := s.Options().PriceScaleId
	if ps, ok := p.PriceScale(id); ok {
		return ps
	}
	ps := pricescale.New(id, opts)
	ps.SetHeight(p.height)
	p.overlays[id] = ps
	return ps
}

// ScaleOf returns the price scale a series is drawn on.
func (p *Pane) ScaleOf(s *series.Series) *pricescale.PriceScale {
	ps, ok := p.PriceScale(s.Options().PriceScaleId)
	if !ok {
		return p.right
	}
	return ps
}

// SeriesOn returns the series drawn on the given scale.
func (p *Pane) SeriesOn(ps *pricescale.PriceScale) []*series.Series {
	var out []*series.Series
	for _, s := range p.series {
		if p.ScaleOf(s) == ps {
			out = append(out, s)
		}
	}
	return out
}

// MainSeries is the first series of the right scale, or the first series at all.
func (p *Pane) MainSeries() (*series.Series, bool) {
	for _, s := range p.series {
		if p.ScaleOf(s) == p.right {
			return s, true
		}
	}
	if len(p.series) > 0 {
		return p.series[0], true
	}
	return nil, false
}

// FirstValue is the baseline of a scale: the first visible value of its first series.
func (p *Pane) FirstValue(ps *pricescale.PriceScale, from, to int) pricescale.FirstValue {
	for _, s := range p.SeriesOn(ps) {
		if v, ok := s.FirstValue(from, to); ok {
			return pricescale.FirstValue{Value: v, Ok: true}
		}
	}
	return pricescale.FirstValue{}
}

// recalculate fits every auto-scaled price scale to the visible bars.
func (p *Pane) recalculate(from, to int) {
	for _, ps := range p.PriceScales() {
		if !ps.IsAutoScale() {
			continue
		}
		var values []float64
		for _, s := range p.SeriesOn(ps) {
			if lo, hi, ok := s.MinMax(from, to); ok {
				values = append(values, lo, hi)
			}
		}
		ps.Recalculate(values, p.FirstValue(ps, from, to))
	}
}

func (p *Pane) removeSeries(id string) bool {
	for i, s := range p.series {
		if s.Id() == id {
			p.series = append(p.series[:i], p.series[i+1:]...)
			for k, ps := range p.overlays {
				if len(p.SeriesOn(ps)) == 0 {
					delete(p.overlays, k)
				}
			}
			return true
		}
	}
	return false
}

// AddPane appends an empty pane and returns its index.
func (m *Model) AddPane(stretch float64) int {
	if stretch <= 0 {
		m.badArg("AddPane: stretch factor %f must be positive", stretch)
		return -1
	}
	p := m.newPane()
	p.stretch = stretch
	m.panes = append(m.panes, p)
	m.layout()
	m.fullUpdate()
	return len(m.panes) - 1
}

// RemovePane removes a pane with its series. The last pane cannot be removed.
func (m *Model) RemovePane(i int) {
	if _, ok := m.checkPane("RemovePane", i); !ok {
		return
	}
	if len(m.panes) == 1 {
		m.badArg("RemovePane: cannot remove the only pane")
		return
	}
	removed := m.panes[i]
	m.panes = append(m.panes[:i], m.panes[i+1:]...)
	for _, s := range removed.series {
		m.removeIndicatorSeries(s.Id())
	}
	m.updateTimePoints()
	m.layout()
	m.crosshair.Visible = false
	m.fullUpdate()
}

func (m *Model) SwapPanes(i, j int) {
	if _, ok := m.checkPane("SwapPanes", i); !ok {
		return
	}
	if _, ok := m.checkPane("SwapPanes", j); !ok {
		return
	}
	if i == j {
		return
	}
	m.panes[i], m.panes[j] = m.panes[j], m.panes[i]
	m.layout()
	m.fullUpdate()
}

func (m *Model) SetStretchFactor(i int, stretch float64) {
	p, ok := m.checkPane("SetStretchFactor", i)
	if !ok {
		return
	}
	if stretch <= 0 {
		m.badArg("SetStretchFactor: stretch factor %f must be positive", stretch)
		return
	}
	p.stretch = stretch
	m.layout()
	m.fullUpdate()
}

func (m *Model) SetGrid(i int, on bool) {
	p, ok := m.checkPane("SetGrid", i)
	if !ok {
		return
	}
	p.grid = on
	m.emit(m.paneMask(i, false))
}
