// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"maycharts/indapi"
	"maycharts/series"
	"maycharts/timescale"
	"sort"
	"time"
)

// FindSeries returns the pane index and the series with the given id.
func (m *Model) FindSeries(id string) (int, *series.Series, bool) {
	for i, p := range m.panes {
		for _, s := range p.series {
			if s.Id() == id {
				return i, s, true
			}
		}
	}
	return 0, nil, false
}

func (m *Model) AddSeries(pane int, s *series.Series) {
	p, ok := m.checkPane("AddSeries", pane)
	if !ok {
		return
	}
	if s == nil {
		m.badArg("AddSeries: nil series")
		return
	}
	if _, _, exists := m.FindSeries(s.Id()); exists {
		m.badArg("AddSeries: series %s already exists", s.Id())
		return
	}
	p.series = append(p.series, s)
	p.scaleFor(s, m.opts.PriceScale)
	if s.Len() > 0 {
		m.updateTimePoints()
	}
	m.fullUpdate()
}

func (m *Model) RemoveSeries(id string) {
	i, _, ok := m.FindSeries(id)
	if !ok {
		m.badArg("RemoveSeries: unknown series %s", id)
		return
	}
	m.panes[i].removeSeries(id)
	delete(m.candles, id)
	m.removeIndicatorSeries(id)
	m.updateTimePoints()
	m.fullUpdate()
}

func (m *Model) SetSeriesData(id string, bars []series.Bar) {
	_, s, ok := m.FindSeries(id)
	if !ok {
		m.badArg("SetSeriesData: unknown series %s", id)
		return
	}
	s.SetBars(bars)
	m.updateTimePoints()
	m.fullUpdate()
}

// UpdateBar replaces the last bar or appends a new one.
func (m *Model) UpdateBar(id string, bar series.Bar) {
	i, s, ok := m.FindSeries(id)
	if !ok {
		m.badArg("UpdateBar: unknown series %s", id)
		return
	}
	appended, err := s.Update(bar)
	if err != nil {
		m.badArg("UpdateBar: %s: %v", id, err)
		return
	}
	if appended {
		if _, exists := m.ts.TimeToIndex(bar.Time, true); !exists {
			m.updateTimePoints()
			m.emit(m.lightAll(true))
			return
		}
		m.reindex()
	}
	m.emit(m.paneMask(i, true))
}

// SetCandles sets the data of a candlestick series and of its indicators.
func (m *Model) SetCandles(id string, data []indapi.CandleData) {
	_, s, ok := m.FindSeries(id)
	if !ok {
		m.badArg("SetCandles: unknown series %s", id)
		return
	}
	sorted := append([]indapi.CandleData(nil), data...)
	sort.Sort(indapi.CandleList(sorted))
	pd, ok := m.candles[id]
	if !ok {
		pd = indapi.NewPlotData()
		m.candles[id] = pd
	}
	pd.SetData(sorted, m.now())
	if s.Type() == series.TypeHistogram {
		s.SetBars(series.VolumeBars(sorted))
	} else {
		s.SetBars(series.FromCandles(sorted))
	}
	m.refreshIndicators(id)
	m.updateTimePoints()
	m.fullUpdate()
}

// UpdateCandle applies a live candle to a series set with SetCandles.
func (m *Model) UpdateCandle(id string, c indapi.CandleData) {
	pd, ok := m.candles[id]
	if !ok {
		m.badArg("UpdateCandle: series %s has no candle data", id)
		return
	}
	if !pd.Upsert(c, m.now()) {
		m.logger.Printf("dropping outdated candle of %s at %s", id, c.Timestamp.Format(time.RFC3339))
		return
	}
	i, s, ok := m.FindSeries(id)
	if !ok {
		return
	}
	bar := series.FromCandle(c)
	if s.Type() == series.TypeHistogram {
		bar.Value = bar.Volume
	}
	if _, err := s.Update(bar); err != nil {
		m.logger.Printf("candle of %s rejected: %v", id, err)
		return
	}
	m.refreshIndicators(id)
	if _, exists := m.ts.TimeToIndex(bar.Time, true); !exists {
		m.updateTimePoints()
		m.emit(m.lightAll(true))
		return
	}
	m.reindex()
	if m.hasIndicators(id) {
		m.emit(m.lightAll(true))
		return
	}
	m.emit(m.paneMask(i, true))
}

// The time scale points are the union of the times of all series.
func (m *Model) updateTimePoints() {
	times := make(map[float64]time.Time)
	for _, p := range m.panes {
		for _, s := range p.series {
			for _, b := range s.Bars() {
				if _, ok := times[b.Time]; !ok {
					times[b.Time] = b.OriginalTime
				}
			}
		}
	}
	points := make([]timescale.Point, 0, len(times))
	for t, orig := range times {
		points = append(points, timescale.Point{Time: t, Original: orig})
	}
	m.ts.SetPoints(points)
	m.reindex()
}

func (m *Model) reindex() {
	for _, p := range m.panes {
		for _, s := range p.series {
			s.Reindex(func(t float64) int {
				i, _ := m.ts.TimeToIndex(t, false)
				return i
			})
		}
	}
}

// DataTimeRange is the time of the first and the last point.
func (m *Model) DataTimeRange() (first, last float64, ok bool) {
	points := m.ts.Points()
	if len(points) == 0 {
		return 0, 0, false
	}
	return points[0].Time, points[len(points)-1].Time, true
}
