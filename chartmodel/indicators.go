// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"fmt"
	"image/color"
	"maycharts/indapi"
	"maycharts/indapi/indicators"
	"maycharts/series"
)

var defaultIndicatorColor = color.NRGBA{R: 0x29, G: 0x62, B: 0xff, A: 0xff}

type indicatorEntry struct {
	key       string
	ind       indapi.IndicatorData
	source    string
	pane      *Pane
	seriesIds []string
}

// AddIndicator computes an indicator from the candles of a series. Price
// indicators are drawn on the pane of the source, all others on a new pane.
// It returns a key for RemoveIndicator.
func (m *Model) AddIndicator(id indapi.IndicatorId, props map[string]string, source string) (string, bool) {
	pd, ok := m.candles[source]
	if !ok {
		m.badArg("AddIndicator: series %s has no candle data", source)
		return "", false
	}
	ind, err := indicators.Create(id, props, nil)
	if err != nil {
		m.badArg("AddIndicator: %v", err)
		return "", false
	}
	srcPane, _, _ := m.FindSeries(source)
	p := m.panes[srcPane]
	if ind.GetPaneType() != indapi.PaneTypePrice {
		p = m.newPane()
		m.panes = append(m.panes, p)
		m.layout()
	}
	m.nextIndicator++
	e := &indicatorEntry{
		key:    fmt.Sprintf("%s/%s#%d", source, id, m.nextIndicator),
		ind:    ind,
		source: source,
		pane:   p,
	}
	ind.Update(m.opts.Resolution, pd)
	for i, l := range ind.Lines(defaultIndicatorColor) {
		s := series.New(fmt.Sprintf("%s/%d", e.key, i), series.TypeLine, series.Options{
			Title:     l.Name,
			Color:     l.Color,
			LineWidth: 1,
			Visible:   true,
		})
		s.SetBars(series.FromLine(l))
		p.series = append(p.series, s)
		p.scaleFor(s, m.opts.PriceScale)
		e.seriesIds = append(e.seriesIds, s.Id())
	}
	m.indicators = append(m.indicators, e)
	m.updateTimePoints()
	m.fullUpdate()
	return e.key, true
}

func (m *Model) RemoveIndicator(key string) {
	for i, e := range m.indicators {
		if e.key == key {
			m.indicators = append(m.indicators[:i], m.indicators[i+1:]...)
			m.dropIndicator(e)
			m.updateTimePoints()
			m.fullUpdate()
			return
		}
	}
	m.badArg("RemoveIndicator: unknown indicator %s", key)
}

// Indicators returns the keys of all indicators in insertion order.
func (m *Model) Indicators() []string {
	keys := make([]string, 0, len(m.indicators))
	for _, e := range m.indicators {
		keys = append(keys, e.key)
	}
	return keys
}

func (m *Model) dropIndicator(e *indicatorEntry) {
	for _, id := range e.seriesIds {
		e.pane.removeSeries(id)
	}
	// Remove the oscillator pane if it became empty.
	if len(e.pane.series) > 0 || len(m.panes) == 1 {
		return
	}
	for i, p := range m.panes {
		if p == e.pane {
			m.panes = append(m.panes[:i], m.panes[i+1:]...)
			m.layout()
			return
		}
	}
}

// removeIndicatorSeries is called when a series is removed. Indicators of a
// removed source are removed with it.
func (m *Model) removeIndicatorSeries(id string) {
	kept := m.indicators[:0]
	for _, e := range m.indicators {
		if e.source == id {
			m.dropIndicator(e)
			continue
		}
		for i, sid := range e.seriesIds {
			if sid == id {
				e.seriesIds = append(e.seriesIds[:i], e.seriesIds[i+1:]...)
				break
			}
		}
		if len(e.seriesIds) == 0 {
			continue
		}
		kept = append(kept, e)
	}
	m.indicators = kept
}

func (m *Model) refreshIndicators(source string) {
	pd, ok := m.candles[source]
	if !ok {
		return
	}
	for _, e := range m.indicators {
		if e.source != source {
			continue
		}
		e.ind.Update(m.opts.Resolution, pd)
		lines := e.ind.Lines(defaultIndicatorColor)
		for i, sid := range e.seriesIds {
			if i >= len(lines) {
				break
			}
			for _, s := range e.pane.series {
				if s.Id() == sid {
					s.SetBars(series.FromLine(lines[i]))
				}
			}
		}
	}
}

func (m *Model) hasIndicators(source string) bool {
	for _, e := range m.indicators {
		if e.source == source {
			return true
		}
	}
	return false
}
