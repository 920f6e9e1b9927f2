// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"fmt"
	"log"
	"maycharts/annostore"
	"maycharts/drawing"
	"maycharts/indapi"
	"maycharts/indapi/candles"
	"maycharts/invalidate"
	"maycharts/pricescale"
	"maycharts/timescale"
	"time"
)

// Invalidator receives the mask of every mutation, usually a render.Orchestrator.
type Invalidator interface {
	Invalidate(m *invalidate.Mask)
}

// IntentSink receives annotation snapshots to persist, usually an annostore.Outbox.
type IntentSink interface {
	Enqueue(i annostore.Intent)
}

type Options struct {
	TimeScale      timescale.Options
	PriceScale     pricescale.Options
	Resolution     candles.CandleResolution
	CrosshairMode  CrosshairMode
	Hit            drawing.HitOptions
	DragPolicy     drawing.DragPolicy
	Annotation     map[drawing.Kind]drawing.Options
	TimeAxisHeight float64
	PriceAxisWidth float64
	// Invalid arguments panic instead of being logged and ignored.
	DevMode bool
}

func DefaultOptions() Options {
	ts := timescale.DefaultOptions()
	r := candles.CandleOneDay
	ts.FallbackTimeStep = r.StepSeconds()
	return Options{
		TimeScale:      ts,
		PriceScale:     pricescale.DefaultOptions(),
		Resolution:     r,
		CrosshairMode:  CrosshairNormal,
		Hit:            drawing.DefaultHitOptions(),
		DragPolicy:     drawing.DragFree,
		TimeAxisHeight: 28,
		PriceAxisWidth: 64,
	}
}

type Model struct {
	opts   Options
	logger *log.Logger
	inv    Invalidator
	sink   IntentSink
	now    func() time.Time

	ts         *timescale.TimeScale
	panes      []*Pane
	nextPaneId int
	width      float64
	height     float64

	crosshair     Crosshair
	crosshairMode CrosshairMode
	// Mode to restore when annotation placement ends.
	savedMode CrosshairMode

	toolbox  *drawing.Toolbox
	session  *drawing.Session
	selected string
	drag     *drawing.Drag

	candles       map[string]*indapi.PlotData
	indicators    []*indicatorEntry
	nextIndicator int
}

// New creates a model with one empty pane. inv and sink may be nil.
func New(opts Options, inv Invalidator, sink IntentSink, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	m := &Model{
		opts:          opts,
		logger:        logger,
		inv:           inv,
		sink:          sink,
		now:           time.Now,
		ts:            timescale.New(opts.TimeScale),
		crosshairMode: opts.CrosshairMode,
		savedMode:     opts.CrosshairMode,
		toolbox:       drawing.NewToolbox(),
		session:       drawing.NewSession(""),
		candles:       make(map[string]*indapi.PlotData),
	}
	m.panes = append(m.panes, m.newPane())
	return m
}

// SetClock replaces the time source of animations.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Model) SetInvalidator(inv Invalidator) {
	m.inv = inv
}

func (m *Model) Options() Options {
	return m.opts
}

func (m *Model) TimeScale() *timescale.TimeScale {
	return m.ts
}

func (m *Model) Panes() []*Pane {
	return m.panes
}

func (m *Model) PaneCount() int {
	return len(m.panes)
}

func (m *Model) Pane(i int) (*Pane, bool) {
	if i < 0 || i >= len(m.panes) {
		return nil, false
	}
	return m.panes[i], true
}

func (m *Model) Size() (w, h float64) {
	return m.width, m.height
}

// badArg reports an invalid call. In dev mode this is a bug in the caller.
func (m *Model) badArg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.opts.DevMode {
		panic(msg)
	}
	m.logger.Printf("ignoring invalid call: %s", msg)
}

func (m *Model) checkPane(op string, i int) (*Pane, bool) {
	p, ok := m.Pane(i)
	if !ok {
		m.badArg("%s: pane index %d out of range [0, %d)", op, i, len(m.panes))
	}
	return p, ok
}

func (m *Model) emit(mask *invalidate.Mask) {
	if m.inv != nil && mask != nil {
		m.inv.Invalidate(mask)
	}
}

func (m *Model) fullUpdate() {
	m.emit(invalidate.New(invalidate.Full))
}

// FullUpdate requests a complete repaint including layout.
func (m *Model) FullUpdate() {
	m.fullUpdate()
}

// Every pane repaints, auto-scale is recomputed if requested.
func (m *Model) lightAll(autoScale bool) *invalidate.Mask {
	mask := invalidate.New(invalidate.Light)
	for i := range m.panes {
		mask.InvalidatePane(i, invalidate.PaneInvalidation{Level: invalidate.Light, AutoScale: autoScale})
	}
	return mask
}

// ApplyOptions replaces the options of the model and its scales.
func (m *Model) ApplyOptions(opts Options) {
	if opts.TimeAxisHeight < 0 || opts.PriceAxisWidth < 0 {
		m.badArg("ApplyOptions: negative axis size")
		return
	}
	m.opts = opts
	m.ts.ApplyOptions(opts.TimeScale)
	for _, p := range m.panes {
		for _, s := range p.PriceScales() {
			o := opts.PriceScale
			o.AutoScale = s.IsAutoScale()
			s.ApplyOptions(o)
		}
	}
	m.crosshairMode = opts.CrosshairMode
	m.layout()
	m.fullUpdate()
}

// SetResolution changes the candle resolution used for the fallback time step
// and axis labels.
func (m *Model) SetResolution(r candles.CandleResolution) {
	if r < 0 || r >= candles.NumCandleResolutions {
		m.badArg("SetResolution: invalid resolution %d", r)
		return
	}
	m.opts.Resolution = r
	o := m.ts.Options()
	o.FallbackTimeStep = r.StepSeconds()
	m.opts.TimeScale = o
	m.ts.ApplyOptions(o)
	m.fullUpdate()
}

// Resize sets the size of the whole chart including axes.
func (m *Model) Resize(w, h float64) {
	if w < 0 || h < 0 {
		m.badArg("Resize: negative size %.0fx%.0f", w, h)
		return
	}
	if w == m.width && h == m.height {
		return
	}
	m.width, m.height = w, h
	m.layout()
	m.fullUpdate()
}

// PlotWidth is the width of the pane area, without the price axis.
func (m *Model) PlotWidth() float64 {
	return max(m.width-m.opts.PriceAxisWidth, 0)
}

func (m *Model) layout() {
	m.ts.SetWidth(m.PlotWidth())
	total := max(m.height-m.opts.TimeAxisHeight, 0)
	var sum float64
	for _, p := range m.panes {
		sum += p.stretch
	}
	top := 0.0
	for _, p := range m.panes {
		h := 0.0
		if sum > 0 {
			h = float64(int(total * p.stretch / sum))
		}
		p.setGeometry(top, h)
		top += h
	}
}

// PaneAt returns the pane below the chart y coordinate and the y coordinate
// relative to the pane.
func (m *Model) PaneAt(y float64) (index int, localY float64, ok bool) {
	for i, p := range m.panes {
		if y >= p.top && y < p.top+p.height {
			return i, y - p.top, true
		}
	}
	return 0, 0, false
}
