// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"image"
	"log"
	"math"
	"maycharts/chartmodel"
	"maycharts/invalidate"
	"maycharts/metrics"
	"maycharts/widgets"
	"time"
)

// Scheduler runs a callback on the next animation frame. The returned
// function revokes the callback if it did not run yet.
type Scheduler interface {
	RequestFrame(cb func(time.Time)) (cancel func())
}

// Orchestrator coalesces invalidation masks of a chart model into frames
// and repaints the affected regions of a surface.
// All methods must be called on the thread which mutates the model.
type Orchestrator struct {
	model   *chartmodel.Model
	surface Surface
	sched   Scheduler
	theme   *widgets.ChartTheme
	metrics *metrics.Metrics
	logger  *log.Logger

	pending   *invalidate.Mask
	reentrant *invalidate.Mask
	cancel    func()
	inFrame   bool
	redoing   bool
	closed    bool
}

// NewOrchestrator registers itself as invalidator of the model.
func NewOrchestrator(model *chartmodel.Model, surface Surface, sched Scheduler, theme *widgets.ChartTheme, m *metrics.Metrics, logger *log.Logger) *Orchestrator {
	if m == nil {
		m = metrics.New(nil)
	}
	o := &Orchestrator{
		model:   model,
		surface: surface,
		sched:   sched,
		theme:   theme,
		metrics: m,
		logger:  logger,
	}
	model.SetInvalidator(o)
	return o
}

func (o *Orchestrator) Invalidate(mask *invalidate.Mask) {
	if o.closed || mask == nil {
		return
	}
	if o.inFrame && !o.redoing && mask.Global() == invalidate.Full {
		if o.reentrant == nil {
			o.reentrant = mask.Clone()
		} else {
			o.reentrant.Merge(mask)
		}
		return
	}
	if o.pending == nil {
		o.pending = mask.Clone()
	} else {
		o.pending.Merge(mask)
		o.metrics.MasksCoalesced.Inc()
	}
	if !o.inFrame && o.cancel == nil {
		o.schedule()
	}
}

// Scheduled reports whether a frame callback is in flight.
func (o *Orchestrator) Scheduled() bool {
	return o.cancel != nil
}

func (o *Orchestrator) schedule() {
	o.cancel = o.sched.RequestFrame(o.frame)
	o.metrics.FramesScheduled.Inc()
}

// Close revokes the scheduled frame. Later masks are ignored.
func (o *Orchestrator) Close() {
	o.closed = true
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.pending = nil
	o.reentrant = nil
}

func (o *Orchestrator) frame(now time.Time) {
	o.cancel = nil
	if o.closed {
		return
	}
	mask := o.pending
	o.pending = nil
	if mask == nil || mask.Empty() {
		return
	}
	start := time.Now()
	nowMs := float64(now.UnixMilli())

	o.inFrame = true
	o.prepare(mask, nowMs)
	if r := o.reentrant; r != nil {
		o.reentrant = nil
		o.redoing = true
		o.prepare(r, nowMs)
		o.redoing = false
		mask.Merge(r)
	}
	o.paint(mask)
	o.inFrame = false
	// Structural changes made while painting go to the next frame.
	if r := o.reentrant; r != nil {
		o.reentrant = nil
		if o.pending == nil {
			o.pending = r
		} else {
			o.pending.Merge(r)
		}
	}

	o.metrics.FramesPainted.Inc()
	o.metrics.FrameDur.Observe(time.Since(start).Seconds())

	// Animation ticks and masks emitted while painting.
	if o.pending != nil && !o.pending.Empty() && o.cancel == nil {
		o.schedule()
	}
}

func (o *Orchestrator) prepare(mask *invalidate.Mask, nowMs float64) {
	if mask.Global() == invalidate.Full {
		o.syncStructure()
	}
	n := o.model.PaneCount()
	for i := 0; i < n; i++ {
		if mask.AutoScale(i) {
			o.model.RecalculateAutoScale(i)
		}
	}
	if ops := mask.TimeScaleOps(); len(ops) > 0 {
		o.model.ApplyTimeScaleOps(ops, nowMs)
		// The visible range changed, fit the prices again.
		for i := 0; i < n; i++ {
			if mask.AutoScale(i) {
				o.model.RecalculateAutoScale(i)
			}
		}
	}
}

func (o *Orchestrator) syncStructure() {
	w, h := o.model.Size()
	size := image.Pt(int(w), int(h))
	if o.surface.Size() != size {
		o.surface.Resize(size)
	}
	n := o.model.PaneCount()
	o.surface.Prune(func(r Region) bool {
		switch r.Kind {
		case RegionPane, RegionPriceAxis:
			return r.Pane < n
		}
		return true
	})
}

func rect(x, y, w, h float64) image.Rectangle {
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	return image.Rect(x0, y0, x0+int(math.Round(w)), y0+int(math.Round(h)))
}

func (o *Orchestrator) paint(mask *invalidate.Mask) {
	w, h := o.model.Size()
	if w < 1 || h < 1 {
		return
	}
	ts := o.model.TimeScale()
	from, to, ok := ts.VisibleStrictRange()
	if !ok {
		from, to = 0, -1
	}
	plotW := o.model.PlotWidth()
	opts := o.model.Options()

	for i, p := range o.model.Panes() {
		level := mask.PaneLevel(i)
		if level < invalidate.Light {
			continue
		}
		o.metrics.PanesPainted.WithLabelValues(level.String()).Inc()
		paneRegion := Region{Kind: RegionPane, Pane: i}
		if c, ok := o.surface.Begin(paneRegion, rect(0, p.Top(), plotW, p.Height())); ok {
			pc := paneContext{c: c, th: o.theme, ts: ts, from: from, to: to, model: o.model, index: i, pane: p}
			pc.paint()
			o.surface.End(paneRegion)
		}
		axisRegion := Region{Kind: RegionPriceAxis, Pane: i}
		if c, ok := o.surface.Begin(axisRegion, rect(plotW, p.Top(), w-plotW, p.Height())); ok {
			ps := p.Right()
			paintPriceAxis(c, o.theme, ps, o.model.FirstValue(i, ps))
			o.surface.End(axisRegion)
		}
	}
	// Labels move on scroll and zoom, which are Light updates.
	if mask.Global() >= invalidate.Light {
		r := Region{Kind: RegionTimeAxis}
		if c, ok := o.surface.Begin(r, rect(0, h-opts.TimeAxisHeight, w, opts.TimeAxisHeight)); ok {
			paintTimeAxis(c, o.theme, ts, opts.Resolution)
			o.surface.End(r)
		}
	}
	r := Region{Kind: RegionOverlay}
	if c, ok := o.surface.Begin(r, rect(0, 0, w, h)); ok {
		paintCrosshair(c, o.theme, o.model)
		o.surface.End(r)
	}
}

// PaintNow processes the pending mask immediately, for snapshots.
func (o *Orchestrator) PaintNow(now time.Time) {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.frame(now)
}
