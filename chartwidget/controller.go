// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartwidget

import (
	"maycharts/chartmodel"
	"maycharts/drawing"
	"maycharts/pricescale"
)

type area int

const (
	areaNone area = iota
	areaPane
	areaPriceAxis
	areaTimeAxis
)

type gesture int

const (
	gestureNone gesture = iota
	gesturePan
	gestureAnnotation
	gesturePriceScale
	gestureTimeAxis
)

// Controller maps pointer events to model mutators. It keeps the state of
// the gesture in progress between press and release.
type Controller struct {
	model   *chartmodel.Model
	gesture gesture
	pane    int
	paneTop float64
	lastX   float64
}

func NewController(model *chartmodel.Model) *Controller {
	return &Controller{model: model}
}

func (c *Controller) hitArea(x, y float64) (a area, pane int, localY float64) {
	w, h := c.model.Size()
	plotW := c.model.PlotWidth()
	axisTop := h - c.model.Options().TimeAxisHeight
	if x < 0 || y < 0 || x >= w || y >= h {
		return areaNone, 0, 0
	}
	if y >= axisTop {
		return areaTimeAxis, 0, 0
	}
	pane, localY, ok := c.model.PaneAt(y)
	if !ok {
		return areaNone, 0, 0
	}
	if x >= plotW {
		return areaPriceAxis, pane, localY
	}
	return areaPane, pane, localY
}

// Handle processes one event. Events outside the chart are ignored unless
// a gesture is in progress.
func (c *Controller) Handle(e Event) {
	switch e.Type {
	case Press:
		c.press(e)
	case Drag:
		c.drag(e)
	case Release:
		c.release()
	case Move:
		c.hover(e)
	case Wheel:
		c.wheel(e)
	case Pinch:
		if e.Scale > 0 {
			c.model.ZoomTime(e.X, (e.Scale-1)*10)
		}
	case Leave:
		if c.gesture == gestureNone {
			c.model.ClearCrosshair()
		}
	}
}

func (c *Controller) press(e Event) {
	a, pane, localY := c.hitArea(e.X, e.Y)
	c.pane = pane
	c.paneTop = e.Y - localY
	c.lastX = e.X
	switch a {
	case areaPane:
		// Touch has no hover, the crosshair follows the finger instead.
		if e.Source == SourceTouch {
			c.model.SetCrosshair(pane, e.X, localY)
		}
		if _, ok := c.model.ActiveTool(); ok {
			if pane == chartmodel.AnnotationPane {
				c.model.DrawingClick(e.X, localY)
			}
			return
		}
		if pane == chartmodel.AnnotationPane {
			if c.model.StartDrag(e.X, localY) {
				c.gesture = gestureAnnotation
				return
			}
		}
		c.model.StartScrollTime(e.X)
		if p, ok := c.model.Pane(pane); ok && !p.Right().IsAutoScale() {
			c.model.StartScrollPrice(pane, pricescale.RightId, localY)
		}
		c.gesture = gesturePan
	case areaPriceAxis:
		c.model.StartScalePrice(pane, pricescale.RightId, localY)
		c.gesture = gesturePriceScale
	case areaTimeAxis:
		c.gesture = gestureTimeAxis
	}
}

func (c *Controller) drag(e Event) {
	localY := e.Y - c.paneTop
	switch c.gesture {
	case gesturePan:
		c.model.ScrollTimeTo(e.X)
		if p, ok := c.model.Pane(c.pane); ok && !p.Right().IsAutoScale() {
			c.model.ScrollPriceTo(c.pane, pricescale.RightId, localY)
		}
		if e.Source == SourceTouch {
			c.model.SetCrosshair(c.pane, e.X, localY)
		}
	case gestureAnnotation:
		c.model.DragTo(e.X, localY)
	case gesturePriceScale:
		c.model.ScalePriceTo(c.pane, pricescale.RightId, localY)
	case gestureTimeAxis:
		dx := e.X - c.lastX
		c.lastX = e.X
		// Dragging to the right widens the bars.
		c.model.ZoomTime(c.model.PlotWidth(), dx/10)
	default:
		c.hover(e)
	}
}

func (c *Controller) release() {
	switch c.gesture {
	case gesturePan:
		c.model.EndScrollTime()
		if p, ok := c.model.Pane(c.pane); ok && !p.Right().IsAutoScale() {
			c.model.EndScrollPrice(c.pane, pricescale.RightId)
		}
	case gestureAnnotation:
		c.model.EndDrag()
	case gesturePriceScale:
		c.model.EndScalePrice(c.pane, pricescale.RightId)
	}
	c.gesture = gestureNone
}

func (c *Controller) hover(e Event) {
	a, pane, localY := c.hitArea(e.X, e.Y)
	if a != areaPane {
		c.model.ClearCrosshair()
		return
	}
	c.model.SetCrosshair(pane, e.X, localY)
	if _, ok := c.model.ActiveTool(); ok && pane == chartmodel.AnnotationPane {
		c.model.DrawingMove(e.X, localY)
	}
}

func (c *Controller) wheel(e Event) {
	a, _, _ := c.hitArea(e.X, e.Y)
	if a != areaPane && a != areaTimeAxis {
		return
	}
	if e.DeltaY != 0 {
		scale := 1.0
		if e.DeltaY > 0 {
			scale = -1
		}
		c.model.ZoomTime(e.X, scale)
	}
	if e.DeltaX != 0 && c.gesture == gestureNone {
		c.model.StartScrollTime(e.X)
		c.model.ScrollTimeTo(e.X - e.DeltaX)
		c.model.EndScrollTime()
	}
}

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.gesture != gestureNone
}

func (c *Controller) toggleTool(kind drawing.Kind) {
	if active, ok := c.model.ActiveTool(); ok && active == kind {
		c.model.SetActiveTool("")
		return
	}
	c.model.SetActiveTool(kind)
}

func (c *Controller) HandleKey(k Key) {
	switch k {
	case KeyTrendline:
		c.toggleTool(drawing.KindTrendline)
	case KeyFibonacci:
		c.toggleTool(drawing.KindFibonacci)
	case KeyMagnet:
		if c.model.CrosshairMode() == chartmodel.CrosshairMagnet {
			c.model.SetCrosshairMode(chartmodel.CrosshairNormal)
		} else {
			c.model.SetCrosshairMode(chartmodel.CrosshairMagnet)
		}
	case KeyCancel:
		c.model.SetActiveTool("")
	case KeyDelete:
		if id, ok := c.model.Selected(); ok && c.gesture == gestureNone {
			c.model.RemoveAnnotation(id)
		}
	case KeyFitContent:
		c.model.FitContent()
	case KeyRealTime:
		c.model.ScrollToRealTime()
	}
}
