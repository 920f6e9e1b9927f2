// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartwidget

import (
	"image"
	"math"
	"maycharts/chartmodel"
	"maycharts/render"

	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// Widget lays out a chart model in a gio window. Frames requested by the
// model's orchestrator run during Layout.
type Widget struct {
	requestFocus bool
	model        *chartmodel.Model
	ctrl         *Controller
	surface      *render.GioSurface
	sched        *render.WindowScheduler
}

func NewWidget(model *chartmodel.Model, surface *render.GioSurface, sched *render.WindowScheduler) *Widget {
	return &Widget{
		model:   model,
		ctrl:    NewController(model),
		surface: surface,
		sched:   sched,
	}
}

func (w *Widget) Layout(gtx layout.Context) layout.Dimensions {
	w.handleInput(gtx)
	size := gtx.Constraints.Max
	w.model.Resize(float64(size.X), float64(size.Y))
	w.surface.SetContext(gtx)
	w.sched.RunFrame(gtx.Now)
	w.registerInputOps(gtx.Ops, size)
	return w.surface.Layout(gtx)
}

func (w *Widget) registerInputOps(ops *op.Ops, size image.Point) {
	area := clip.Rect(image.Rectangle{Max: size}).Push(ops)
	pointer.InputOp{
		Tag:   w,
		Types: pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Scroll | pointer.Leave,
		ScrollBounds: image.Rectangle{
			Min: image.Point{X: math.MinInt, Y: math.MinInt},
			Max: image.Point{X: math.MaxInt, Y: math.MaxInt},
		},
	}.Add(ops)
	pointer.CursorCrosshair.Add(ops)
	key.InputOp{
		Tag:  w,
		Keys: "T|F|M|" + key.NameEscape + "|" + key.NameDeleteBackward + "|" + key.NameDeleteForward + "|" + key.NameHome + "|" + key.NameEnd,
	}.Add(ops)
	if w.requestFocus {
		key.FocusOp{Tag: w}.Add(ops)
		w.requestFocus = false
	}
	area.Pop()
}

func (w *Widget) handleInput(gtx layout.Context) {
	for _, gtxEvent := range gtx.Events(w) {
		switch e := gtxEvent.(type) {
		case pointer.Event:
			if e.Type == pointer.Press {
				w.requestFocus = true
			}
			if ev, ok := convertEvent(e); ok {
				w.ctrl.Handle(ev)
			}
		case key.Event:
			if e.State == key.Press {
				if k, ok := convertKey(e.Name); ok {
					w.ctrl.HandleKey(k)
				}
			}
		}
	}
}

func convertEvent(e pointer.Event) (Event, bool) {
	ev := Event{
		X: float64(e.Position.X),
		Y: float64(e.Position.Y),
	}
	if e.Source == pointer.Touch {
		ev.Source = SourceTouch
	}
	switch e.Type {
	case pointer.Press:
		ev.Type = Press
	case pointer.Release, pointer.Cancel:
		ev.Type = Release
	case pointer.Move:
		ev.Type = Move
	case pointer.Drag:
		ev.Type = Drag
	case pointer.Scroll:
		ev.Type = Wheel
		ev.DeltaX = float64(e.Scroll.X)
		ev.DeltaY = float64(e.Scroll.Y)
	case pointer.Leave:
		ev.Type = Leave
	default:
		return Event{}, false
	}
	return ev, true
}

func convertKey(name string) (Key, bool) {
	switch name {
	case "T":
		return KeyTrendline, true
	case "F":
		return KeyFibonacci, true
	case "M":
		return KeyMagnet, true
	case key.NameEscape:
		return KeyCancel, true
	case key.NameDeleteBackward, key.NameDeleteForward:
		return KeyDelete, true
	case key.NameHome:
		return KeyFitContent, true
	case key.NameEnd:
		return KeyRealTime, true
	}
	return 0, false
}
