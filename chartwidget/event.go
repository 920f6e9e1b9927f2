// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartwidget

type EventType int

const (
	Press EventType = iota
	Release
	Move
	Drag
	Wheel
	Pinch
	Leave
)

func (t EventType) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Move:
		return "move"
	case Drag:
		return "drag"
	case Wheel:
		return "wheel"
	case Pinch:
		return "pinch"
	case Leave:
		return "leave"
	default:
		return "invalid"
	}
}

type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// Event is a pointer event in chart pixel coordinates. DeltaX and DeltaY are
// wheel deltas, Scale is the pinch factor relative to the previous event.
type Event struct {
	Type   EventType
	Source Source
	X      float64
	Y      float64
	DeltaX float64
	DeltaY float64
	Scale  float64
}

// Key is a keyboard shortcut of the chart.
type Key int

const (
	KeyTrendline Key = iota
	KeyFibonacci
	KeyMagnet
	KeyCancel
	KeyDelete
	KeyFitContent
	KeyRealTime
)
