// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

import "math"

type DragPolicy int

const (
	// Anchors may leave the loaded data, times are extrapolated.
	DragFree DragPolicy = iota
	// Anchor times are clamped to the first and last loaded bar.
	DragClampToData
)

// Drag is an edit of one annotation in progress.
type Drag struct {
	orig  Annotation
	hit   HitType
	start Anchor
}

// StartDrag begins a drag. Fibonacci retracements can only be dragged by
// their anchors, a line hit only selects them.
func StartDrag(a Annotation, hit Hit, conv Converter, x, y float64) (*Drag, bool) {
	if hit.ID != a.ID || hit.Type == HitNone {
		return nil, false
	}
	if a.Kind == KindFibonacci && hit.Type == HitLine {
		return nil, false
	}
	start, ok := ResolveAnchor(conv, x, y)
	if !ok {
		return nil, false
	}
	return &Drag{orig: a, hit: hit.Type, start: start}, true
}

func (d *Drag) ID() string {
	return d.orig.ID
}

func (d *Drag) Original() Annotation {
	return d.orig
}

// Move returns the annotation for the pointer at (x, y).
func (d *Drag) Move(conv Converter, x, y float64, policy DragPolicy) (Annotation, bool) {
	pos, ok := ResolveAnchor(conv, x, y)
	if !ok {
		return d.orig, false
	}
	a := d.orig
	switch d.hit {
	case HitPoint1:
		a.P1 = pos
	case HitPoint2:
		a.P2 = pos
	case HitLine:
		dt := pos.Time - d.start.Time
		dp := pos.Price - d.start.Price
		a.P1 = Anchor{Time: a.P1.Time + dt, Price: a.P1.Price + dp}
		a.P2 = Anchor{Time: a.P2.Time + dt, Price: a.P2.Price + dp}
		if policy == DragClampToData {
			a.P1, a.P2 = clampSegment(conv, a.P1, a.P2)
			return a, true
		}
	}
	if policy == DragClampToData {
		a.P1 = clampAnchor(conv, a.P1)
		a.P2 = clampAnchor(conv, a.P2)
	}
	return a, true
}

func clampAnchor(conv Converter, a Anchor) Anchor {
	first, last, ok := conv.DataTimeRange()
	if !ok {
		return a
	}
	a.Time = math.Max(first, math.Min(last, a.Time))
	return a
}

// Shifts both anchors by the same amount so that the shape is kept.
func clampSegment(conv Converter, p1, p2 Anchor) (Anchor, Anchor) {
	first, last, ok := conv.DataTimeRange()
	if !ok {
		return p1, p2
	}
	lo, hi := math.Min(p1.Time, p2.Time), math.Max(p1.Time, p2.Time)
	var shift float64
	switch {
	case hi-lo > last-first:
		return clampAnchor(conv, p1), clampAnchor(conv, p2)
	case lo < first:
		shift = first - lo
	case hi > last:
		shift = last - hi
	}
	p1.Time += shift
	p2.Time += shift
	return p1, p2
}
