// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

import "math"

type HitType int

const (
	HitNone HitType = iota
	HitPoint1
	HitPoint2
	HitLine
)

func (h HitType) String() string {
	switch h {
	case HitPoint1:
		return "point1"
	case HitPoint2:
		return "point2"
	case HitLine:
		return "line"
	default:
		return "none"
	}
}

type Hit struct {
	ID       string
	Kind     Kind
	Type     HitType
	Distance float64
}

type HitOptions struct {
	PointTolerance float64
	LineTolerance  float64
}

func DefaultHitOptions() HitOptions {
	return HitOptions{PointTolerance: 8, LineTolerance: 5}
}

// HitTest returns the closest hit among all annotations. Within one
// annotation an anchor hit takes priority over a line hit.
func HitTest(annos []Annotation, conv Converter, x, y float64, opts HitOptions) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	for i := range annos {
		h, ok := hitTestOne(annos[i], conv, x, y, opts)
		if ok && h.Distance < best.Distance {
			best = h
		}
	}
	return best, best.Type != HitNone
}

func hitTestOne(a Annotation, conv Converter, x, y float64, opts HitOptions) (Hit, bool) {
	x1, y1, ok1 := Project(conv, a.P1)
	x2, y2, ok2 := Project(conv, a.P2)
	if !ok1 || !ok2 {
		return Hit{}, false
	}
	hit := Hit{ID: a.ID, Kind: a.Kind}
	d1 := math.Hypot(x-x1, y-y1)
	d2 := math.Hypot(x-x2, y-y2)
	if d1 <= opts.PointTolerance || d2 <= opts.PointTolerance {
		if d1 <= d2 {
			hit.Type, hit.Distance = HitPoint1, d1
		} else {
			hit.Type, hit.Distance = HitPoint2, d2
		}
		return hit, true
	}
	d := segmentDistance(x, y, x1, y1, x2, y2)
	if a.Kind == KindFibonacci {
		left, right := math.Min(x1, x2), math.Max(x1, x2)
		for _, l := range a.Levels() {
			ly, ok := conv.PriceToCoordinate(l.Price)
			if ok {
				d = math.Min(d, segmentDistance(x, y, left, ly, right, ly))
			}
		}
	}
	if d <= opts.LineTolerance {
		hit.Type, hit.Distance = HitLine, d
		return hit, true
	}
	return Hit{}, false
}

// Distance from (px, py) to the segment (x1, y1)-(x2, y2).
func segmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
