// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

import (
	"image/color"

	"github.com/google/uuid"
)

type Kind string

const (
	KindTrendline Kind = "trendline"
	KindFibonacci Kind = "fibonacci"
)

var Kinds = []Kind{KindTrendline, KindFibonacci}

func (k Kind) Valid() bool {
	return k == KindTrendline || k == KindFibonacci
}

// Anchor is one endpoint. Time is in Unix seconds.
type Anchor struct {
	Time  float64 `json:"time"`
	Price float64 `json:"price"`
}

type Options struct {
	Color     color.NRGBA `json:"color"`
	LineWidth float32     `json:"lineWidth"`
	// Fibonacci only, empty means the default levels.
	Levels     []float64 `json:"levels,omitempty"`
	ShowLabels bool      `json:"showLabels"`
}

type Annotation struct {
	ID      string
	Kind    Kind
	P1      Anchor
	P2      Anchor
	Options Options
}

func NewAnnotation(kind Kind, p1, p2 Anchor, opts Options) Annotation {
	return Annotation{
		ID:      uuid.NewString(),
		Kind:    kind,
		P1:      p1,
		P2:      p2,
		Options: opts,
	}
}

// Converter is everything annotations need from the scales.
type Converter interface {
	TimeAtCoordinate(x float64) (float64, bool)
	CoordinateForTime(t float64) (float64, bool)
	PriceToCoordinate(price float64) (float64, bool)
	CoordinateToPrice(y float64) (float64, bool)
	// DataTimeRange is the time of the first and the last loaded bar.
	DataTimeRange() (first, last float64, ok bool)
}

// ResolveAnchor converts a pixel position to an anchor.
func ResolveAnchor(conv Converter, x, y float64) (Anchor, bool) {
	t, ok := conv.TimeAtCoordinate(x)
	if !ok {
		return Anchor{}, false
	}
	p, ok := conv.CoordinateToPrice(y)
	if !ok {
		return Anchor{}, false
	}
	return Anchor{Time: t, Price: p}, true
}

// Project converts an anchor to pixel coordinates.
func Project(conv Converter, a Anchor) (x, y float64, ok bool) {
	x, ok = conv.CoordinateForTime(a.Time)
	if !ok {
		return 0, 0, false
	}
	y, ok = conv.PriceToCoordinate(a.Price)
	return x, y, ok
}
