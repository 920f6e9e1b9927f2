// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package pricescale

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeLogarithmic
	ModePercentage
	ModeIndexedTo100
)

// Side ids of the two axis scales, any other id is an overlay scale.
const (
	RightId = "right"
	LeftId  = "left"
)

// Range is a range of internal values: prices in normal mode, log10 of
// prices in logarithmic mode, percentages otherwise.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Length() float64 {
	return r.Max - r.Min
}

func (r Range) IsEmpty() bool {
	return r.Length() == 0 || math.IsNaN(r.Length())
}

func (r Range) scaleAroundCenter(coeff float64) Range {
	if math.IsInf(coeff, 0) || coeff <= 0 {
		return r
	}
	center := (r.Max + r.Min) / 2
	half := r.Length() / 2 * coeff
	return Range{Min: center - half, Max: center + half}
}

func (r Range) shift(delta float64) Range {
	return Range{Min: r.Min + delta, Max: r.Max + delta}
}

// FirstValue is the baseline of percentage and indexed modes, the value of
// the first visible bar. Ok is false as long as there is no data.
type FirstValue struct {
	Value float64
	Ok    bool
}

type Options struct {
	Mode         Mode
	AutoScale    bool
	InvertScale  bool
	TopMargin    float64
	BottomMargin float64
	// Minimum pixel distance of two tick marks.
	MinTickSpacing float64
	Visible        bool
}

func DefaultOptions() Options {
	return Options{
		Mode:           ModeNormal,
		AutoScale:      true,
		TopMargin:      0.2,
		BottomMargin:   0.1,
		MinTickSpacing: 40,
		Visible:        true,
	}
}

type PriceScale struct {
	id       string
	opts     Options
	height   float64
	rng      Range
	hasRange bool

	scaleStartY   float64
	scrollStartY  float64
	rangeSnapshot Range
	scaling       bool
	scrolling     bool
}

func New(id string, opts Options) *PriceScale {
	return &PriceScale{id: id, opts: opts}
}

func (ps *PriceScale) Id() string {
	return ps.id
}

func (ps *PriceScale) Options() Options {
	return ps.opts
}

func (ps *PriceScale) ApplyOptions(opts Options) {
	modeChanged := opts.Mode != ps.opts.Mode
	ps.opts = opts
	if modeChanged {
		// The internal unit changes, the range is recomputed from data.
		ps.hasRange = false
		ps.opts.AutoScale = true
	}
}

func (ps *PriceScale) Mode() Mode {
	return ps.opts.Mode
}

func (ps *PriceScale) IsAutoScale() bool {
	return ps.opts.AutoScale
}

// SetAutoScale enables or disables fitting to visible data. A custom range is
// kept until the next recompute.
func (ps *PriceScale) SetAutoScale(on bool) {
	ps.opts.AutoScale = on
}

func (ps *PriceScale) Height() float64 {
	return ps.height
}

func (ps *PriceScale) SetHeight(h float64) {
	if h < 0 || math.IsNaN(h) {
		return
	}
	ps.height = h
}

func (ps *PriceScale) Range() (Range, bool) {
	return ps.rng, ps.hasRange
}

// SetCustomRange sets the visible range and disables auto-scale.
func (ps *PriceScale) SetCustomRange(r Range) {
	ps.opts.AutoScale = false
	ps.setRange(r)
}

func (ps *PriceScale) setRange(r Range) {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	ps.rng = r
	ps.hasRange = true
}

// Recalculate fits the range to the given prices. It does nothing if
// auto-scale is off or there are no values.
func (ps *PriceScale) Recalculate(prices []float64, fv FirstValue) bool {
	if !ps.opts.AutoScale {
		return false
	}
	values := make([]float64, 0, len(prices))
	for _, p := range prices {
		if v, ok := ps.toInternal(p, fv); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return false
	}
	r := Range{Min: floats.Min(values), Max: floats.Max(values)}
	if r.Min == r.Max {
		r.Min -= 0.5
		r.Max += 0.5
	}
	ps.setRange(r)
	return true
}

func (ps *PriceScale) needsFirstValue() bool {
	return ps.opts.Mode == ModePercentage || ps.opts.Mode == ModeIndexedTo100
}

func (ps *PriceScale) toInternal(price float64, fv FirstValue) (float64, bool) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}
	switch ps.opts.Mode {
	case ModeLogarithmic:
		if price <= 0 {
			return 0, false
		}
		return math.Log10(price), true
	case ModePercentage:
		if !fv.Ok || fv.Value == 0 {
			return 0, false
		}
		return (price - fv.Value) / math.Abs(fv.Value) * 100, true
	case ModeIndexedTo100:
		if !fv.Ok || fv.Value == 0 {
			return 0, false
		}
		return price / fv.Value * 100, true
	default:
		return price, true
	}
}

func (ps *PriceScale) fromInternal(v float64, fv FirstValue) (float64, bool) {
	switch ps.opts.Mode {
	case ModeLogarithmic:
		return math.Pow(10, v), true
	case ModePercentage:
		if !fv.Ok || fv.Value == 0 {
			return 0, false
		}
		return v/100*math.Abs(fv.Value) + fv.Value, true
	case ModeIndexedTo100:
		if !fv.Ok || fv.Value == 0 {
			return 0, false
		}
		return v / 100 * fv.Value, true
	default:
		return v, true
	}
}

func (ps *PriceScale) topMarginPx() float64 {
	return ps.height * ps.opts.TopMargin
}

func (ps *PriceScale) bottomMarginPx() float64 {
	return ps.height * ps.opts.BottomMargin
}

func (ps *PriceScale) internalHeight() float64 {
	return ps.height - ps.topMarginPx() - ps.bottomMarginPx()
}

func (ps *PriceScale) ready() bool {
	return ps.hasRange && !ps.rng.IsEmpty() && ps.internalHeight() > 1
}

func (ps *PriceScale) invertedCoordinate(c float64) float64 {
	if ps.opts.InvertScale {
		return c
	}
	return ps.height - 1 - c
}

// InternalToCoordinate maps an internal value to a y coordinate.
func (ps *PriceScale) InternalToCoordinate(v float64) (float64, bool) {
	if !ps.ready() {
		return 0, false
	}
	inv := ps.bottomMarginPx() + (ps.internalHeight()-1)*(v-ps.rng.Min)/ps.rng.Length()
	return ps.invertedCoordinate(inv), true
}

func (ps *PriceScale) CoordinateToInternal(y float64) (float64, bool) {
	if !ps.ready() {
		return 0, false
	}
	inv := ps.invertedCoordinate(y) - ps.bottomMarginPx()
	return ps.rng.Min + ps.rng.Length()*inv/(ps.internalHeight()-1), true
}

// PriceToCoordinate returns false while the scale is not ready: no first
// value, no range or no height.
func (ps *PriceScale) PriceToCoordinate(price float64, fv FirstValue) (float64, bool) {
	if !fv.Ok {
		return 0, false
	}
	v, ok := ps.toInternal(price, fv)
	if !ok {
		return 0, false
	}
	return ps.InternalToCoordinate(v)
}

func (ps *PriceScale) CoordinateToPrice(y float64, fv FirstValue) (float64, bool) {
	if !fv.Ok {
		return 0, false
	}
	v, ok := ps.CoordinateToInternal(y)
	if !ok {
		return 0, false
	}
	return ps.fromInternal(v, fv)
}
