// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package series

import (
	"errors"
	"image/color"
	"math"
	"maycharts/chartval"
	"maycharts/indapi"
	"sort"
	"time"
)

type Type int

const (
	TypeCandlestick Type = iota
	TypeLine
	TypeHistogram
)

func (t Type) String() string {
	switch t {
	case TypeCandlestick:
		return "candlestick"
	case TypeLine:
		return "line"
	case TypeHistogram:
		return "histogram"
	default:
		return "invalid"
	}
}

// Bar is one data item. Index is the logical time scale index and is
// assigned by the chart model whenever the set of times changes.
type Bar struct {
	Index        int
	Time         float64
	OriginalTime time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Value        float64
	Volume       float64
}

type Options struct {
	Title     string
	Color     color.NRGBA
	UpColor   color.NRGBA
	DownColor color.NRGBA
	LineWidth float32
	// Empty for the pane's right scale, "left" for the left one, anything else is an overlay.
	PriceScaleId string
	Visible      bool
}

var ErrOutOfOrder = errors.New("bar is older than the last bar")

type Series struct {
	id   string
	typ  Type
	opts Options
	bars []Bar
}

func New(id string, t Type, opts Options) *Series {
	return &Series{id: id, typ: t, opts: opts}
}

func (s *Series) Id() string {
	return s.id
}

func (s *Series) Type() Type {
	return s.typ
}

func (s *Series) Options() Options {
	return s.opts
}

func (s *Series) SetOptions(opts Options) {
	s.opts = opts
}

// SetBars replaces the data. Bars are sorted by time, later duplicates win.
func (s *Series) SetBars(bars []Bar) {
	b := make([]Bar, len(bars))
	copy(b, bars)
	sort.SliceStable(b, func(i, j int) bool { return b[i].Time < b[j].Time })
	out := b[:0]
	for i := range b {
		if len(out) > 0 && out[len(out)-1].Time == b[i].Time {
			out[len(out)-1] = b[i]
			continue
		}
		out = append(out, b[i])
	}
	s.bars = out
}

// Update replaces the last bar if the time matches, otherwise appends.
func (s *Series) Update(b Bar) (appended bool, err error) {
	n := len(s.bars)
	if n > 0 {
		last := s.bars[n-1].Time
		if b.Time == last {
			b.Index = s.bars[n-1].Index
			s.bars[n-1] = b
			return false, nil
		}
		if b.Time < last {
			return false, ErrOutOfOrder
		}
	}
	s.bars = append(s.bars, b)
	return true, nil
}

func (s *Series) Bars() []Bar {
	return s.bars
}

func (s *Series) Len() int {
	return len(s.bars)
}

func (s *Series) Times() []float64 {
	t := make([]float64, len(s.bars))
	for i := range s.bars {
		t[i] = s.bars[i].Time
	}
	return t
}

func (s *Series) Last() (Bar, bool) {
	if len(s.bars) == 0 {
		return Bar{}, false
	}
	return s.bars[len(s.bars)-1], true
}

// Reindex assigns logical indices after the time scale points changed.
func (s *Series) Reindex(indexOf func(t float64) int) {
	for i := range s.bars {
		s.bars[i].Index = indexOf(s.bars[i].Time)
	}
}

func (s *Series) search(index int) int {
	return sort.Search(len(s.bars), func(i int) bool { return s.bars[i].Index >= index })
}

// At returns the bar with the given logical index.
func (s *Series) At(index int) (Bar, bool) {
	i := s.search(index)
	if i < len(s.bars) && s.bars[i].Index == index {
		return s.bars[i], true
	}
	return Bar{}, false
}

// Nearest returns the bar whose index is closest to index, ties go left.
func (s *Series) Nearest(index int) (Bar, bool) {
	if len(s.bars) == 0 {
		return Bar{}, false
	}
	i := s.search(index)
	if i >= len(s.bars) {
		return s.bars[len(s.bars)-1], true
	}
	if i > 0 && index-s.bars[i-1].Index <= s.bars[i].Index-index {
		return s.bars[i-1], true
	}
	return s.bars[i], true
}

// Range returns the bars with from <= Index <= to.
func (s *Series) Range(from, to int) []Bar {
	if from > to {
		return nil
	}
	lo := s.search(from)
	hi := s.search(to + 1)
	return s.bars[lo:hi]
}

// PriceValue is the value a line is drawn through and the crosshair snaps to.
func (s *Series) PriceValue(b Bar) float64 {
	if s.typ == TypeCandlestick {
		return b.Close
	}
	return b.Value
}

// MinMax returns the value extent of the bars in [from, to].
func (s *Series) MinMax(from, to int) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, b := range s.Range(from, to) {
		var l, h float64
		switch s.typ {
		case TypeCandlestick:
			l, h = math.Min(b.Low, math.Min(b.Open, b.Close)), math.Max(b.High, math.Max(b.Open, b.Close))
		case TypeHistogram:
			l, h = math.Min(0, b.Value), math.Max(0, b.Value)
		default:
			l, h = b.Value, b.Value
		}
		if math.IsNaN(l) || math.IsNaN(h) {
			continue
		}
		lo, hi = math.Min(lo, l), math.Max(hi, h)
		ok = true
	}
	return
}

// FirstValue is the baseline of percentage and indexed price scales: the
// value of the first bar in [from, to].
func (s *Series) FirstValue(from, to int) (float64, bool) {
	for _, b := range s.Range(from, to) {
		v := s.PriceValue(b)
		if !math.IsNaN(v) {
			return v, true
		}
	}
	return 0, false
}

func FromCandles(data []indapi.CandleData) []Bar {
	bars := make([]Bar, 0, len(data))
	for i := range data {
		bars = append(bars, FromCandle(data[i]))
	}
	return bars
}

func FromCandle(c indapi.CandleData) Bar {
	return Bar{
		Time:         float64(c.Timestamp.Unix()),
		OriginalTime: c.Timestamp,
		Open:         chartval.DecimalToFloat(c.OpenPrice),
		High:         chartval.DecimalToFloat(c.HighPrice),
		Low:          chartval.DecimalToFloat(c.LowPrice),
		Close:        chartval.DecimalToFloat(c.ClosePrice),
		Value:        chartval.DecimalToFloat(c.ClosePrice),
		Volume:       chartval.DecimalToFloat(c.Volume),
	}
}

// VolumeBars converts candles to histogram bars carrying the volume.
func VolumeBars(data []indapi.CandleData) []Bar {
	bars := FromCandles(data)
	for i := range bars {
		bars[i].Value = bars[i].Volume
	}
	return bars
}

// FromLine converts indicator output, positions without a value are skipped.
func FromLine(l indapi.IndicatorLine) []Bar {
	var bars []Bar
	for i := range l.Values {
		if i >= len(l.Timestamps) || math.IsNaN(l.Values[i]) {
			continue
		}
		bars = append(bars, Bar{
			Time:         float64(l.Timestamps[i].Unix()),
			OriginalTime: l.Timestamps[i],
			Value:        l.Values[i],
			Close:        l.Values[i],
		})
	}
	return bars
}
