// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package timescale

import (
	"math"
	"maycharts/chartval"
	"maycharts/invalidate"
	"sort"
	"time"
)

type LogicalRange = invalidate.LogicalRange

// Point is one entry of the time scale. Time is in Unix seconds.
type Point struct {
	Index    int
	Time     float64
	Original time.Time
}

type Options struct {
	BarSpacing                float64
	MinBarSpacing             float64
	RightOffset               float64
	FixLeftEdge               bool
	FixRightEdge              bool
	RightBarStaysOnScroll     bool
	ShiftVisibleRangeOnNewBar bool
	LockVisibleRangeOnResize  bool
	// Seconds per bar, used for extrapolation as long as fewer than two points exist.
	FallbackTimeStep float64
}

func DefaultOptions() Options {
	return Options{
		BarSpacing:                6,
		MinBarSpacing:             0.5,
		ShiftVisibleRangeOnNewBar: true,
		FallbackTimeStep:          60,
	}
}

type TimeScale struct {
	opts        Options
	points      []Point
	width       float64
	barSpacing  float64
	rightOffset float64

	scrolling         bool
	scrollStartX      float64
	scrollStartOffset float64
}

func New(opts Options) *TimeScale {
	if opts.MinBarSpacing <= 0 {
		opts.MinBarSpacing = DefaultOptions().MinBarSpacing
	}
	if opts.BarSpacing <= 0 {
		opts.BarSpacing = DefaultOptions().BarSpacing
	}
	return &TimeScale{
		opts:        opts,
		barSpacing:  opts.BarSpacing,
		rightOffset: opts.RightOffset,
	}
}

func (ts *TimeScale) Options() Options {
	return ts.opts
}

func (ts *TimeScale) ApplyOptions(opts Options) {
	if opts.MinBarSpacing <= 0 {
		opts.MinBarSpacing = ts.opts.MinBarSpacing
	}
	if opts.BarSpacing <= 0 {
		opts.BarSpacing = ts.opts.BarSpacing
	}
	barSpacingChanged := opts.BarSpacing != ts.opts.BarSpacing
	offsetChanged := opts.RightOffset != ts.opts.RightOffset
	ts.opts = opts
	if barSpacingChanged {
		ts.SetBarSpacing(opts.BarSpacing)
	}
	if offsetChanged {
		ts.SetRightOffset(opts.RightOffset)
	}
	ts.correctBarSpacing()
	ts.correctOffset()
}

// SetPoints replaces the points. Indices are reassigned 0..n-1.
func (ts *TimeScale) SetPoints(points []Point) {
	oldLen := len(ts.points)
	lastWasVisible := ts.lastVisible()
	ts.points = make([]Point, len(points))
	copy(ts.points, points)
	sort.SliceStable(ts.points, func(i, j int) bool { return ts.points[i].Time < ts.points[j].Time })
	for i := range ts.points {
		ts.points[i].Index = i
	}
	added := len(ts.points) - oldLen
	if oldLen > 0 && added > 0 && !(ts.opts.ShiftVisibleRangeOnNewBar && lastWasVisible) {
		// Keep the same bars in view.
		ts.rightOffset -= float64(added)
	}
	ts.correctBarSpacing()
	ts.correctOffset()
}

func (ts *TimeScale) lastVisible() bool {
	if len(ts.points) == 0 || ts.width <= 0 {
		return true
	}
	r, _ := ts.VisibleLogicalRange()
	base := float64(ts.BaseIndex())
	return r.From <= base && base <= r.To
}

func (ts *TimeScale) Points() []Point {
	return ts.points
}

func (ts *TimeScale) IsEmpty() bool {
	return len(ts.points) == 0
}

// BaseIndex is the index of the last point, 0 for an empty scale.
func (ts *TimeScale) BaseIndex() int {
	return max(len(ts.points)-1, 0)
}

func (ts *TimeScale) Width() float64 {
	return ts.width
}

func (ts *TimeScale) SetWidth(w float64) {
	if w < 0 || math.IsNaN(w) || w == ts.width {
		return
	}
	if ts.opts.LockVisibleRangeOnResize && ts.width > 0 {
		ts.barSpacing = ts.barSpacing * w / ts.width
	}
	ts.width = w
	ts.correctBarSpacing()
	ts.correctOffset()
}

func (ts *TimeScale) BarSpacing() float64 {
	return ts.barSpacing
}

func (ts *TimeScale) SetBarSpacing(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	ts.barSpacing = v
	ts.correctBarSpacing()
	ts.correctOffset()
}

func (ts *TimeScale) RightOffset() float64 {
	return ts.rightOffset
}

func (ts *TimeScale) SetRightOffset(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	ts.rightOffset = v
	ts.correctOffset()
}

func (ts *TimeScale) IndexToCoordinate(index float64) float64 {
	deltaFromRight := float64(ts.BaseIndex()) + ts.rightOffset - index
	return ts.width - (deltaFromRight+0.5)*ts.barSpacing - 1
}

// FloatIndexAt returns the logical index for x, the inverse of IndexToCoordinate
// shifted by half a bar.
func (ts *TimeScale) FloatIndexAt(x float64) float64 {
	deltaFromRight := (ts.width - 1 - x) / ts.barSpacing
	return chartval.RoundFloatIndex(float64(ts.BaseIndex()) + ts.rightOffset - deltaFromRight)
}

func (ts *TimeScale) CoordinateToIndex(x float64) int {
	return int(math.Ceil(ts.FloatIndexAt(x)))
}

// TimeToIndex returns the index of the point with the given time, or the
// nearest point if exact is false.
func (ts *TimeScale) TimeToIndex(t float64, exact bool) (int, bool) {
	n := len(ts.points)
	if n == 0 {
		return 0, false
	}
	i := sort.Search(n, func(i int) bool { return ts.points[i].Time >= t })
	if i < n && ts.points[i].Time == t {
		return i, true
	}
	if exact {
		return 0, false
	}
	if i >= n {
		return n - 1, true
	}
	if i > 0 && t-ts.points[i-1].Time <= ts.points[i].Time-t {
		return i - 1, true
	}
	return i, true
}

func (ts *TimeScale) IndexToPoint(index int) (Point, bool) {
	if index < 0 || index >= len(ts.points) {
		return Point{}, false
	}
	return ts.points[index], true
}

func (ts *TimeScale) VisibleLogicalRange() (LogicalRange, bool) {
	if len(ts.points) == 0 || ts.width <= 0 {
		return LogicalRange{}, false
	}
	right := float64(ts.BaseIndex()) + ts.rightOffset
	left := right - ts.width/ts.barSpacing + 1
	return LogicalRange{From: left, To: right}, true
}

// VisibleStrictRange rounds the visible range outward to whole indices.
func (ts *TimeScale) VisibleStrictRange() (from, to int, ok bool) {
	r, ok := ts.VisibleLogicalRange()
	if !ok {
		return 0, 0, false
	}
	return int(math.Floor(r.From)), int(math.Ceil(r.To)), true
}

// SetLogicalRange makes exactly the given range visible.
func (ts *TimeScale) SetLogicalRange(r LogicalRange) {
	length := r.To - r.From + 1
	if length <= 0 || ts.width <= 0 || math.IsNaN(length) {
		return
	}
	ts.barSpacing = ts.width / length
	ts.rightOffset = r.To - float64(ts.BaseIndex())
	ts.correctBarSpacing()
	ts.correctOffset()
}

func (ts *TimeScale) FitContent() {
	if len(ts.points) == 0 {
		return
	}
	ts.SetLogicalRange(LogicalRange{From: 0, To: float64(ts.BaseIndex()) + ts.opts.RightOffset})
}

func (ts *TimeScale) Reset() {
	ts.barSpacing = ts.opts.BarSpacing
	ts.rightOffset = ts.opts.RightOffset
	ts.scrolling = false
	ts.correctBarSpacing()
	ts.correctOffset()
}

// Zoom changes the bar spacing by scale/10 of its value. The logical index
// under x stays at x unless the right bar is configured to stay in place.
func (ts *TimeScale) Zoom(x, scale float64) {
	if math.IsNaN(scale) || ts.width <= 0 {
		return
	}
	floatIndexAtZoomPoint := ts.FloatIndexAt(x)
	ts.barSpacing += scale * (ts.barSpacing / 10)
	ts.correctBarSpacing()
	if !ts.opts.RightBarStaysOnScroll {
		ts.rightOffset += floatIndexAtZoomPoint - ts.FloatIndexAt(x)
	}
	ts.correctOffset()
}

func (ts *TimeScale) StartScroll(x float64) {
	ts.scrolling = true
	ts.scrollStartX = x
	ts.scrollStartOffset = ts.rightOffset
}

func (ts *TimeScale) ScrollTo(x float64) {
	if !ts.scrolling {
		return
	}
	ts.rightOffset = ts.scrollStartOffset + (ts.scrollStartX-x)/ts.barSpacing
	ts.correctOffset()
}

func (ts *TimeScale) EndScroll() {
	ts.scrolling = false
}

func (ts *TimeScale) IsScrolling() bool {
	return ts.scrolling
}

func (ts *TimeScale) minBarSpacing() float64 {
	m := ts.opts.MinBarSpacing
	if ts.opts.FixLeftEdge && ts.opts.FixRightEdge && len(ts.points) > 0 && ts.width > 0 {
		m = math.Max(m, ts.width/float64(len(ts.points)))
	}
	return m
}

func (ts *TimeScale) correctBarSpacing() {
	if ts.width > 0 && ts.barSpacing > ts.width/2 {
		ts.barSpacing = ts.width / 2
	}
	if m := ts.minBarSpacing(); ts.barSpacing < m {
		ts.barSpacing = m
	}
}

func (ts *TimeScale) minRightOffset() float64 {
	n := len(ts.points)
	estimation := math.Min(2, float64(n))
	if ts.opts.FixLeftEdge {
		estimation = ts.width / ts.barSpacing
	}
	return -float64(ts.BaseIndex()) - 1 + estimation
}

func (ts *TimeScale) maxRightOffset() float64 {
	if ts.opts.FixRightEdge {
		return 0
	}
	return ts.width/ts.barSpacing - math.Min(2, float64(len(ts.points)))
}

func (ts *TimeScale) correctOffset() {
	if len(ts.points) == 0 || ts.width <= 0 {
		return
	}
	if lo := ts.minRightOffset(); ts.rightOffset < lo {
		ts.rightOffset = lo
	}
	if hi := ts.maxRightOffset(); ts.rightOffset > hi {
		ts.rightOffset = hi
	}
}
