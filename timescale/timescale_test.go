// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package timescale

import (
	"maycharts/invalidate"
	"testing"

	"github.com/stretchr/testify/assert"
)

func points(times ...float64) []Point {
	p := make([]Point, len(times))
	for i, t := range times {
		p[i] = Point{Time: t}
	}
	return p
}

// Two points at 100 and 200 drawn at x=10 and x=20.
func scenarioScale() *TimeScale {
	opts := DefaultOptions()
	opts.BarSpacing = 10
	ts := New(opts)
	ts.SetWidth(26)
	ts.SetPoints(points(100, 200))
	return ts
}

func TestScenarioCoordinates(t *testing.T) {
	ts := scenarioScale()
	assert.Equal(t, 10.0, ts.IndexToCoordinate(0))
	assert.Equal(t, 20.0, ts.IndexToCoordinate(1))
}

func TestClickBeyondLastBarExtrapolates(t *testing.T) {
	ts := scenarioScale()
	tm, ok := ts.TimeAtCoordinate(30)
	assert.True(t, ok)
	assert.InDelta(t, 300, tm, 1e-9)

	x, ok := ts.CoordinateForTime(300)
	assert.True(t, ok)
	assert.InDelta(t, 30, x, 1e-9)
}

func TestExtrapolationBoundary(t *testing.T) {
	ts := scenarioScale()
	lastX := ts.IndexToCoordinate(float64(ts.BaseIndex()))
	assert.False(t, ts.IsExtrapolated(lastX))
	for _, dx := range []float64{0.01, 0.4, 3, 17.5} {
		x := lastX + dx
		assert.True(t, ts.IsExtrapolated(x))
		tm, ok := ts.TimeAtCoordinate(x)
		assert.True(t, ok)
		// A nearest point lookup would give 200.
		assert.Greater(t, tm, 200.0)
		assert.InDelta(t, 200+dx*10, tm, 1e-9)
	}
}

func TestTimeInsideDataUsesNearestPoint(t *testing.T) {
	ts := scenarioScale()
	tm, ok := ts.TimeAtCoordinate(11)
	assert.True(t, ok)
	assert.Equal(t, 100.0, tm)
	x, ok := ts.CoordinateForTime(150)
	assert.True(t, ok)
	assert.InDelta(t, 15, x, 1e-9)
}

func TestExtrapolationFallbackStep(t *testing.T) {
	opts := DefaultOptions()
	opts.BarSpacing = 10
	opts.FallbackTimeStep = 60
	ts := New(opts)
	ts.SetWidth(100)
	_, ok := ts.TimeAtCoordinate(50)
	assert.False(t, ok)

	ts.SetPoints(points(1000))
	assert.Equal(t, 6.0, ts.TimePerPixel())
	lastX := ts.IndexToCoordinate(0)
	tm, ok := ts.TimeAtCoordinate(lastX + 10)
	assert.True(t, ok)
	assert.InDelta(t, 1060, tm, 1e-9)
}

func TestIndexRoundTrip(t *testing.T) {
	var p []Point
	for i := 0; i < 500; i++ {
		p = append(p, Point{Time: float64(i * 60)})
	}
	for _, spacing := range []float64{0.5, 1, 3.3, 6, 17} {
		for _, offset := range []float64{-50, -3.7, 0, 2.25, 10} {
			opts := DefaultOptions()
			opts.BarSpacing = spacing
			ts := New(opts)
			ts.SetWidth(800)
			ts.SetPoints(p)
			ts.SetRightOffset(offset)
			for i := 0; i <= ts.BaseIndex(); i++ {
				assert.Equal(t, i, ts.CoordinateToIndex(ts.IndexToCoordinate(float64(i))))
			}
		}
	}
}

func TestApplyBarSpacingIdempotent(t *testing.T) {
	once := scenarioScale()
	twice := scenarioScale()
	op := invalidate.TimeScaleOp{Type: invalidate.OpApplyBarSpacing, Value: 7}
	once.Replay([]invalidate.TimeScaleOp{op}, 0)
	twice.Replay([]invalidate.TimeScaleOp{op, op}, 0)
	assert.Equal(t, once.BarSpacing(), twice.BarSpacing())
	assert.Equal(t, once.RightOffset(), twice.RightOffset())
}

func TestLastBarSpacingWins(t *testing.T) {
	ts := scenarioScale()
	ts.Replay([]invalidate.TimeScaleOp{
		{Type: invalidate.OpApplyBarSpacing, Value: 4},
		{Type: invalidate.OpApplyBarSpacing, Value: 8},
	}, 0)
	assert.Equal(t, 8.0, ts.BarSpacing())
}

func TestZoomKeepsPointFixed(t *testing.T) {
	var p []Point
	for i := 0; i < 100; i++ {
		p = append(p, Point{Time: float64(i)})
	}
	ts := New(DefaultOptions())
	ts.SetWidth(400)
	ts.SetPoints(p)
	before := ts.FloatIndexAt(200)
	ts.Zoom(200, 2)
	assert.InDelta(t, 7.2, ts.BarSpacing(), 1e-9)
	assert.InDelta(t, before, ts.FloatIndexAt(200), 1e-5)

	ts.Zoom(200, -1000)
	assert.Equal(t, 0.5, ts.BarSpacing())
	ts.Zoom(200, 100000)
	assert.Equal(t, 200.0, ts.BarSpacing())
}

func TestScrollIsContinuous(t *testing.T) {
	var p []Point
	for i := 0; i < 100; i++ {
		p = append(p, Point{Time: float64(i)})
	}
	ts := New(DefaultOptions())
	ts.SetWidth(600)
	ts.SetPoints(p)
	ts.StartScroll(300)
	ts.ScrollTo(309)
	assert.InDelta(t, -1.5, ts.RightOffset(), 1e-9)
	ts.EndScroll()
	ts.ScrollTo(100)
	assert.InDelta(t, -1.5, ts.RightOffset(), 1e-9)
}

func TestRightOffsetLimits(t *testing.T) {
	ts := New(DefaultOptions())
	ts.SetWidth(60)
	ts.SetPoints(points(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	ts.SetRightOffset(1000)
	// width/barSpacing - 2
	assert.InDelta(t, 8, ts.RightOffset(), 1e-9)
	ts.SetRightOffset(-1000)
	// -baseIndex - 1 + 2
	assert.InDelta(t, -8, ts.RightOffset(), 1e-9)

	opts := ts.Options()
	opts.FixRightEdge = true
	ts.ApplyOptions(opts)
	ts.SetRightOffset(5)
	assert.Equal(t, 0.0, ts.RightOffset())
}

func TestVisibleLogicalRangeAndFitContent(t *testing.T) {
	var p []Point
	for i := 0; i < 50; i++ {
		p = append(p, Point{Time: float64(i)})
	}
	ts := New(DefaultOptions())
	ts.SetWidth(300)
	ts.SetPoints(p)
	r, ok := ts.VisibleLogicalRange()
	assert.True(t, ok)
	assert.InDelta(t, 49, r.To, 1e-9)
	assert.InDelta(t, 0, r.From, 1e-9)

	ts.SetLogicalRange(LogicalRange{From: 20, To: 29})
	assert.InDelta(t, 30, ts.BarSpacing(), 1e-9)
	r, _ = ts.VisibleLogicalRange()
	assert.InDelta(t, 20, r.From, 1e-9)

	ts.FitContent()
	from, to, ok := ts.VisibleStrictRange()
	assert.True(t, ok)
	assert.LessOrEqual(t, from, 0)
	assert.GreaterOrEqual(t, to, 49)
}

func TestTimeToIndex(t *testing.T) {
	ts := New(DefaultOptions())
	_, ok := ts.TimeToIndex(5, false)
	assert.False(t, ok)
	ts.SetPoints(points(10, 20, 40))
	i, ok := ts.TimeToIndex(20, true)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = ts.TimeToIndex(25, true)
	assert.False(t, ok)
	i, _ = ts.TimeToIndex(31, false)
	assert.Equal(t, 2, i)
	i, _ = ts.TimeToIndex(99, false)
	assert.Equal(t, 2, i)
}

func TestNewBarShiftsViewport(t *testing.T) {
	ts := New(DefaultOptions())
	ts.SetWidth(300)
	ts.SetPoints(points(1, 2, 3, 4, 5))
	offset := ts.RightOffset()
	ts.SetPoints(points(1, 2, 3, 4, 5, 6))
	assert.Equal(t, offset, ts.RightOffset())

	opts := ts.Options()
	opts.ShiftVisibleRangeOnNewBar = false
	ts.ApplyOptions(opts)
	ts.SetPoints(points(1, 2, 3, 4, 5, 6, 7))
	assert.Equal(t, offset-1, ts.RightOffset())
}

func TestScrollAnimation(t *testing.T) {
	ts := scenarioScale()
	a := NewScrollAnimation(0, 0.5, 1000)
	ops := []invalidate.TimeScaleOp{{Type: invalidate.OpAnimation, Animation: a}}
	running := ts.Replay(ops, 1500)
	assert.NotNil(t, running)
	assert.Greater(t, ts.RightOffset(), 0.0)
	assert.Less(t, ts.RightOffset(), 0.5)
	running = ts.Replay(ops, 2500)
	assert.Nil(t, running)
	assert.InDelta(t, 0.5, ts.RightOffset(), 1e-9)
}

func TestMarks(t *testing.T) {
	var p []Point
	for i := 0; i < 100; i++ {
		p = append(p, Point{Time: float64(i)})
	}
	ts := New(DefaultOptions())
	ts.SetWidth(600)
	ts.SetPoints(p)
	marks := ts.Marks(60)
	assert.NotEmpty(t, marks)
	for _, m := range marks {
		assert.Equal(t, 0, m.Point.Index%10)
	}
}
