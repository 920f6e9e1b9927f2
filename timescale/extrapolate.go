// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package timescale

import (
	"math"
	"sort"
)

// TimePerPixel is the time step of one pixel, derived from the last two
// points. With fewer points the fallback step per bar is used.
func (ts *TimeScale) TimePerPixel() float64 {
	n := len(ts.points)
	if n >= 2 {
		dt := ts.points[n-1].Time - ts.points[n-2].Time
		dx := ts.IndexToCoordinate(float64(n-1)) - ts.IndexToCoordinate(float64(n-2))
		if dx != 0 && dt > 0 {
			return dt / dx
		}
	}
	return ts.opts.FallbackTimeStep / ts.barSpacing
}

// TimeAtCoordinate resolves a time for x. Left of the last point the time of
// the nearest point is used, right of it the time is extrapolated linearly.
// The same holds left of the first point.
func (ts *TimeScale) TimeAtCoordinate(x float64) (float64, bool) {
	n := len(ts.points)
	if n == 0 || ts.barSpacing <= 0 {
		return 0, false
	}
	lastX := ts.IndexToCoordinate(float64(n - 1))
	if x > lastX {
		return ts.points[n-1].Time + (x-lastX)*ts.TimePerPixel(), true
	}
	firstX := ts.IndexToCoordinate(0)
	if x < firstX {
		return ts.points[0].Time - (firstX-x)*ts.TimePerPixel(), true
	}
	index := ts.CoordinateToIndex(x)
	index = max(0, min(index, n-1))
	return ts.points[index].Time, true
}

// CoordinateForTime is the inverse of TimeAtCoordinate. Times between points
// are interpolated, times outside the data are extrapolated.
func (ts *TimeScale) CoordinateForTime(t float64) (float64, bool) {
	n := len(ts.points)
	if n == 0 || ts.barSpacing <= 0 || math.IsNaN(t) {
		return 0, false
	}
	last := ts.points[n-1]
	if t >= last.Time {
		return ts.IndexToCoordinate(float64(n-1)) + (t-last.Time)/ts.TimePerPixel(), true
	}
	first := ts.points[0]
	if t <= first.Time {
		return ts.IndexToCoordinate(0) - (first.Time-t)/ts.TimePerPixel(), true
	}
	i := sort.Search(n, func(i int) bool { return ts.points[i].Time >= t })
	p0, p1 := ts.points[i-1], ts.points[i]
	frac := (t - p0.Time) / (p1.Time - p0.Time)
	return ts.IndexToCoordinate(float64(p0.Index) + frac), true
}

// IsExtrapolated reports whether x lies right of the last point.
func (ts *TimeScale) IsExtrapolated(x float64) bool {
	if len(ts.points) == 0 {
		return true
	}
	return x > ts.IndexToCoordinate(float64(ts.BaseIndex()))
}
