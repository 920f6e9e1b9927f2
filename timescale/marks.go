// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package timescale

import "math"

type Mark struct {
	Point Point
	Coord float64
}

// Marks returns the visible points to label on the time axis, at least
// minSpacing pixels apart.
func (ts *TimeScale) Marks(minSpacing float64) []Mark {
	from, to, ok := ts.VisibleStrictRange()
	if !ok || minSpacing <= 0 {
		return nil
	}
	step := int(math.Ceil(minSpacing / ts.barSpacing))
	step = max(step, 1)
	from = max(from, 0)
	to = min(to, len(ts.points)-1)
	// Align to multiples of step so that labels do not jump while scrolling.
	start := (from + step - 1) / step * step
	var marks []Mark
	for i := start; i <= to; i += step {
		marks = append(marks, Mark{Point: ts.points[i], Coord: ts.IndexToCoordinate(float64(i))})
	}
	return marks
}
