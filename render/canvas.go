// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"image/color"
)

type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Canvas draws into one region of a surface. Coordinates are relative to
// the region, drawing outside of it is clipped.
type Canvas interface {
	Size() (w, h float64)
	Fill(c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	// Polyline strokes connected segments with flat caps.
	Polyline(pts []Point, width float32, c color.NRGBA)
	DashedLine(p1, p2 Point, width float32, dashes []float32, c color.NRGBA)
	Circle(center Point, radius float64, c color.NRGBA)
	TextSize(s string) (w, h float64)
	// Text draws s with its top left corner at p.
	Text(s string, p Point, c color.NRGBA)
}

func line(c Canvas, x1, y1, x2, y2 float64, width float32, col color.NRGBA) {
	c.Polyline([]Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, width, col)
}

// label draws text on a filled box centered vertically at y.
func label(c Canvas, s string, x, y, margin float64, fg, bg color.NRGBA) {
	w, h := c.TextSize(s)
	c.FillRect(x, y-h/2-margin/2, w+2*margin, h+margin, bg)
	c.Text(s, Pt(x+margin, y-h/2), fg)
}
