// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
)

// GioCanvas records paint operations into the ops of its layout context.
type GioCanvas struct {
	gtx      layout.Context
	th       *material.Theme
	fontSize unit.Sp
	size     image.Point
	// Reused between strokes to avoid allocations.
	segments []stroke.Segment
}

func NewGioCanvas(gtx layout.Context, th *material.Theme, fontSize unit.Sp, size image.Point) *GioCanvas {
	return &GioCanvas{gtx: gtx, th: th, fontSize: fontSize, size: size}
}

func (c *GioCanvas) Size() (w, h float64) {
	return float64(c.size.X), float64(c.size.Y)
}

func (c *GioCanvas) Fill(col color.NRGBA) {
	paint.FillShape(c.gtx.Ops, col, clip.Rect{Max: c.size}.Op())
}

func (c *GioCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	r := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
	paint.FillShape(c.gtx.Ops, col, clip.Rect(r).Op())
}

func (c *GioCanvas) strokePath(width float32, dashes []float32, col color.NRGBA) {
	if len(c.segments) < 2 {
		return
	}
	var path stroke.Path
	path.Segments = c.segments
	paint.FillShape(
		c.gtx.Ops,
		col,
		stroke.Stroke{Path: path, Width: width, Cap: stroke.FlatCap, Dashes: stroke.Dashes{Dashes: dashes}}.Op(c.gtx.Ops),
	)
}

func (c *GioCanvas) Polyline(pts []Point, width float32, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	c.segments = c.segments[:0]
	c.segments = append(c.segments, stroke.MoveTo(f32.Pt(float32(pts[0].X), float32(pts[0].Y))))
	for _, p := range pts[1:] {
		c.segments = append(c.segments, stroke.LineTo(f32.Pt(float32(p.X), float32(p.Y))))
	}
	c.strokePath(width, nil, col)
}

func (c *GioCanvas) DashedLine(p1, p2 Point, width float32, dashes []float32, col color.NRGBA) {
	c.segments = append(c.segments[:0],
		stroke.MoveTo(f32.Pt(float32(p1.X), float32(p1.Y))),
		stroke.LineTo(f32.Pt(float32(p2.X), float32(p2.Y))),
	)
	c.strokePath(width, dashes, col)
}

func (c *GioCanvas) Circle(center Point, radius float64, col color.NRGBA) {
	r := image.Rect(
		int(math.Round(center.X-radius)), int(math.Round(center.Y-radius)),
		int(math.Round(center.X+radius)), int(math.Round(center.Y+radius)),
	)
	paint.FillShape(c.gtx.Ops, col, clip.Ellipse(r).Op(c.gtx.Ops))
}

func (c *GioCanvas) recordText(s string, col color.NRGBA) (op.CallOp, image.Point) {
	gtx := c.gtx
	gtx.Constraints = layout.Constraints{Max: image.Point{X: math.MaxInt32, Y: math.MaxInt32}}
	macro := op.Record(gtx.Ops)
	lbl := material.Label(c.th, c.fontSize, s)
	lbl.Color = col
	lbl.Alignment = text.Start
	lbl.MaxLines = 1
	dims := lbl.Layout(gtx)
	return macro.Stop(), dims.Size
}

func (c *GioCanvas) TextSize(s string) (w, h float64) {
	_, size := c.recordText(s, color.NRGBA{})
	return float64(size.X), float64(size.Y)
}

func (c *GioCanvas) Text(s string, p Point, col color.NRGBA) {
	call, _ := c.recordText(s, col)
	stack := op.Offset(image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}).Push(c.gtx.Ops)
	// Run recorded drawing.
	call.Add(c.gtx.Ops)
	stack.Pop()
}
