// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterCanvas draws into an RGBA image without a window, used for
// snapshots and tests.
type RasterCanvas struct {
	img  *image.RGBA
	face font.Face
}

func NewRasterCanvas(img *image.RGBA) *RasterCanvas {
	return &RasterCanvas{img: img, face: basicfont.Face7x13}
}

func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

func (c *RasterCanvas) Size() (w, h float64) {
	s := c.img.Bounds().Size()
	return float64(s.X), float64(s.Y)
}

func (c *RasterCanvas) Fill(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *RasterCanvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	r := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *RasterCanvas) rasterizer() *vector.Rasterizer {
	s := c.img.Bounds().Size()
	r := vector.NewRasterizer(s.X, s.Y)
	r.DrawOp = draw.Over
	return r
}

// Each segment is filled as a quad around the center line.
func (c *RasterCanvas) addSegment(r *vector.Rasterizer, p1, p2 Point, width float32) bool {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	l := math.Hypot(dx, dy)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return false
	}
	hw := math.Max(float64(width), 1) / 2
	nx, ny := -dy/l*hw, dx/l*hw
	r.MoveTo(float32(p1.X+nx), float32(p1.Y+ny))
	r.LineTo(float32(p2.X+nx), float32(p2.Y+ny))
	r.LineTo(float32(p2.X-nx), float32(p2.Y-ny))
	r.LineTo(float32(p1.X-nx), float32(p1.Y-ny))
	r.ClosePath()
	return true
}

func (c *RasterCanvas) Polyline(pts []Point, width float32, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	r := c.rasterizer()
	drawn := false
	for i := 1; i < len(pts); i++ {
		if c.addSegment(r, pts[i-1], pts[i], width) {
			drawn = true
		}
	}
	if drawn {
		r.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	}
}

func (c *RasterCanvas) DashedLine(p1, p2 Point, width float32, dashes []float32, col color.NRGBA) {
	l := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	if len(dashes) == 0 || l == 0 {
		c.Polyline([]Point{p1, p2}, width, col)
		return
	}
	ux, uy := (p2.X-p1.X)/l, (p2.Y-p1.Y)/l
	r := c.rasterizer()
	drawn := false
	pos := 0.0
	for i := 0; pos < l; i++ {
		d := math.Max(float64(dashes[i%len(dashes)]), 1)
		if i%2 == 0 {
			end := math.Min(pos+d, l)
			if c.addSegment(r, Pt(p1.X+ux*pos, p1.Y+uy*pos), Pt(p1.X+ux*end, p1.Y+uy*end), width) {
				drawn = true
			}
		}
		pos += d
	}
	if drawn {
		r.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	}
}

func (c *RasterCanvas) Circle(center Point, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	const n = 16
	r := c.rasterizer()
	r.MoveTo(float32(center.X+radius), float32(center.Y))
	for i := 1; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		r.LineTo(float32(center.X+radius*math.Cos(a)), float32(center.Y+radius*math.Sin(a)))
	}
	r.ClosePath()
	r.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *RasterCanvas) TextSize(s string) (w, h float64) {
	return float64(font.MeasureString(c.face, s).Ceil()), float64(c.face.Metrics().Height.Ceil())
}

func (c *RasterCanvas) Text(s string, p Point, col color.NRGBA) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(int(math.Round(p.X)), int(math.Round(p.Y))+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
