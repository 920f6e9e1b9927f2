// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"image"
	"image/draw"
	"sort"
	"sync"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/exp/maps"
)

type RegionKind int

const (
	RegionPane RegionKind = iota
	RegionPriceAxis
	RegionTimeAxis
	// Crosshair layer above everything else.
	RegionOverlay
)

// Region identifies a retained area of a surface. Pane is the pane index for
// pane and price axis regions.
type Region struct {
	Kind RegionKind
	Pane int
}

func less(a, b Region) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Pane < b.Pane
}

// Surface retains the painted content of each region. Begin discards the
// content of one region and returns a canvas for it, all other regions keep
// what was painted before.
type Surface interface {
	// Resize drops all retained content.
	Resize(size image.Point)
	Size() image.Point
	Begin(r Region, rect image.Rectangle) (Canvas, bool)
	End(r Region)
	// Prune drops the regions for which keep returns false.
	Prune(keep func(Region) bool)
}

type rasterRegion struct {
	rect   image.Rectangle
	img    *image.RGBA
	paints int
}

// RasterSurface keeps one image per region and composes them on request.
type RasterSurface struct {
	mutex   sync.Mutex
	size    image.Point
	regions map[Region]*rasterRegion
}

func NewRasterSurface() *RasterSurface {
	return &RasterSurface{regions: make(map[Region]*rasterRegion)}
}

func (s *RasterSurface) Resize(size image.Point) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.size = size
	s.regions = make(map[Region]*rasterRegion)
}

func (s *RasterSurface) Size() image.Point {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.size
}

func (s *RasterSurface) Begin(r Region, rect image.Rectangle) (Canvas, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if rect.Empty() {
		delete(s.regions, r)
		return nil, false
	}
	reg, ok := s.regions[r]
	if !ok || reg.img.Bounds().Size() != rect.Size() {
		reg = &rasterRegion{img: image.NewRGBA(image.Rectangle{Max: rect.Size()})}
		s.regions[r] = reg
	} else {
		draw.Draw(reg.img, reg.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}
	reg.rect = rect
	reg.paints++
	return NewRasterCanvas(reg.img), true
}

func (s *RasterSurface) End(r Region) {}

func (s *RasterSurface) Prune(keep func(Region) bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for r := range s.regions {
		if !keep(r) {
			delete(s.regions, r)
		}
	}
}

// Paints returns how often a region has been painted since it was created.
func (s *RasterSurface) Paints(r Region) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if reg, ok := s.regions[r]; ok {
		return reg.paints
	}
	return 0
}

func sortedRegions[T any](m map[Region]T) []Region {
	keys := maps.Keys(m)
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}

// Image composes all regions.
func (s *RasterSurface) Image() *image.RGBA {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	dst := image.NewRGBA(image.Rectangle{Max: s.size})
	for _, r := range sortedRegions(s.regions) {
		reg := s.regions[r]
		draw.Draw(dst, reg.rect, reg.img, image.Point{}, draw.Over)
	}
	return dst
}

type gioRegion struct {
	rect  image.Rectangle
	ops   op.Ops
	macro op.MacroOp
	call  op.CallOp
}

// GioSurface records every region into its own op list. Regions which are
// not repainted replay their recorded operations.
type GioSurface struct {
	th       *material.Theme
	fontSize unit.Sp
	gtx      layout.Context
	size     image.Point
	regions  map[Region]*gioRegion
}

func NewGioSurface(th *material.Theme, fontSize unit.Sp) *GioSurface {
	return &GioSurface{th: th, fontSize: fontSize, regions: make(map[Region]*gioRegion)}
}

// SetContext must be called with the window context before a frame paints.
func (s *GioSurface) SetContext(gtx layout.Context) {
	s.gtx = gtx
}

func (s *GioSurface) Resize(size image.Point) {
	s.size = size
	s.regions = make(map[Region]*gioRegion)
}

func (s *GioSurface) Size() image.Point {
	return s.size
}

func (s *GioSurface) Begin(r Region, rect image.Rectangle) (Canvas, bool) {
	if rect.Empty() || s.gtx.Ops == nil {
		delete(s.regions, r)
		return nil, false
	}
	reg, ok := s.regions[r]
	if !ok {
		reg = &gioRegion{}
		s.regions[r] = reg
	}
	reg.ops.Reset()
	reg.rect = rect
	gtx := s.gtx
	gtx.Ops = &reg.ops
	gtx.Constraints = layout.Exact(rect.Size())
	reg.macro = op.Record(gtx.Ops)
	return NewGioCanvas(gtx, s.th, s.fontSize, rect.Size()), true
}

func (s *GioSurface) End(r Region) {
	if reg, ok := s.regions[r]; ok {
		reg.call = reg.macro.Stop()
	}
}

func (s *GioSurface) Prune(keep func(Region) bool) {
	for r := range s.regions {
		if !keep(r) {
			delete(s.regions, r)
		}
	}
}

// Layout replays all regions into the window ops.
func (s *GioSurface) Layout(gtx layout.Context) layout.Dimensions {
	for _, r := range sortedRegions(s.regions) {
		reg := s.regions[r]
		offset := op.Offset(reg.rect.Min).Push(gtx.Ops)
		area := clip.Rect{Max: reg.rect.Size()}.Push(gtx.Ops)
		reg.call.Add(gtx.Ops)
		area.Pop()
		offset.Pop()
	}
	return layout.Dimensions{Size: s.size}
}
