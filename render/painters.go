// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"fmt"
	"image/color"
	"math"
	"maycharts/chartmodel"
	"maycharts/chartval"
	"maycharts/drawing"
	"maycharts/indapi/candles"
	"maycharts/pricescale"
	"maycharts/series"
	"maycharts/timescale"
	"maycharts/widgets"
	"time"
)

// paneContext holds what the painters of one pane need.
type paneContext struct {
	c     Canvas
	th    *widgets.ChartTheme
	ts    *timescale.TimeScale
	from  int
	to    int
	model *chartmodel.Model
	index int
	pane  *chartmodel.Pane
}

func colorOr(c, fallback color.NRGBA) color.NRGBA {
	if c.A == 0 {
		return fallback
	}
	return c
}

func (pc *paneContext) paint() {
	pc.c.Fill(pc.th.Background)
	if pc.pane.Grid() {
		pc.paintGrid()
	}
	for _, s := range pc.pane.Series() {
		if !s.Options().Visible {
			continue
		}
		ps := pc.pane.ScaleOf(s)
		fv := pc.model.FirstValue(pc.index, ps)
		switch s.Type() {
		case series.TypeCandlestick:
			pc.paintCandles(s, ps, fv)
		case series.TypeLine:
			pc.paintLine(s, ps, fv)
		case series.TypeHistogram:
			pc.paintHistogram(s, ps, fv)
		}
	}
	if pc.index == chartmodel.AnnotationPane {
		pc.paintAnnotations()
	}
}

func (pc *paneContext) paintGrid() {
	w, h := pc.c.Size()
	for _, m := range pc.ts.Marks(pc.th.TimeMarkSpacing) {
		x := math.Round(m.Coord) + 0.5
		line(pc.c, x, 0, x, h, 1, pc.th.GridColor)
	}
	ps := pc.pane.Right()
	for _, m := range ps.Marks(pc.model.FirstValue(pc.index, ps)) {
		y := math.Round(m.Coord) + 0.5
		line(pc.c, 0, y, w, y, 1, pc.th.GridColor)
	}
}

func (pc *paneContext) paintCandles(s *series.Series, ps *pricescale.PriceScale, fv pricescale.FirstValue) {
	candleWidth, lineWidth, borderWidth := getCandleWidth(pc.ts.BarSpacing(), 1)
	for _, b := range s.Range(pc.from, pc.to) {
		yLow, ok1 := ps.PriceToCoordinate(b.Low, fv)
		yHigh, ok2 := ps.PriceToCoordinate(b.High, fv)
		yOpen, ok3 := ps.PriceToCoordinate(b.Open, fv)
		yClose, ok4 := ps.PriceToCoordinate(b.Close, fv)
		if !(ok1 && ok2 && ok3 && ok4) {
			continue
		}
		x := pc.ts.IndexToCoordinate(float64(b.Index))
		isGreenCandle := chartval.IsGreenCandle(b.Open, b.Close)
		candleColor, borderColor, drawBorder := pc.th.GetCandleColors(isGreenCandle)
		opts := s.Options()
		if isGreenCandle {
			candleColor = colorOr(opts.UpColor, candleColor)
		} else {
			candleColor = colorOr(opts.DownColor, candleColor)
		}
		if math.Round(yLow) == math.Round(yHigh) {
			yHigh--
		}
		line(pc.c, x, yLow, x, yHigh, float32(lineWidth), candleColor)
		// Draw candle using a minimum height of 1 px
		if math.Round(yOpen) == math.Round(yClose) {
			yClose--
		}
		if drawBorder {
			line(pc.c, x, yOpen, x, yClose, float32(candleWidth), borderColor)
			top, bottom := math.Min(yOpen, yClose), math.Max(yOpen, yClose)
			if bottom-top > float64(2*borderWidth) {
				line(pc.c, x, top+float64(borderWidth), x, bottom-float64(borderWidth), float32(candleWidth-2*borderWidth), candleColor)
			}
			continue
		}
		line(pc.c, x, yOpen, x, yClose, float32(candleWidth), candleColor)
	}
}

func (pc *paneContext) paintLine(s *series.Series, ps *pricescale.PriceScale, fv pricescale.FirstValue) {
	opts := s.Options()
	width := opts.LineWidth
	if width <= 0 {
		width = 1
	}
	col := colorOr(opts.Color, pc.th.LineColor)
	// One bar beyond each side so that the line reaches the pane border.
	bars := s.Range(pc.from-1, pc.to+1)
	var pts []Point
	for _, b := range bars {
		v := s.PriceValue(b)
		y, ok := ps.PriceToCoordinate(v, fv)
		if math.IsNaN(v) || !ok {
			pc.c.Polyline(pts, width, col)
			pts = pts[:0]
			continue
		}
		pts = append(pts, Pt(pc.ts.IndexToCoordinate(float64(b.Index)), y))
	}
	pc.c.Polyline(pts, width, col)
}

func (pc *paneContext) paintHistogram(s *series.Series, ps *pricescale.PriceScale, fv pricescale.FirstValue) {
	base, ok := ps.PriceToCoordinate(0, fv)
	if !ok {
		_, h := pc.c.Size()
		base = h
	}
	width := math.Max(pc.ts.BarSpacing()*0.8, 1)
	for _, b := range s.Range(pc.from, pc.to) {
		y, ok := ps.PriceToCoordinate(b.Value, fv)
		if !ok {
			continue
		}
		col := colorOr(s.Options().Color, pc.th.GetBarColor(chartval.IsGreenCandle(b.Open, b.Close)))
		x := pc.ts.IndexToCoordinate(float64(b.Index))
		top, bottom := math.Min(y, base), math.Max(y, base)
		pc.c.FillRect(x-width/2, top, width, math.Max(bottom-top, 1), col)
	}
}

func (pc *paneContext) annotationColor(o drawing.Options) color.NRGBA {
	return colorOr(o.Color, pc.th.AnnotationColor)
}

func (pc *paneContext) paintAnnotations() {
	conv, ok := pc.model.Converter(chartmodel.AnnotationPane)
	if !ok {
		return
	}
	selected, _ := pc.model.Selected()
	for _, a := range pc.model.Annotations() {
		pc.paintAnnotation(conv, a, pc.annotationColor(a.Options), a.ID == selected)
	}
	if p, ok := pc.model.Preview(); ok {
		pc.paintAnnotation(conv, p, colorOr(pc.th.PreviewColor, pc.annotationColor(p.Options)), false)
	}
}

func (pc *paneContext) paintAnnotation(conv drawing.Converter, a drawing.Annotation, col color.NRGBA, selected bool) {
	x1, y1, ok1 := drawing.Project(conv, a.P1)
	x2, y2, ok2 := drawing.Project(conv, a.P2)
	if !ok1 || !ok2 {
		return
	}
	width := a.Options.LineWidth
	if width <= 0 {
		width = 1
	}
	switch a.Kind {
	case drawing.KindTrendline:
		line(pc.c, x1, y1, x2, y2, width, col)
	case drawing.KindFibonacci:
		pc.c.DashedLine(Pt(x1, y1), Pt(x2, y2), 1, []float32{3, 3}, col)
		left, right := math.Min(x1, x2), math.Max(x1, x2)
		// Levels follow the current price scale, so they are computed on every paint.
		for _, l := range a.Levels() {
			y, ok := conv.PriceToCoordinate(l.Price)
			if !ok {
				continue
			}
			line(pc.c, left, y, right, y, width, col)
			if a.Options.ShowLabels {
				text := fmt.Sprintf("%g (%s)", l.Ratio, pricescale.FormatCompact(l.Price, 2))
				_, th := pc.c.TextSize(text)
				pc.c.Text(text, Pt(left+2, y-th-1), col)
			}
		}
	}
	if selected {
		pc.c.Circle(Pt(x1, y1), pc.th.HandleRadius, pc.th.SelectionColor)
		pc.c.Circle(Pt(x2, y2), pc.th.HandleRadius, pc.th.SelectionColor)
	}
}

func paintPriceAxis(c Canvas, th *widgets.ChartTheme, ps *pricescale.PriceScale, fv pricescale.FirstValue) {
	_, h := c.Size()
	c.Fill(th.Background)
	line(c, 0.5, 0, 0.5, h, 1, th.AxesColor)
	for _, m := range ps.Marks(fv) {
		_, lh := c.TextSize(m.Label)
		line(c, 0, m.Coord, 4, m.Coord, 1, th.AxesColor)
		c.Text(m.Label, Pt(th.TextMargin, m.Coord-lh/2), th.AxesTextColor)
	}
}

func formatTime(p timescale.Point, r candles.CandleResolution) string {
	t := p.Original
	if t.IsZero() {
		t = time.Unix(int64(p.Time), 0).UTC()
	}
	return t.Format(r.FormatString())
}

func paintTimeAxis(c Canvas, th *widgets.ChartTheme, ts *timescale.TimeScale, r candles.CandleResolution) {
	w, _ := c.Size()
	c.Fill(th.Background)
	line(c, 0, 0.5, w, 0.5, 1, th.AxesColor)
	for _, m := range ts.Marks(th.TimeMarkSpacing) {
		text := formatTime(m.Point, r)
		tw, _ := c.TextSize(text)
		line(c, m.Coord, 0, m.Coord, 4, 1, th.AxesColor)
		c.Text(text, Pt(m.Coord-tw/2, th.TextMargin), th.AxesTextColor)
	}
}

// paintCrosshair draws into the overlay region which covers the whole chart.
func paintCrosshair(c Canvas, th *widgets.ChartTheme, model *chartmodel.Model) {
	ch := model.Crosshair()
	if !ch.Visible {
		return
	}
	pane, ok := model.Pane(ch.Pane)
	if !ok {
		return
	}
	plotW := model.PlotWidth()
	_, h := model.Size()
	axisTop := h - model.Options().TimeAxisHeight
	if ch.X < 0 || ch.X > plotW || ch.Y < 0 || ch.Y > pane.Height() {
		return
	}
	y := pane.Top() + ch.Y
	if ch.DotOnly {
		c.Circle(Pt(ch.X, y), th.CrosshairDotRadius, th.CrosshairColor)
		return
	}
	c.DashedLine(Pt(ch.X, 0), Pt(ch.X, axisTop), 1, th.CrosshairDashPattern, th.CrosshairColor)
	c.DashedLine(Pt(0, y), Pt(plotW, y), 1, th.CrosshairDashPattern, th.CrosshairColor)

	ps := pane.Right()
	if text := ps.FormatPrice(ch.Price, model.FirstValue(ch.Pane, ps)); text != "" {
		label(c, text, plotW+1, y, 2, th.HoverTextColor, th.HoverBgColor)
	}
	if p, ok := model.TimeScale().IndexToPoint(ch.Index); ok {
		text := formatTime(p, model.Options().Resolution)
		tw, _ := c.TextSize(text)
		label(c, text, ch.X-tw/2-2, axisTop+model.Options().TimeAxisHeight/2, 2, th.HoverTextColor, th.HoverBgColor)
	}
}
