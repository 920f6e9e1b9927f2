// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image/color"
)

// ChartTheme holds colors and sizes of every chart element, in pixels.
type ChartTheme struct {
	Background            color.NRGBA
	AxesColor             color.NRGBA
	GridColor             color.NRGBA
	AxesTextColor         color.NRGBA
	TimeMarkSpacing       float64
	TextMargin            float64
	CandleUpColor         color.NRGBA
	CandleDownColor       color.NRGBA
	CandleUpBorderColor   color.NRGBA
	CandleDownBorderColor color.NRGBA
	DrawCandleUpBorder    bool
	DrawCandleDownBorder  bool
	BarUpColor            color.NRGBA
	BarDownColor          color.NRGBA
	LineColor             color.NRGBA
	CrosshairColor        color.NRGBA
	CrosshairDashPattern  []float32
	CrosshairDotRadius    float64
	HoverTextColor        color.NRGBA
	HoverBgColor          color.NRGBA
	AnnotationColor       color.NRGBA
	SelectionColor        color.NRGBA
	HandleRadius          float64
	PreviewColor          color.NRGBA
	WarningBgColor        color.NRGBA
}

func NewDarkChartTheme() *ChartTheme {
	return &ChartTheme{
		Background:            color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 255},
		AxesColor:             color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		GridColor:             color.NRGBA{R: 60, G: 60, B: 60, A: 255},
		AxesTextColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		TimeMarkSpacing:       100,
		TextMargin:            7,
		CandleUpColor:         color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		CandleDownColor:       color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		CandleUpBorderColor:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		CandleDownBorderColor: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		BarUpColor:            color.NRGBA{R: 0, G: 160, B: 0, A: 255},
		BarDownColor:          color.NRGBA{R: 160, G: 0, B: 0, A: 255},
		LineColor:             color.NRGBA{R: 0x29, G: 0x62, B: 0xff, A: 255},
		CrosshairColor:        color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		CrosshairDashPattern:  []float32{4, 4},
		CrosshairDotRadius:    3,
		HoverTextColor:        color.NRGBA{R: 100, G: 255, B: 100, A: 255},
		HoverBgColor:          color.NRGBA{R: 74, G: 74, B: 107, A: 255},
		AnnotationColor:       color.NRGBA{R: 255, G: 200, B: 0, A: 255},
		SelectionColor:        color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		HandleRadius:          4,
		PreviewColor:          color.NRGBA{R: 255, G: 200, B: 0, A: 160},
		WarningBgColor:        color.NRGBA{R: 150, G: 0, B: 0, A: 250},
	}
}

func NewLightChartTheme() *ChartTheme {
	return &ChartTheme{
		Background:            color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		AxesColor:             color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		GridColor:             color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		AxesTextColor:         color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		TimeMarkSpacing:       100,
		TextMargin:            7,
		CandleUpColor:         color.NRGBA{R: 0, G: 200, B: 0, A: 255},
		CandleDownColor:       color.NRGBA{R: 230, G: 0, B: 0, A: 255},
		CandleUpBorderColor:   color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		CandleDownBorderColor: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		BarUpColor:            color.NRGBA{R: 120, G: 200, B: 120, A: 255},
		BarDownColor:          color.NRGBA{R: 230, G: 120, B: 120, A: 255},
		LineColor:             color.NRGBA{R: 0x29, G: 0x62, B: 0xff, A: 255},
		CrosshairColor:        color.NRGBA{R: 90, G: 90, B: 90, A: 255},
		CrosshairDashPattern:  []float32{4, 4},
		CrosshairDotRadius:    3,
		HoverTextColor:        color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		HoverBgColor:          color.NRGBA{R: 174, G: 174, B: 207, A: 255},
		AnnotationColor:       color.NRGBA{R: 0, G: 90, B: 200, A: 255},
		SelectionColor:        color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		HandleRadius:          4,
		PreviewColor:          color.NRGBA{R: 0, G: 90, B: 200, A: 160},
		WarningBgColor:        color.NRGBA{R: 255, G: 190, B: 190, A: 250},
	}
}

// NewChartTheme returns the dark or the light theme.
func NewChartTheme(dark bool) *ChartTheme {
	if dark {
		return NewDarkChartTheme()
	}
	return NewLightChartTheme()
}

func (th *ChartTheme) GetCandleColors(isGreenCandle bool) (candleColor, borderColor color.NRGBA, drawBorder bool) {
	if isGreenCandle {
		return th.CandleUpColor, th.CandleUpBorderColor, th.DrawCandleUpBorder
	}
	return th.CandleDownColor, th.CandleDownBorderColor, th.DrawCandleDownBorder
}

func (th *ChartTheme) GetBarColor(isGreenCandle bool) color.NRGBA {
	if isGreenCandle {
		return th.BarUpColor
	}
	return th.BarDownColor
}
