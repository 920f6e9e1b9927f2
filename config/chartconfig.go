// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"maycharts/chartmodel"
	"maycharts/chartval"
	"maycharts/drawing"
	"maycharts/indapi/candles"
	"maycharts/pricescale"
)

type ChartConfig struct {
	Symbol          string
	Resolution      candles.CandleResolution
	TimeScale       TimeScaleConfig
	PriceScale      PriceScaleConfig
	CrosshairMagnet bool `yaml:",omitempty"`
	Drawing         DrawingConfig
	Indicators      []IndicatorConfig `yaml:",omitempty"`
}

type TimeScaleConfig struct {
	BarSpacing                float64
	MinBarSpacing             float64
	RightOffset               float64 `yaml:",omitempty"`
	FixLeftEdge               bool    `yaml:",omitempty"`
	FixRightEdge              bool    `yaml:",omitempty"`
	RightBarStaysOnScroll     bool    `yaml:",omitempty"`
	ShiftVisibleRangeOnNewBar bool
}

type PriceScaleConfig struct {
	// normal, log, percentage or indexed
	Mode         string
	InvertScale  bool `yaml:",omitempty"`
	TopMargin    float64
	BottomMargin float64
}

type DrawingConfig struct {
	PointTolerance float64
	LineTolerance  float64
	// Anchors are kept inside the loaded data while dragging.
	ClampToData     bool      `yaml:",omitempty"`
	FibonacciLevels []float64 `yaml:",omitempty"`
	ShowLabels      bool
}

var priceScaleModes = map[string]pricescale.Mode{
	"normal":     pricescale.ModeNormal,
	"log":        pricescale.ModeLogarithmic,
	"percentage": pricescale.ModePercentage,
	"indexed":    pricescale.ModeIndexedTo100,
}

// Returns some valid default chart settings.
func NewChartConfig() ChartConfig {
	ts := chartmodel.DefaultOptions().TimeScale
	ps := chartmodel.DefaultOptions().PriceScale
	hit := drawing.DefaultHitOptions()
	return ChartConfig{
		Symbol:     "SPY",
		Resolution: candles.CandleOneDay,
		TimeScale: TimeScaleConfig{
			BarSpacing:                ts.BarSpacing,
			MinBarSpacing:             ts.MinBarSpacing,
			ShiftVisibleRangeOnNewBar: ts.ShiftVisibleRangeOnNewBar,
		},
		PriceScale: PriceScaleConfig{
			Mode:         "normal",
			TopMargin:    ps.TopMargin,
			BottomMargin: ps.BottomMargin,
		},
		Drawing: DrawingConfig{
			PointTolerance: hit.PointTolerance,
			LineTolerance:  hit.LineTolerance,
			ShowLabels:     true,
		},
		Indicators: []IndicatorConfig{
			{IndicatorId: "sma", Properties: map[string]string{"Time Periods": "20"}},
		},
	}
}

func (c *ChartConfig) sanitize() {
	def := NewChartConfig()
	c.Symbol = chartval.NormalizeSymbol(c.Symbol)
	if c.Symbol == "" {
		c.Symbol = def.Symbol
	}
	if c.Resolution < 0 || c.Resolution >= candles.NumCandleResolutions {
		c.Resolution = def.Resolution
	}
	if c.TimeScale.MinBarSpacing <= 0 {
		c.TimeScale.MinBarSpacing = def.TimeScale.MinBarSpacing
	}
	if c.TimeScale.BarSpacing < c.TimeScale.MinBarSpacing {
		c.TimeScale.BarSpacing = def.TimeScale.BarSpacing
	}
	if _, ok := priceScaleModes[c.PriceScale.Mode]; !ok {
		c.PriceScale.Mode = def.PriceScale.Mode
	}
	if c.PriceScale.TopMargin < 0 || c.PriceScale.BottomMargin < 0 || c.PriceScale.TopMargin+c.PriceScale.BottomMargin >= 1 {
		c.PriceScale.TopMargin = def.PriceScale.TopMargin
		c.PriceScale.BottomMargin = def.PriceScale.BottomMargin
	}
	if c.Drawing.PointTolerance <= 0 {
		c.Drawing.PointTolerance = def.Drawing.PointTolerance
	}
	if c.Drawing.LineTolerance <= 0 {
		c.Drawing.LineTolerance = def.Drawing.LineTolerance
	}
}

// ModelOptions converts the settings to chart model options.
func (c *ChartConfig) ModelOptions(devMode bool) chartmodel.Options {
	o := chartmodel.DefaultOptions()
	o.Resolution = c.Resolution
	o.TimeScale.BarSpacing = c.TimeScale.BarSpacing
	o.TimeScale.MinBarSpacing = c.TimeScale.MinBarSpacing
	o.TimeScale.RightOffset = c.TimeScale.RightOffset
	o.TimeScale.FixLeftEdge = c.TimeScale.FixLeftEdge
	o.TimeScale.FixRightEdge = c.TimeScale.FixRightEdge
	o.TimeScale.RightBarStaysOnScroll = c.TimeScale.RightBarStaysOnScroll
	o.TimeScale.ShiftVisibleRangeOnNewBar = c.TimeScale.ShiftVisibleRangeOnNewBar
	o.TimeScale.FallbackTimeStep = c.Resolution.StepSeconds()
	if mode, ok := priceScaleModes[c.PriceScale.Mode]; ok {
		o.PriceScale.Mode = mode
	}
	o.PriceScale.InvertScale = c.PriceScale.InvertScale
	o.PriceScale.TopMargin = c.PriceScale.TopMargin
	o.PriceScale.BottomMargin = c.PriceScale.BottomMargin
	if c.CrosshairMagnet {
		o.CrosshairMode = chartmodel.CrosshairMagnet
	}
	o.Hit = drawing.HitOptions{PointTolerance: c.Drawing.PointTolerance, LineTolerance: c.Drawing.LineTolerance}
	if c.Drawing.ClampToData {
		o.DragPolicy = drawing.DragClampToData
	}
	o.Annotation = map[drawing.Kind]drawing.Options{
		drawing.KindTrendline: {LineWidth: 1},
		drawing.KindFibonacci: {LineWidth: 1, Levels: c.Drawing.FibonacciLevels, ShowLabels: c.Drawing.ShowLabels},
	}
	o.DevMode = devMode
	return o
}
