// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package pricescale

import (
	"math"
	"maycharts/chartval"
	"strconv"
)

type Mark struct {
	Value float64
	Coord float64
	Label string
}

type printFormat int

const (
	printFormatDefault printFormat = iota
	printFormatThousands
	printFormatMillions
	printFormatBillions
)

// Marks returns tick marks for the visible range with a "nice" step.
func (ps *PriceScale) Marks(fv FirstValue) []Mark {
	if !ps.ready() || ps.opts.MinTickSpacing <= 0 {
		return nil
	}
	if ps.needsFirstValue() && !fv.Ok {
		return nil
	}
	count := math.Max(ps.internalHeight()/ps.opts.MinTickSpacing, 1)
	step := chartval.NiceStep(ps.rng.Length() / count)
	if step <= 0 {
		return nil
	}
	// Extend to the margins so that labels fill the whole axis.
	lo, _ := ps.CoordinateToInternal(0)
	hi, _ := ps.CoordinateToInternal(ps.height - 1)
	if lo > hi {
		lo, hi = hi, lo
	}
	var values []float64
	for v := math.Ceil(lo/step) * step; v <= hi+chartval.NearZero*step; v += step {
		// we do not want negative zero on our label
		if math.Abs(v) < chartval.NearZero*step {
			v = 0
		}
		values = append(values, v)
	}
	precision := max(0, -int(math.Floor(math.Log10(step))))
	labels := ps.formatLabels(values, precision)
	marks := make([]Mark, 0, len(values))
	for i, v := range values {
		c, _ := ps.InternalToCoordinate(v)
		marks = append(marks, Mark{Value: v, Coord: c, Label: labels[i]})
	}
	return marks
}

func (ps *PriceScale) formatLabels(values []float64, precision int) []string {
	labels := make([]string, len(values))
	switch ps.opts.Mode {
	case ModeLogarithmic:
		for i, v := range values {
			labels[i] = FormatCompact(math.Pow(10, v), 2)
		}
		return labels
	case ModePercentage:
		for i, v := range values {
			labels[i] = strconv.FormatFloat(v, 'f', precision, 64) + "%"
		}
		return labels
	}
	f := determinePrintFormat(values)
	for i, v := range values {
		labels[i] = formatValue(v, f, precision)
	}
	return labels
}

// Use k/m/b only if every label is a whole multiple.
func determinePrintFormat(values []float64) printFormat {
	printBillions := true
	printMillions := true
	printThousands := true
	for i, v := range values {
		labelValueI := int64(v)
		if float64(labelValueI) != v {
			return printFormatDefault
		}
		if (i != 0 && labelValueI/1000000000 == 0) || labelValueI%1000000000 != 0 {
			printBillions = false
		}
		if (i != 0 && labelValueI/1000000 == 0) || labelValueI%1000000 != 0 {
			printMillions = false
		}
		if (i != 0 && labelValueI/1000 == 0) || labelValueI%1000 != 0 {
			printThousands = false
		}
	}
	switch {
	case len(values) == 0:
		return printFormatDefault
	case printBillions:
		return printFormatBillions
	case printMillions:
		return printFormatMillions
	case printThousands:
		return printFormatThousands
	}
	return printFormatDefault
}

func formatValue(value float64, f printFormat, precision int) string {
	switch f {
	case printFormatBillions:
		return strconv.FormatFloat(value/1000000000, 'f', 0, 64) + "b"
	case printFormatMillions:
		return strconv.FormatFloat(value/1000000, 'f', 0, 64) + "m"
	case printFormatThousands:
		return strconv.FormatFloat(value/1000, 'f', 0, 64) + "k"
	default:
		return strconv.FormatFloat(value, 'f', precision, 64)
	}
}

// FormatCompact formats a single value, large values with a k/m/b suffix.
func FormatCompact(value float64, precision int) string {
	a := math.Abs(value)
	switch {
	case a >= 1000000000:
		return strconv.FormatFloat(value/1000000000, 'f', precision, 64) + "b"
	case a >= 1000000:
		return strconv.FormatFloat(value/1000000, 'f', precision, 64) + "m"
	case a >= 100000:
		return strconv.FormatFloat(value/1000, 'f', precision, 64) + "k"
	default:
		return strconv.FormatFloat(value, 'f', precision, 64)
	}
}

// FormatPrice formats a price for the crosshair label of this scale.
func (ps *PriceScale) FormatPrice(price float64, fv FirstValue) string {
	switch ps.opts.Mode {
	case ModePercentage, ModeIndexedTo100:
		v, ok := ps.toInternal(price, fv)
		if !ok {
			return ""
		}
		if ps.opts.Mode == ModePercentage {
			return strconv.FormatFloat(v, 'f', 2, 64) + "%"
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return FormatCompact(price, 2)
}
