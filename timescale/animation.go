// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package timescale

import (
	"math"
	"maycharts/invalidate"
)

const DefaultAnimationDurationMs = 1000

// ScrollAnimation moves the right offset with an ease-out curve.
type ScrollAnimation struct {
	From       float64
	To         float64
	StartMs    float64
	DurationMs float64
}

func NewScrollAnimation(from, to, startMs float64) *ScrollAnimation {
	return &ScrollAnimation{From: from, To: to, StartMs: startMs, DurationMs: DefaultAnimationDurationMs}
}

func (a *ScrollAnimation) Position(nowMs float64) float64 {
	if a.Finished(nowMs) {
		return a.To
	}
	p := math.Max(0, (nowMs-a.StartMs)/a.DurationMs)
	eased := 1 - math.Pow(1-p, 3)
	return a.From + (a.To-a.From)*eased
}

func (a *ScrollAnimation) Finished(nowMs float64) bool {
	return nowMs >= a.StartMs+a.DurationMs
}

// Replay applies queued operations in order and returns the animation that is
// still running afterwards, if any.
func (ts *TimeScale) Replay(ops []invalidate.TimeScaleOp, nowMs float64) invalidate.Animation {
	var running invalidate.Animation
	for _, op := range ops {
		switch op.Type {
		case invalidate.OpFitContent:
			running = nil
			ts.FitContent()
		case invalidate.OpApplyRange:
			running = nil
			ts.SetLogicalRange(op.Range)
		case invalidate.OpApplyBarSpacing:
			ts.SetBarSpacing(op.Value)
		case invalidate.OpApplyRightOffset:
			ts.SetRightOffset(op.Value)
		case invalidate.OpReset:
			running = nil
			ts.Reset()
		case invalidate.OpAnimation:
			if op.Animation == nil {
				continue
			}
			ts.SetRightOffset(op.Animation.Position(nowMs))
			running = op.Animation
			if op.Animation.Finished(nowMs) {
				running = nil
			}
		case invalidate.OpStopAnimation:
			running = nil
		}
	}
	return running
}
