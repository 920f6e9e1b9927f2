// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package invalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAnimation struct{ end float64 }

func (a stubAnimation) Position(nowMs float64) float64 { return nowMs }
func (a stubAnimation) Finished(nowMs float64) bool    { return nowMs >= a.end }

func TestMergeTakesMaxLevelAndOrsAutoScale(t *testing.T) {
	levels := []Level{None, Cursor, Light, Full}
	for _, la := range levels {
		for _, lb := range levels {
			for _, aa := range []bool{false, true} {
				for _, ab := range []bool{false, true} {
					a := New(None)
					a.InvalidatePane(0, PaneInvalidation{Level: la, AutoScale: aa})
					b := New(None)
					b.InvalidatePane(0, PaneInvalidation{Level: lb, AutoScale: ab})

					m := a.Clone()
					m.Merge(b)
					p, ok := m.Pane(0)
					assert.True(t, ok)
					assert.Equal(t, max(la, lb), p.Level)
					assert.Equal(t, aa || ab, p.AutoScale)

					// merging in the other direction gives the same pane record
					r := b.Clone()
					r.Merge(a)
					rp, _ := r.Pane(0)
					assert.Equal(t, p, rp)
				}
			}
		}
	}
}

func TestMergeConcatenatesOps(t *testing.T) {
	a := New(None)
	a.SetBarSpacing(5)
	b := New(Cursor)
	b.SetRightOffset(3)
	b.SetBarSpacing(7)
	a.Merge(b)
	ops := a.TimeScaleOps()
	assert.Len(t, ops, 3)
	assert.Equal(t, OpApplyBarSpacing, ops[0].Type)
	assert.Equal(t, OpApplyRightOffset, ops[1].Type)
	assert.Equal(t, 7.0, ops[2].Value)
	assert.Equal(t, Light, a.Global())
}

func TestFitContentReplacesQueuedOps(t *testing.T) {
	m := New(None)
	m.SetBarSpacing(5)
	m.SetRightOffset(2)
	m.SetFitContent()
	assert.Len(t, m.TimeScaleOps(), 1)
	m.SetBarSpacing(8)
	m.ApplyRange(LogicalRange{From: 1, To: 10})
	ops := m.TimeScaleOps()
	assert.Len(t, ops, 1)
	assert.Equal(t, OpApplyRange, ops[0].Type)
	assert.Equal(t, LogicalRange{From: 1, To: 10}, ops[0].Range)
}

func TestPaneLevelRespectsGlobal(t *testing.T) {
	m := New(Light)
	m.InvalidatePane(1, PaneInvalidation{Level: Cursor})
	assert.Equal(t, Light, m.PaneLevel(1))
	assert.Equal(t, Light, m.PaneLevel(5))
	assert.False(t, m.AutoScale(1))
	m.InvalidateAll(Full)
	assert.True(t, m.AutoScale(3))
}

func TestInvalidatePaneNeverLowers(t *testing.T) {
	m := New(None)
	m.InvalidatePane(0, PaneInvalidation{Level: Full, AutoScale: true})
	m.InvalidatePane(0, PaneInvalidation{Level: Cursor})
	p, _ := m.Pane(0)
	assert.Equal(t, PaneInvalidation{Level: Full, AutoScale: true}, p)
}

func TestHasAnimation(t *testing.T) {
	m := New(None)
	_, ok := m.HasAnimation()
	assert.False(t, ok)
	m.SetAnimation(stubAnimation{end: 10})
	m.SetAnimation(stubAnimation{end: 20})
	a, ok := m.HasAnimation()
	assert.True(t, ok)
	assert.Equal(t, stubAnimation{end: 20}, a)
	assert.Len(t, m.TimeScaleOps(), 1)
	m.StopAnimation()
	_, ok = m.HasAnimation()
	assert.False(t, ok)
}

func TestEmpty(t *testing.T) {
	assert.True(t, New(None).Empty())
	assert.True(t, (&Mask{}).Empty())
	m := New(None)
	m.InvalidatePane(0, PaneInvalidation{AutoScale: true})
	assert.False(t, m.Empty())
	assert.False(t, New(Cursor).Empty())
}

func TestMergeAppliesReplacingOps(t *testing.T) {
	a := New(None)
	a.SetBarSpacing(5)
	b := New(None)
	b.SetFitContent()
	b.SetRightOffset(1)
	a.Merge(b)
	ops := a.TimeScaleOps()
	assert.Len(t, ops, 2)
	assert.Equal(t, OpFitContent, ops[0].Type)
	assert.Equal(t, OpApplyRightOffset, ops[1].Type)
}
