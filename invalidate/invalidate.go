// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package invalidate

type Level int

const (
	None Level = iota
	Cursor
	Light
	Full
)

func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Cursor:
		return "cursor"
	case Light:
		return "light"
	case Full:
		return "full"
	default:
		return "invalid"
	}
}

type PaneInvalidation struct {
	Level     Level
	AutoScale bool
}

type TimeScaleOpType int

const (
	OpFitContent TimeScaleOpType = iota
	OpApplyRange
	OpApplyBarSpacing
	OpApplyRightOffset
	OpReset
	OpAnimation
	OpStopAnimation
)

// LogicalRange is a range of logical (float) indices.
type LogicalRange struct {
	From float64
	To   float64
}

// Animation moves the right offset over time. Position returns the offset at
// the given time in milliseconds, Finished reports whether the animation is done.
type Animation interface {
	Position(nowMs float64) float64
	Finished(nowMs float64) bool
}

type TimeScaleOp struct {
	Type      TimeScaleOpType
	Range     LogicalRange
	Value     float64
	Animation Animation
}

// Mask accumulates everything that must happen on the next frame.
// The zero value is an empty mask of level None.
type Mask struct {
	global Level
	panes  map[int]PaneInvalidation
	ops    []TimeScaleOp
}

func New(global Level) *Mask {
	return &Mask{global: global}
}

func (m *Mask) Global() Level {
	return m.global
}

// InvalidatePane raises the level of one pane, never lowers it.
func (m *Mask) InvalidatePane(pane int, inv PaneInvalidation) {
	if m.panes == nil {
		m.panes = make(map[int]PaneInvalidation)
	}
	prev, ok := m.panes[pane]
	if !ok {
		m.panes[pane] = inv
		return
	}
	m.panes[pane] = PaneInvalidation{
		Level:     max(prev.Level, inv.Level),
		AutoScale: prev.AutoScale || inv.AutoScale,
	}
}

// InvalidateAll raises the global level.
func (m *Mask) InvalidateAll(l Level) {
	m.global = max(m.global, l)
}

// PaneLevel is the effective level of a pane, never below the global level.
func (m *Mask) PaneLevel(pane int) Level {
	p := m.panes[pane]
	return max(p.Level, m.global)
}

func (m *Mask) Pane(pane int) (PaneInvalidation, bool) {
	p, ok := m.panes[pane]
	return p, ok
}

// AutoScale reports whether the pane requested an auto-scale recompute.
// A Full global mask requests it for every pane.
func (m *Mask) AutoScale(pane int) bool {
	return m.panes[pane].AutoScale || m.global == Full
}

func (m *Mask) Panes() map[int]PaneInvalidation {
	return m.panes
}

func (m *Mask) TimeScaleOps() []TimeScaleOp {
	return m.ops
}

func (m *Mask) addOp(op TimeScaleOp, replaces bool) {
	if replaces {
		m.ops = nil
	}
	m.ops = append(m.ops, op)
	m.InvalidateAll(Light)
}

// These operations define the complete viewport, earlier ones are obsolete.

func (m *Mask) SetFitContent() {
	m.addOp(TimeScaleOp{Type: OpFitContent}, true)
}

func (m *Mask) ApplyRange(r LogicalRange) {
	m.addOp(TimeScaleOp{Type: OpApplyRange, Range: r}, true)
}

func (m *Mask) ResetTimeScale() {
	m.addOp(TimeScaleOp{Type: OpReset}, true)
}

func (m *Mask) SetBarSpacing(v float64) {
	m.addOp(TimeScaleOp{Type: OpApplyBarSpacing, Value: v}, false)
}

func (m *Mask) SetRightOffset(v float64) {
	m.addOp(TimeScaleOp{Type: OpApplyRightOffset, Value: v}, false)
}

func (m *Mask) SetAnimation(a Animation) {
	m.removeOps(OpAnimation)
	m.addOp(TimeScaleOp{Type: OpAnimation, Animation: a}, false)
}

func (m *Mask) StopAnimation() {
	m.addOp(TimeScaleOp{Type: OpStopAnimation}, false)
}

func (m *Mask) removeOps(t TimeScaleOpType) {
	var out []TimeScaleOp
	for _, op := range m.ops {
		if op.Type != t {
			out = append(out, op)
		}
	}
	m.ops = out
}

// Merge folds other into m: per pane maximum level, auto-scale OR-ed,
// global maximum, time scale operations appended in order. A replacing
// operation of other drops the queued operations of m as it would have
// when added directly.
func (m *Mask) Merge(other *Mask) {
	if other == nil {
		return
	}
	for i, p := range other.panes {
		m.InvalidatePane(i, p)
	}
	m.global = max(m.global, other.global)
	for _, op := range other.ops {
		switch op.Type {
		case OpFitContent, OpApplyRange, OpReset:
			m.ops = nil
		case OpAnimation:
			m.removeOps(OpAnimation)
		}
		m.ops = append(m.ops, op)
	}
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	c := &Mask{global: m.global}
	if len(m.panes) > 0 {
		c.panes = make(map[int]PaneInvalidation, len(m.panes))
		for k, v := range m.panes {
			c.panes[k] = v
		}
	}
	c.ops = append([]TimeScaleOp(nil), m.ops...)
	return c
}

// HasAnimation reports whether an animation operation is queued and not
// stopped afterwards.
func (m *Mask) HasAnimation() (Animation, bool) {
	var a Animation
	for _, op := range m.ops {
		switch op.Type {
		case OpAnimation:
			a = op.Animation
		case OpStopAnimation, OpFitContent, OpApplyRange, OpReset:
			a = nil
		}
	}
	return a, a != nil
}

// Empty reports whether applying the mask would change nothing.
func (m *Mask) Empty() bool {
	if m.global != None || len(m.ops) > 0 {
		return false
	}
	for _, p := range m.panes {
		if p.Level != None || p.AutoScale {
			return false
		}
	}
	return true
}
