// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

type ToolState int

const (
	ToolInactive ToolState = iota
	ToolAwaitFirst
	ToolAwaitSecond
)

// Tool is the two click placement state machine of one annotation kind.
type Tool struct {
	kind       Kind
	state      ToolState
	first      Anchor
	current    Anchor
	hasCurrent bool
}

func NewTool(kind Kind) *Tool {
	return &Tool{kind: kind}
}

func (t *Tool) Kind() Kind {
	return t.kind
}

func (t *Tool) State() ToolState {
	return t.state
}

func (t *Tool) Activate() {
	t.reset()
	t.state = ToolAwaitFirst
}

// Deactivate discards an anchor in progress.
func (t *Tool) Deactivate() {
	t.reset()
}

func (t *Tool) reset() {
	t.state = ToolInactive
	t.first = Anchor{}
	t.current = Anchor{}
	t.hasCurrent = false
}

// Click records an anchor. It returns true with both anchors when the second
// click completes the annotation; the tool is inactive afterwards.
func (t *Tool) Click(a Anchor) (p1, p2 Anchor, done bool) {
	switch t.state {
	case ToolAwaitFirst:
		t.first = a
		t.current = a
		t.hasCurrent = true
		t.state = ToolAwaitSecond
	case ToolAwaitSecond:
		p1 = t.first
		t.reset()
		return p1, a, true
	}
	return Anchor{}, Anchor{}, false
}

// Move updates the pointer position and reports whether the preview changed.
func (t *Tool) Move(a Anchor) bool {
	if t.state != ToolAwaitSecond {
		return false
	}
	changed := !t.hasCurrent || t.current != a
	t.current = a
	t.hasCurrent = true
	return changed
}

// Preview is the segment from the first anchor to the pointer.
func (t *Tool) Preview() (p1, p2 Anchor, ok bool) {
	if t.state != ToolAwaitSecond || !t.hasCurrent {
		return Anchor{}, Anchor{}, false
	}
	return t.first, t.current, true
}

// Toolbox holds one tool per kind, at most one of them is active.
type Toolbox struct {
	tools  map[Kind]*Tool
	active Kind
}

func NewToolbox() *Toolbox {
	tb := &Toolbox{tools: make(map[Kind]*Tool)}
	for _, k := range Kinds {
		tb.tools[k] = NewTool(k)
	}
	return tb
}

// SetActive activates the tool of the given kind and deactivates the other
// ones. An empty kind deactivates all tools.
func (tb *Toolbox) SetActive(kind Kind) {
	for k, t := range tb.tools {
		if k != kind {
			t.Deactivate()
		}
	}
	tb.active = ""
	if t, ok := tb.tools[kind]; ok {
		t.Activate()
		tb.active = kind
	}
}

func (tb *Toolbox) Active() (*Tool, bool) {
	t, ok := tb.tools[tb.active]
	if !ok || t.State() == ToolInactive {
		return nil, false
	}
	return t, true
}

func (tb *Toolbox) Tool(kind Kind) *Tool {
	return tb.tools[kind]
}

// Click forwards a click to the active tool. The returned annotation is
// complete if done is true; the toolbox is inactive afterwards.
func (tb *Toolbox) Click(a Anchor, opts Options) (anno Annotation, done bool) {
	t, ok := tb.Active()
	if !ok {
		return Annotation{}, false
	}
	p1, p2, done := t.Click(a)
	if !done {
		return Annotation{}, false
	}
	tb.active = ""
	return NewAnnotation(t.Kind(), p1, p2, opts), true
}

func (tb *Toolbox) Move(a Anchor) bool {
	t, ok := tb.Active()
	if !ok {
		return false
	}
	return t.Move(a)
}
