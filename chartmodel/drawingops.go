// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartmodel

import (
	"maycharts/chartval"
	"maycharts/drawing"
	"maycharts/invalidate"
	"slices"
)

// Annotations are placed on the main pane.
const AnnotationPane = 0

func (m *Model) Session() *drawing.Session {
	return m.session
}

func (m *Model) Annotations() []drawing.Annotation {
	return m.session.All()
}

func (m *Model) Selected() (string, bool) {
	return m.selected, m.selected != ""
}

func (m *Model) ActiveTool() (drawing.Kind, bool) {
	t, ok := m.toolbox.Active()
	if !ok {
		return "", false
	}
	return t.Kind(), true
}

// Preview returns the annotation being placed, if the first anchor is set.
func (m *Model) Preview() (drawing.Annotation, bool) {
	t, ok := m.toolbox.Active()
	if !ok {
		return drawing.Annotation{}, false
	}
	p1, p2, ok := t.Preview()
	if !ok {
		return drawing.Annotation{}, false
	}
	return drawing.Annotation{Kind: t.Kind(), P1: p1, P2: p2, Options: m.annotationOptions(t.Kind())}, true
}

func (m *Model) annotationOptions(kind drawing.Kind) drawing.Options {
	return m.opts.Annotation[kind]
}

func (m *Model) persist(kind drawing.Kind) {
	if m.sink == nil || m.session.Symbol() == "" {
		return
	}
	m.sink.Enqueue(m.session.Intent(kind))
}

// SetActiveTool activates a placement tool, the empty kind deactivates it.
// While a tool is active the crosshair shows a dot without snapping.
func (m *Model) SetActiveTool(kind drawing.Kind) {
	if kind != "" && !kind.Valid() {
		m.badArg("SetActiveTool: unknown annotation kind %q", kind)
		return
	}
	_, wasActive := m.toolbox.Active()
	m.toolbox.SetActive(kind)
	if kind == "" {
		if wasActive {
			m.endPlacement()
		}
		return
	}
	if !wasActive {
		m.savedMode = m.crosshairMode
	}
	m.crosshairMode = CrosshairNormal
	m.crosshair.DotOnly = true
	m.emit(m.paneMask(AnnotationPane, false))
}

func (m *Model) endPlacement() {
	m.crosshairMode = m.savedMode
	m.crosshair.DotOnly = false
	m.emit(m.paneMask(AnnotationPane, false))
}

// DrawingClick forwards a click at pane coordinates to the active tool.
// It returns the annotation once the second anchor is placed.
func (m *Model) DrawingClick(x, y float64) (drawing.Annotation, bool) {
	t, ok := m.toolbox.Active()
	if !ok {
		return drawing.Annotation{}, false
	}
	conv, ok := m.Converter(AnnotationPane)
	if !ok {
		return drawing.Annotation{}, false
	}
	anchor, ok := drawing.ResolveAnchor(conv, x, y)
	if !ok {
		return drawing.Annotation{}, false
	}
	kind := t.Kind()
	a, done := m.toolbox.Click(anchor, m.annotationOptions(kind))
	if !done {
		m.emit(m.paneMask(AnnotationPane, false))
		return drawing.Annotation{}, false
	}
	m.session.Add(a)
	m.persist(kind)
	m.endPlacement()
	return a, true
}

// DrawingMove updates the preview of the tool awaiting its second anchor.
func (m *Model) DrawingMove(x, y float64) {
	conv, ok := m.Converter(AnnotationPane)
	if !ok {
		return
	}
	anchor, ok := drawing.ResolveAnchor(conv, x, y)
	if !ok {
		return
	}
	if m.toolbox.Move(anchor) {
		m.emit(m.paneMask(AnnotationPane, false))
	}
}

func (m *Model) AddAnnotation(a drawing.Annotation) {
	if !a.Kind.Valid() || a.ID == "" {
		m.badArg("AddAnnotation: invalid annotation %q of kind %q", a.ID, a.Kind)
		return
	}
	m.session.Add(a)
	m.persist(a.Kind)
	m.emit(m.paneMask(AnnotationPane, false))
}

func (m *Model) UpdateAnnotation(a drawing.Annotation) {
	if !m.session.Update(a) {
		m.badArg("UpdateAnnotation: unknown annotation %q of kind %q", a.ID, a.Kind)
		return
	}
	m.persist(a.Kind)
	m.emit(m.paneMask(AnnotationPane, false))
}

func (m *Model) RemoveAnnotation(id string) {
	a, ok := m.session.Remove(id)
	if !ok {
		m.badArg("RemoveAnnotation: unknown annotation %q", id)
		return
	}
	if m.selected == id {
		m.selected = ""
	}
	if m.drag != nil && m.drag.ID() == id {
		m.drag = nil
	}
	m.persist(a.Kind)
	m.emit(m.paneMask(AnnotationPane, false))
}

func (m *Model) hitTest(x, y float64) (drawing.Hit, bool) {
	conv, ok := m.Converter(AnnotationPane)
	if !ok {
		return drawing.Hit{}, false
	}
	return drawing.HitTest(m.session.All(), conv, x, y, m.opts.Hit)
}

// SelectAt selects the annotation under (x, y) or clears the selection.
func (m *Model) SelectAt(x, y float64) (drawing.Hit, bool) {
	hit, ok := m.hitTest(x, y)
	id := ""
	if ok {
		id = hit.ID
	}
	if id != m.selected {
		m.selected = id
		m.emit(m.paneMask(AnnotationPane, false))
	}
	return hit, ok
}

// StartDrag begins dragging the annotation under (x, y).
func (m *Model) StartDrag(x, y float64) bool {
	hit, ok := m.SelectAt(x, y)
	if !ok {
		return false
	}
	a, ok := m.session.Get(hit.ID)
	if !ok {
		return false
	}
	conv, _ := m.Converter(AnnotationPane)
	d, ok := drawing.StartDrag(a, hit, conv, x, y)
	if !ok {
		return false
	}
	m.drag = d
	return true
}

func (m *Model) IsDragging() bool {
	return m.drag != nil
}

func (m *Model) DragTo(x, y float64) {
	if m.drag == nil {
		return
	}
	conv, ok := m.Converter(AnnotationPane)
	if !ok {
		return
	}
	a, ok := m.drag.Move(conv, x, y, m.opts.DragPolicy)
	if !ok {
		return
	}
	if m.session.Update(a) {
		m.emit(m.paneMask(AnnotationPane, false))
	}
}

// EndDrag finishes a drag and persists the result.
func (m *Model) EndDrag() {
	if m.drag == nil {
		return
	}
	orig := m.drag.Original()
	m.drag = nil
	if a, ok := m.session.Get(orig.ID); ok && (a.P1 != orig.P1 || a.P2 != orig.P2) {
		m.persist(a.Kind)
	}
}

// SetSymbol starts a new annotation session. Restored annotations of the
// previous symbol are ignored afterwards.
func (m *Model) SetSymbol(symbol string) {
	if chartval.NormalizeSymbol(symbol) == m.session.Symbol() {
		return
	}
	if _, ok := m.toolbox.Active(); ok {
		m.toolbox.SetActive("")
		m.crosshairMode = m.savedMode
		m.crosshair.DotOnly = false
	}
	m.session = drawing.NewSession(symbol)
	m.selected = ""
	m.drag = nil
	m.emit(invalidate.New(invalidate.Full))
}

// RestoreAnnotations adds annotations loaded for symbol. Results for another
// symbol arrive too late and are dropped.
func (m *Model) RestoreAnnotations(symbol string, annos []drawing.Annotation) int {
	if chartval.NormalizeSymbol(symbol) != m.session.Symbol() {
		m.logger.Printf("ignoring annotations of %s, current symbol is %s", symbol, m.session.Symbol())
		return 0
	}
	local := m.session.LocalKinds()
	n := m.session.Restore(annos)
	// Save the merged sets, earlier intents only held local changes.
	kinds := local
	for _, a := range annos {
		if !slices.Contains(kinds, a.Kind) {
			if _, ok := m.session.Get(a.ID); ok {
				kinds = append(kinds, a.Kind)
			}
		}
	}
	if n > 0 || len(local) > 0 {
		for _, k := range kinds {
			m.persist(k)
		}
	}
	if n > 0 {
		m.emit(m.paneMask(AnnotationPane, false))
	}
	return n
}
