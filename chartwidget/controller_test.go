// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartwidget

import (
	"maycharts/chartmodel"
	"maycharts/drawing"
	"maycharts/indapi"
	"maycharts/mock"
	"maycharts/series"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandles(n int) []indapi.CandleData {
	data := make([]indapi.CandleData, n)
	for i := range data {
		p := int64(100 + i)
		data[i] = indapi.CandleData{
			Timestamp:  time.Unix(int64(i+1)*86400, 0).UTC(),
			OpenPrice:  decimal.New(p, 0),
			HighPrice:  decimal.New(p+5, 0),
			LowPrice:   decimal.New(p-5, 0),
			ClosePrice: decimal.New(p+1, 0),
			Volume:     decimal.New(1000, 0),
		}
	}
	return data
}

// The chart is 400x328: plot width 336, pane 0 spans y 0 to 300, the time
// axis starts at 300.
func newTestController(t *testing.T) (*Controller, *chartmodel.Model, *mock.Invalidator) {
	inv := &mock.Invalidator{}
	logger, _ := mock.NewLogger(t)
	opts := chartmodel.DefaultOptions()
	opts.DevMode = true
	m := chartmodel.New(opts, inv, nil, logger)
	m.Resize(400, 328)
	m.AddSeries(0, series.New("main", series.TypeCandlestick, series.Options{Visible: true}))
	m.SetCandles("main", testCandles(30))
	m.RecalculateAutoScale(0)
	inv.Reset()
	return NewController(m), m, inv
}

func TestHoverMovesCrosshair(t *testing.T) {
	c, m, _ := newTestController(t)
	c.Handle(Event{Type: Move, X: 100, Y: 50})
	ch := m.Crosshair()
	assert.True(t, ch.Visible)
	assert.Equal(t, 0, ch.Pane)

	c.Handle(Event{Type: Move, X: 100, Y: 310})
	assert.False(t, m.Crosshair().Visible)

	c.Handle(Event{Type: Move, X: 100, Y: 50})
	c.Handle(Event{Type: Leave})
	assert.False(t, m.Crosshair().Visible)
}

func TestWheelZooms(t *testing.T) {
	c, m, inv := newTestController(t)
	before := m.TimeScale().BarSpacing()
	c.Handle(Event{Type: Wheel, X: 200, Y: 100, DeltaY: -1})
	assert.Greater(t, m.TimeScale().BarSpacing(), before)
	assert.NotEmpty(t, inv.Masks)

	c.Handle(Event{Type: Wheel, X: 200, Y: 100, DeltaY: 1})
	c.Handle(Event{Type: Wheel, X: 200, Y: 100, DeltaY: 1})
	assert.Less(t, m.TimeScale().BarSpacing(), before)
}

func TestWheelOnPriceAxisIsIgnored(t *testing.T) {
	c, m, inv := newTestController(t)
	before := m.TimeScale().BarSpacing()
	c.Handle(Event{Type: Wheel, X: 350, Y: 100, DeltaY: -1})
	assert.Equal(t, before, m.TimeScale().BarSpacing())
	assert.Empty(t, inv.Masks)
}

func TestPanScrollsTime(t *testing.T) {
	c, m, _ := newTestController(t)
	before := m.TimeScale().RightOffset()

	c.Handle(Event{Type: Press, X: 200, Y: 100})
	assert.True(t, c.Dragging())
	c.Handle(Event{Type: Drag, X: 200 + 2*m.TimeScale().BarSpacing(), Y: 100})
	c.Handle(Event{Type: Release, X: 200, Y: 100})
	assert.False(t, c.Dragging())
	assert.InDelta(t, before-2, m.TimeScale().RightOffset(), 1e-9)
}

func TestPriceAxisDragDisablesAutoScale(t *testing.T) {
	c, m, _ := newTestController(t)
	p, _ := m.Pane(0)
	require.True(t, p.Right().IsAutoScale())
	r0, _ := p.Right().Range()

	c.Handle(Event{Type: Press, X: 360, Y: 100})
	c.Handle(Event{Type: Drag, X: 360, Y: 140})
	c.Handle(Event{Type: Release, X: 360, Y: 140})
	assert.False(t, p.Right().IsAutoScale())
	r1, _ := p.Right().Range()
	assert.NotEqual(t, r0, r1)
}

func TestTimeAxisDragChangesBarSpacing(t *testing.T) {
	c, m, _ := newTestController(t)
	before := m.TimeScale().BarSpacing()
	c.Handle(Event{Type: Press, X: 100, Y: 310})
	c.Handle(Event{Type: Drag, X: 130, Y: 310})
	c.Handle(Event{Type: Release, X: 130, Y: 310})
	assert.Greater(t, m.TimeScale().BarSpacing(), before)
}

func TestPressPlacesAnnotation(t *testing.T) {
	c, m, _ := newTestController(t)
	ts := m.TimeScale()
	m.SetActiveTool(drawing.KindTrendline)

	c.Handle(Event{Type: Press, X: ts.IndexToCoordinate(5), Y: 100})
	c.Handle(Event{Type: Release, X: ts.IndexToCoordinate(5), Y: 100})
	c.Handle(Event{Type: Move, X: ts.IndexToCoordinate(10), Y: 150})
	_, ok := m.Preview()
	assert.True(t, ok)
	c.Handle(Event{Type: Press, X: ts.IndexToCoordinate(12), Y: 200})
	c.Handle(Event{Type: Release, X: ts.IndexToCoordinate(12), Y: 200})

	require.Len(t, m.Annotations(), 1)
	_, ok = m.ActiveTool()
	assert.False(t, ok)
	assert.False(t, c.Dragging())
}

func TestPressOnAnnotationDragsIt(t *testing.T) {
	c, m, _ := newTestController(t)
	ts := m.TimeScale()
	m.SetActiveTool(drawing.KindTrendline)
	m.DrawingClick(ts.IndexToCoordinate(5), 100)
	a, ok := m.DrawingClick(ts.IndexToCoordinate(12), 200)
	require.True(t, ok)
	offset := m.TimeScale().RightOffset()

	x1 := ts.IndexToCoordinate(5)
	c.Handle(Event{Type: Press, X: x1, Y: 100})
	assert.True(t, m.IsDragging())
	c.Handle(Event{Type: Drag, X: ts.IndexToCoordinate(3), Y: 100})
	c.Handle(Event{Type: Release, X: ts.IndexToCoordinate(3), Y: 100})
	assert.False(t, m.IsDragging())

	got, _ := m.Session().Get(a.ID)
	assert.InDelta(t, float64(4*86400), got.P1.Time, 1)
	assert.Equal(t, a.P2, got.P2)
	// The chart did not scroll.
	assert.Equal(t, offset, m.TimeScale().RightOffset())
}

func TestTouchPressShowsCrosshair(t *testing.T) {
	c, m, _ := newTestController(t)
	c.Handle(Event{Type: Press, Source: SourceTouch, X: 100, Y: 50})
	assert.True(t, m.Crosshair().Visible)
	c.Handle(Event{Type: Release, Source: SourceTouch, X: 100, Y: 50})
}

func TestPinchZooms(t *testing.T) {
	c, m, _ := newTestController(t)
	before := m.TimeScale().BarSpacing()
	c.Handle(Event{Type: Pinch, Source: SourceTouch, X: 200, Y: 100, Scale: 1.2})
	assert.Greater(t, m.TimeScale().BarSpacing(), before)
}

func TestConvertEvent(t *testing.T) {
	ev, ok := convertEvent(pointer.Event{Type: pointer.Scroll, Position: f32.Pt(10, 20), Scroll: f32.Pt(0, -3)})
	require.True(t, ok)
	assert.Equal(t, Event{Type: Wheel, X: 10, Y: 20, DeltaY: -3}, ev)

	ev, ok = convertEvent(pointer.Event{Type: pointer.Press, Source: pointer.Touch})
	require.True(t, ok)
	assert.Equal(t, SourceTouch, ev.Source)

	_, ok = convertEvent(pointer.Event{Type: pointer.Enter})
	assert.False(t, ok)
}

func TestKeyShortcuts(t *testing.T) {
	c, m, _ := newTestController(t)
	c.HandleKey(KeyTrendline)
	kind, ok := m.ActiveTool()
	require.True(t, ok)
	assert.Equal(t, drawing.KindTrendline, kind)
	c.HandleKey(KeyFibonacci)
	kind, _ = m.ActiveTool()
	assert.Equal(t, drawing.KindFibonacci, kind)
	c.HandleKey(KeyFibonacci)
	_, ok = m.ActiveTool()
	assert.False(t, ok)

	c.HandleKey(KeyMagnet)
	assert.Equal(t, chartmodel.CrosshairMagnet, m.CrosshairMode())
	c.HandleKey(KeyMagnet)
	assert.Equal(t, chartmodel.CrosshairNormal, m.CrosshairMode())

	c.HandleKey(KeyTrendline)
	c.HandleKey(KeyCancel)
	_, ok = m.ActiveTool()
	assert.False(t, ok)
}

func TestDeleteKeyRemovesSelection(t *testing.T) {
	c, m, _ := newTestController(t)
	ts := m.TimeScale()
	m.SetActiveTool(drawing.KindTrendline)
	m.DrawingClick(ts.IndexToCoordinate(5), 100)
	_, ok := m.DrawingClick(ts.IndexToCoordinate(12), 200)
	require.True(t, ok)

	c.HandleKey(KeyDelete)
	assert.Len(t, m.Annotations(), 1)
	m.SelectAt(ts.IndexToCoordinate(5), 100)
	c.HandleKey(KeyDelete)
	assert.Empty(t, m.Annotations())
}

func TestConvertKey(t *testing.T) {
	k, ok := convertKey(key.NameEnd)
	assert.True(t, ok)
	assert.Equal(t, KeyRealTime, k)
	_, ok = convertKey("Q")
	assert.False(t, ok)
}
