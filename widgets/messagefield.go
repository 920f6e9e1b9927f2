// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"
	"sync"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
)

// MessageField shows a warning banner on top of the chart. Messages may be
// set from any goroutine.
type MessageField struct {
	mutex sync.Mutex
	text  string
}

func NewMessageField() *MessageField {
	return &MessageField{}
}

func (f *MessageField) SetText(txt string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.text = txt
}

func (f *MessageField) Text() string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.text
}

// Layout draws nothing if there is no message.
func (f *MessageField) Layout(gtx layout.Context, th *material.Theme, ct *ChartTheme) layout.Dimensions {
	txt := f.Text()
	if txt == "" {
		return layout.Dimensions{}
	}
	macro := op.Record(gtx.Ops)
	lbl := material.Body1(th, txt)
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	clipRect := image.Rectangle{Max: image.Point{X: gtx.Dp(50) + dims.Size.X, Y: gtx.Dp(40) + dims.Size.Y}}
	defer clip.Rect(clipRect).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, ct.WarningBgColor)

	textArea := op.Offset(image.Point{X: gtx.Dp(25), Y: gtx.Dp(20)}).Push(gtx.Ops)
	call.Add(gtx.Ops)
	textArea.Pop()
	return layout.Dimensions{Size: clipRect.Size()}
}
