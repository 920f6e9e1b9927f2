// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package render

import (
	"sync"
	"time"
)

// Invalidater is implemented by *app.Window.
type Invalidater interface {
	Invalidate()
}

type frameCallback struct {
	cb        func(time.Time)
	cancelled bool
}

// WindowScheduler runs frame callbacks from the window's frame event. Without
// a window, callbacks only run on explicit RunFrame calls.
type WindowScheduler struct {
	mutex   sync.Mutex
	win     Invalidater
	pending []*frameCallback
}

func NewWindowScheduler(win Invalidater) *WindowScheduler {
	return &WindowScheduler{win: win}
}

func (s *WindowScheduler) RequestFrame(cb func(time.Time)) func() {
	fc := &frameCallback{cb: cb}
	s.mutex.Lock()
	s.pending = append(s.pending, fc)
	s.mutex.Unlock()
	if s.win != nil {
		s.win.Invalidate()
	}
	return func() {
		s.mutex.Lock()
		fc.cancelled = true
		s.mutex.Unlock()
	}
}

// RunFrame must be called for every frame event before the chart is laid out.
func (s *WindowScheduler) RunFrame(now time.Time) {
	s.mutex.Lock()
	cbs := s.pending
	s.pending = nil
	s.mutex.Unlock()
	for _, fc := range cbs {
		s.mutex.Lock()
		cancelled := fc.cancelled
		s.mutex.Unlock()
		if !cancelled {
			fc.cb(now)
		}
	}
}
