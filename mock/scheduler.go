// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"sync"
	"time"
)

// FakeScheduler holds requested frame callbacks until Fire is called.
type FakeScheduler struct {
	mutex    sync.Mutex
	pending  []*frameRequest
	requests int
}

type frameRequest struct {
	cb        func(time.Time)
	cancelled bool
}

func (s *FakeScheduler) RequestFrame(cb func(time.Time)) func() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	r := &frameRequest{cb: cb}
	s.pending = append(s.pending, r)
	s.requests++
	return func() {
		s.mutex.Lock()
		r.cancelled = true
		s.mutex.Unlock()
	}
}

// Requests is the number of RequestFrame calls so far.
func (s *FakeScheduler) Requests() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.requests
}

// Pending is the number of callbacks that were neither fired nor cancelled.
func (s *FakeScheduler) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	n := 0
	for _, r := range s.pending {
		if !r.cancelled {
			n++
		}
	}
	return n
}

// Fire runs the callbacks pending at the time of the call and returns how
// many ran. Callbacks requested while firing wait for the next call.
func (s *FakeScheduler) Fire(now time.Time) int {
	s.mutex.Lock()
	reqs := s.pending
	s.pending = nil
	s.mutex.Unlock()
	n := 0
	for _, r := range reqs {
		s.mutex.Lock()
		cancelled := r.cancelled
		s.mutex.Unlock()
		if !cancelled {
			r.cb(now)
			n++
		}
	}
	return n
}
