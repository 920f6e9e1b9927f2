// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

import (
	"maycharts/chartval"
	"sort"
)

// Session holds the annotations of one symbol. A new session is created when
// the symbol changes. Until the stored annotations are restored, the session
// only holds local changes, and removed ids are remembered.
type Session struct {
	symbol      string
	annotations map[string]Annotation
	order       []string
	restored    bool
	removed     map[string]Kind
}

func NewSession(symbol string) *Session {
	return &Session{
		symbol:      chartval.NormalizeSymbol(symbol),
		annotations: make(map[string]Annotation),
		removed:     make(map[string]Kind),
	}
}

func (s *Session) Restored() bool {
	return s.restored
}

func (s *Session) Symbol() string {
	return s.symbol
}

func (s *Session) Len() int {
	return len(s.order)
}

// Add inserts a new annotation, an existing id is replaced.
func (s *Session) Add(a Annotation) {
	if _, ok := s.annotations[a.ID]; !ok {
		s.order = append(s.order, a.ID)
	}
	s.annotations[a.ID] = a
}

func (s *Session) Update(a Annotation) bool {
	old, ok := s.annotations[a.ID]
	if !ok || old.Kind != a.Kind {
		return false
	}
	s.annotations[a.ID] = a
	return true
}

func (s *Session) Remove(id string) (Annotation, bool) {
	a, ok := s.annotations[id]
	if !ok {
		return Annotation{}, false
	}
	delete(s.annotations, id)
	if !s.restored {
		s.removed[id] = a.Kind
	}
	if i := chartval.IndexOf(s.order, id); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
	return a, true
}

func (s *Session) Get(id string) (Annotation, bool) {
	a, ok := s.annotations[id]
	return a, ok
}

// All returns the annotations in creation order.
func (s *Session) All() []Annotation {
	out := make([]Annotation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.annotations[id])
	}
	return out
}

func (s *Session) ByKind(kind Kind) map[string]Annotation {
	out := make(map[string]Annotation)
	for id, a := range s.annotations {
		if a.Kind == kind {
			out[id] = a
		}
	}
	return out
}

// Restore adds loaded annotations which are not yet present. Ids already in
// the session were created or removed during loading and win.
func (s *Session) Restore(annos []Annotation) int {
	sort.SliceStable(annos, func(i, j int) bool { return annos[i].ID < annos[j].ID })
	n := 0
	for _, a := range annos {
		if _, ok := s.annotations[a.ID]; ok || !a.Kind.Valid() {
			continue
		}
		if _, ok := s.removed[a.ID]; ok {
			continue
		}
		s.Add(a)
		n++
	}
	s.restored = true
	clear(s.removed)
	return n
}

// LocalKinds returns the kinds changed before the stored annotations were
// restored, sorted.
func (s *Session) LocalKinds() []Kind {
	if s.restored {
		return nil
	}
	seen := make(map[Kind]bool)
	for _, a := range s.annotations {
		seen[a.Kind] = true
	}
	for _, k := range s.removed {
		seen[k] = true
	}
	kinds := make([]Kind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (s *Session) removedOfKind(kind Kind) []string {
	var ids []string
	for id, k := range s.removed {
		if k == kind {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
