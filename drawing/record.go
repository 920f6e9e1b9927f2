// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

import (
	"encoding/json"
	"fmt"
	"log"
	"maycharts/annostore"
	"sort"
)

type recordData struct {
	P1 Anchor `json:"p1"`
	P2 Anchor `json:"p2"`
}

func ToRecord(a Annotation) (annostore.Record, error) {
	data, err := json.Marshal(recordData{P1: a.P1, P2: a.P2})
	if err != nil {
		return annostore.Record{}, fmt.Errorf("encode annotation %s: %w", a.ID, err)
	}
	opts, err := json.Marshal(a.Options)
	if err != nil {
		return annostore.Record{}, fmt.Errorf("encode annotation options %s: %w", a.ID, err)
	}
	return annostore.Record{Data: data, Options: opts}, nil
}

func FromRecord(id string, kind Kind, r annostore.Record) (Annotation, error) {
	var d recordData
	if err := json.Unmarshal(r.Data, &d); err != nil {
		return Annotation{}, fmt.Errorf("decode annotation %s: %w", id, err)
	}
	a := Annotation{ID: id, Kind: kind, P1: d.P1, P2: d.P2}
	if len(r.Options) > 0 {
		if err := json.Unmarshal(r.Options, &a.Options); err != nil {
			return Annotation{}, fmt.Errorf("decode annotation options %s: %w", id, err)
		}
	}
	return a, nil
}

// Intent returns the persistence snapshot of one kind of the session.
func (s *Session) Intent(kind Kind) annostore.Intent {
	records := annostore.Set{}
	for id, a := range s.ByKind(kind) {
		r, err := ToRecord(a)
		if err != nil {
			log.Printf("skipping annotation: %v", err)
			continue
		}
		records[id] = r
	}
	return annostore.Intent{
		Symbol:  s.symbol,
		Kind:    string(kind),
		Records: records,
		Partial: !s.restored,
		Removed: s.removedOfKind(kind),
	}
}

// DecodeSets converts loaded records. Invalid records and unknown kinds are skipped.
func DecodeSets(sets map[string]annostore.Set) []Annotation {
	var out []Annotation
	for kind, set := range sets {
		k := Kind(kind)
		if !k.Valid() {
			log.Printf("ignoring unknown annotation kind %s", kind)
			continue
		}
		for id, r := range set {
			a, err := FromRecord(id, k, r)
			if err != nil {
				log.Printf("ignoring annotation: %v", err)
				continue
			}
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
