// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"bufio"
	"log"
	"maycharts/invalidate"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func NewLogger(t *testing.T) (*log.Logger, *bufio.Scanner) {
	r, w, err := os.Pipe()
	if err != nil {
		assert.Fail(t, "failed to create logger mock: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	t.Cleanup(func() { w.Close() })
	return log.New(w, "", log.LstdFlags), bufio.NewScanner(r)
}

// Invalidator records every mask it receives.
type Invalidator struct {
	Masks []*invalidate.Mask
}

func (i *Invalidator) Invalidate(m *invalidate.Mask) {
	i.Masks = append(i.Masks, m.Clone())
}

func (i *Invalidator) Reset() {
	i.Masks = nil
}

// Merged folds all received masks into one.
func (i *Invalidator) Merged() *invalidate.Mask {
	merged := invalidate.New(invalidate.None)
	for _, m := range i.Masks {
		merged.Merge(m)
	}
	return merged
}
