// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package drawing

import (
	"encoding/json"
	"image/color"
	"maycharts/annostore"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIntentRestores(t *testing.T) {
	s := NewSession("BTC-USD")
	a := NewAnnotation(KindFibonacci, Anchor{Time: 100, Price: 1}, Anchor{Time: 200, Price: 2},
		Options{Color: color.NRGBA{R: 255, A: 255}, LineWidth: 2, Levels: []float64{0, 0.5, 1}})
	s.Add(a)
	s.Add(testTrendline())

	intent := s.Intent(KindFibonacci)
	assert.Equal(t, "BTC-USD", intent.Symbol)
	assert.Equal(t, "fibonacci", intent.Kind)
	require.Len(t, intent.Records, 1)

	restored := DecodeSets(map[string]annostore.Set{
		"fibonacci": intent.Records,
		"rectangle": {"x": annostore.Record{}},
		"trendline": {"broken": annostore.Record{Data: json.RawMessage(`{`)}},
	})
	require.Len(t, restored, 1)
	assert.Equal(t, a, restored[0])
}

func TestSessionIntentIsPartialUntilRestored(t *testing.T) {
	s := NewSession("AAPL")
	a := testTrendline()
	s.Add(a)
	s.Remove(a.ID)
	intent := s.Intent(KindTrendline)
	assert.True(t, intent.Partial)
	assert.Equal(t, []string{a.ID}, intent.Removed)

	s.Restore(nil)
	intent = s.Intent(KindTrendline)
	assert.False(t, intent.Partial)
	assert.Empty(t, intent.Removed)
}
