// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package calendar

import (
	"maycharts/indapi/candles"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoliday2023(t *testing.T) {
	c := NewNYSECalendar()
	for _, d := range []time.Time{
		time.Date(2023, 1, 1, 0, 0, 0, 0, c.loc),
		time.Date(2023, 1, 16, 0, 0, 0, 0, c.loc),
		time.Date(2023, 2, 20, 0, 0, 0, 0, c.loc),
		time.Date(2023, 5, 29, 0, 0, 0, 0, c.loc),
		time.Date(2023, 6, 19, 0, 0, 0, 0, c.loc),
		time.Date(2023, 7, 4, 0, 0, 0, 0, c.loc),
		time.Date(2023, 9, 4, 0, 0, 0, 0, c.loc),
		time.Date(2023, 11, 23, 0, 0, 0, 0, c.loc),
		time.Date(2023, 12, 25, 0, 0, 0, 0, c.loc),
	} {
		_, ok := c.Holiday(d)
		assert.True(t, ok, d)
	}
	name, ok := c.Holiday(time.Date(2023, 1, 2, 0, 0, 0, 0, c.loc))
	assert.True(t, ok)
	assert.True(t, strings.HasSuffix(name, observedSuffix))

	_, ok = c.Holiday(time.Date(2023, 8, 9, 0, 0, 0, 0, c.loc))
	assert.False(t, ok)
}

func TestIsTradingDay(t *testing.T) {
	c := NewNYSECalendar()
	tests := []struct {
		day     time.Time
		trading bool
		partial bool
	}{
		{time.Date(2023, 7, 3, 0, 0, 0, 0, c.loc), true, true},
		{time.Date(2023, 11, 24, 0, 0, 0, 0, c.loc), true, true},
		// Sunday
		{time.Date(2023, 12, 24, 0, 0, 0, 0, c.loc), false, false},
		// observed Christmas
		{time.Date(2021, 12, 24, 0, 0, 0, 0, c.loc), false, false},
		{time.Date(2020, 12, 24, 0, 0, 0, 0, c.loc), true, true},
		{time.Date(2023, 8, 5, 0, 0, 0, 0, c.loc), false, false},
		{time.Date(2023, 8, 7, 0, 0, 0, 0, c.loc), true, false},
	}
	for _, tt := range tests {
		trading, partial := c.IsTradingDay(tt.day)
		assert.Equal(t, tt.trading, trading, tt.day)
		assert.Equal(t, tt.partial, partial, tt.day)
	}
}

func TestSession(t *testing.T) {
	c := NewNYSECalendar()
	s, ok := c.Session(time.Date(2023, 8, 9, 0, 0, 0, 0, c.loc))
	require.True(t, ok)
	assert.False(t, s.Partial)
	assert.True(t, s.Open.Equal(time.Date(2023, 8, 9, 9, 30, 0, 0, c.loc)))
	assert.True(t, s.Close.Equal(time.Date(2023, 8, 9, 16, 0, 0, 0, c.loc)))
	assert.True(t, s.PreOpen.Equal(time.Date(2023, 8, 9, 4, 0, 0, 0, c.loc)))
	assert.True(t, s.ExtClose.Equal(time.Date(2023, 8, 9, 20, 0, 0, 0, c.loc)))
	assert.True(t, s.Contains(time.Date(2023, 8, 9, 15, 59, 0, 0, c.loc)))
	assert.False(t, s.Contains(s.Close))

	s, ok = c.Session(time.Date(2018, 12, 24, 0, 0, 0, 0, c.loc))
	require.True(t, ok)
	assert.True(t, s.Partial)
	assert.True(t, s.Close.Equal(time.Date(2018, 12, 24, 13, 0, 0, 0, c.loc)))

	_, ok = c.Session(time.Date(2023, 8, 6, 0, 0, 0, 0, c.loc))
	assert.False(t, ok)
}

func TestCandleTimesDaily(t *testing.T) {
	c := NewNYSECalendar()
	// Monday after Thanksgiving week
	end := time.Date(2023, 11, 27, 18, 0, 0, 0, time.UTC)
	times := c.CandleTimes(end, candles.CandleOneDay, 4)
	assert.Equal(t, []time.Time{
		time.Date(2023, 11, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 11, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 11, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 11, 27, 0, 0, 0, 0, time.UTC),
	}, times)
}

func TestCandleTimesIntraday(t *testing.T) {
	c := NewNYSECalendar()
	// Tuesday 10:00 ET
	end := time.Date(2023, 8, 8, 10, 0, 0, 0, c.loc)
	times := c.CandleTimes(end, candles.CandleThirtyMinutes, 3)
	require.Len(t, times, 3)
	assert.True(t, times[0].Equal(time.Date(2023, 8, 7, 15, 30, 0, 0, c.loc)))
	assert.True(t, times[1].Equal(time.Date(2023, 8, 8, 9, 30, 0, 0, c.loc)))
	assert.True(t, times[2].Equal(time.Date(2023, 8, 8, 10, 0, 0, 0, c.loc)))
	for i := 1; i < len(times); i++ {
		assert.True(t, times[i-1].Before(times[i]))
	}
}

func TestCandleTimesEmpty(t *testing.T) {
	c := NewNYSECalendar()
	assert.Nil(t, c.CandleTimes(time.Now(), candles.CandleOneDay, 0))
	assert.Len(t, c.CandleTimes(time.Now(), candles.CandleOneMonth, 3), 3)
}
