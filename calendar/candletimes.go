// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package calendar

import (
	"maycharts/indapi/candles"
	"slices"
	"time"
)

// Upper bound of days to look back, in case a calendar has no trading days.
const maxLookbackDays = 3660

// CandleTimes returns the start times of the last n candles which begin at or
// before end, in ascending order. Intraday candles are limited to regular
// trading hours, daily candles to trading days. Daily and longer candles start
// at midnight UTC.
func (c MarketCalendar) CandleTimes(end time.Time, r candles.CandleResolution, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	times := make([]time.Time, 0, n)
	switch {
	case r < candles.CandleOneDay:
		step := r.GetDuration(end)
		day := end.In(c.loc)
		for i := 0; i < maxLookbackDays && len(times) < n; i++ {
			if s, ok := c.Session(day); ok {
				t := s.Open.Add(s.Close.Sub(s.Open).Truncate(step))
				if t.Equal(s.Close) {
					t = t.Add(-step)
				}
				for ; !t.Before(s.Open) && len(times) < n; t = t.Add(-step) {
					if !t.After(end) {
						times = append(times, t.UTC())
					}
				}
			}
			day = day.AddDate(0, 0, -1)
		}
	case r == candles.CandleOneDay:
		y, m, d := end.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		for i := 0; i < maxLookbackDays && len(times) < n; i++ {
			// Noon avoids the date shift of the exchange time zone.
			if trading, _ := c.IsTradingDay(day.Add(12 * time.Hour)); trading {
				times = append(times, day)
			}
			day = day.AddDate(0, 0, -1)
		}
	default:
		for i := 0; i < n; i++ {
			times = append(times, r.GetNthCandleTime(end.UTC(), -i))
		}
	}
	slices.Reverse(times)
	return times
}
