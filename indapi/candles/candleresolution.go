// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candles

import (
	"fmt"
	"time"
)

type CandleResolution int32

const (
	CandleOneMinute CandleResolution = iota
	CandleFiveMinutes
	CandleFifteenMinutes
	CandleThirtyMinutes
	CandleSixtyMinutes
	CandleOneDay
	CandleOneWeek
	CandleOneMonth
)

const NumCandleResolutions = CandleOneMonth + 1

var resolutionCodes = [NumCandleResolutions]string{"1m", "5m", "15m", "30m", "1h", "1d", "1w", "1M"}

func ParseCandleResolution(s string) (CandleResolution, error) {
	for i, c := range resolutionCodes {
		if c == s {
			return CandleResolution(i), nil
		}
	}
	return CandleOneDay, fmt.Errorf("unknown candle resolution %q", s)
}

func (r CandleResolution) String() string {
	if r < 0 || r >= NumCandleResolutions {
		return "invalid"
	}
	return resolutionCodes[r]
}

// Resolutions are stored as codes in the configuration file.
func (r CandleResolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *CandleResolution) UnmarshalText(b []byte) error {
	p, err := ParseCandleResolution(string(b))
	if err != nil {
		return err
	}
	*r = p
	return nil
}

// FormatString returns the time layout for time axis labels.
func (r CandleResolution) FormatString() string {
	switch r {
	case CandleOneMinute, CandleFiveMinutes, CandleFifteenMinutes, CandleThirtyMinutes, CandleSixtyMinutes:
		return "15:04"
	case CandleOneDay, CandleOneWeek:
		return "02 Jan 06"
	case CandleOneMonth:
		return "Jan 2006"
	default:
		panic("unsupported candle resolution")
	}
}

func (r CandleResolution) GetDuration(context time.Time) time.Duration {
	switch r {
	case CandleOneMinute:
		return time.Minute
	case CandleFiveMinutes:
		return time.Minute * 5
	case CandleFifteenMinutes:
		return time.Minute * 15
	case CandleThirtyMinutes:
		return time.Minute * 30
	case CandleSixtyMinutes:
		return time.Hour
	case CandleOneDay:
		return getDayDuration(context)
	case CandleOneWeek:
		d, _ := getWeekDuration(context)
		return d
	case CandleOneMonth:
		d, _ := getMonthDuration(context)
		return d
	default:
		panic("unsupported candle resolution")
	}
}

// StepSeconds is the nominal duration of one candle, used when no data is
// available to derive the spacing of time values.
func (r CandleResolution) StepSeconds() float64 {
	return r.GetDuration(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)).Seconds()
}

func (r CandleResolution) GetNthCandleTime(t time.Time, n int) time.Time {
	// Get 0th candle time first, so that n = 0 works.
	t = r.getRecentCandleStartTime(t)
	if n < 0 {
		for i := 0; i > n; i-- {
			// Go one second back to the previous interval to get the correct duration.
			t = t.Add(-r.GetDuration(t.Add(-time.Second)))
		}
	}
	for i := 0; i < n; i++ {
		t = t.Add(r.GetDuration(t))
	}
	return t
}

// IsBoundary reports whether a label for t should be emphasized on the time axis,
// e.g. the first candle of a day for intraday resolutions.
func (r CandleResolution) IsBoundary(prev, t time.Time) bool {
	if prev.IsZero() {
		return true
	}
	switch r {
	case CandleOneMonth:
		return prev.Year() != t.Year()
	case CandleOneDay, CandleOneWeek:
		return prev.Month() != t.Month()
	default:
		return prev.YearDay() != t.YearDay() || prev.Year() != t.Year()
	}
}

func (r CandleResolution) getRecentCandleStartTime(t time.Time) time.Time {
	switch r {
	case CandleOneMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	case CandleFiveMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/5*5, 0, 0, t.Location())
	case CandleFifteenMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/15*15, 0, 0, t.Location())
	case CandleThirtyMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/30*30, 0, 0, t.Location())
	case CandleSixtyMinutes:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case CandleOneDay:
		// UTC start of day is the normalised start of day-based candles.
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case CandleOneWeek:
		_, s := getWeekDuration(t)
		return time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	case CandleOneMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		panic("unsupported candle resolution")
	}
}

func getDayDuration(t time.Time) time.Duration {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Sub(
		time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
	)
}

func getWeekDuration(t time.Time) (time.Duration, time.Time) {
	// Candle weeks start on Mondays, Go weeks on Sundays.
	weekdayDiff := int(t.Weekday()) - int(time.Monday)
	if weekdayDiff < 0 {
		weekdayDiff = 7 + weekdayDiff
	}
	y, m, d := t.Date()
	d -= weekdayDiff
	s := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return time.Date(y, m, d+7, 0, 0, 0, 0, t.Location()).Sub(s), s
}

func getMonthDuration(t time.Time) (time.Duration, time.Time) {
	// Use "Sub" call so that daylight saving time is considered.
	y, m, _ := t.Date()
	s := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location()).Sub(s), s
}
