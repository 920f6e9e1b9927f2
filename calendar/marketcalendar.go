// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

const observedSuffix = " (observed)"

type clockTime struct {
	hours   int
	minutes int
}

// MarketCalendar knows the trading days and regular sessions of an exchange.
type MarketCalendar struct {
	loc          *time.Location
	business     *cal.BusinessCalendar
	open         clockTime
	close        clockTime
	partialClose clockTime
	preMarket    time.Duration
	afterHours   time.Duration
}

// Session is the trading time of one day.
type Session struct {
	Open     time.Time
	Close    time.Time
	PreOpen  time.Time
	ExtClose time.Time
	Partial  bool
}

// Contains reports whether t is within regular trading hours.
func (s Session) Contains(t time.Time) bool {
	return !t.Before(s.Open) && t.Before(s.Close)
}

func NewNYSECalendar() MarketCalendar {
	// ET switches between EST and EDT outside of market hours only.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("NYSE time location not supported")
	}
	b := cal.NewBusinessCalendar()
	// https://www.federalreserve.gov/aboutthefed/k8.htm
	b.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	b.Cacheable = true
	return MarketCalendar{
		loc:          loc,
		business:     b,
		open:         clockTime{hours: 9, minutes: 30},
		close:        clockTime{hours: 16},
		partialClose: clockTime{hours: 13},
		preMarket:    5*time.Hour + 30*time.Minute,
		afterHours:   4 * time.Hour,
	}
}

func (c MarketCalendar) Location() *time.Location {
	return c.loc
}

// Holiday returns the name of the holiday at t, if any.
func (c MarketCalendar) Holiday(t time.Time) (string, bool) {
	actual, observed, h := c.business.IsHoliday(t.In(c.loc))
	switch {
	case actual:
		return h.Name, true
	case observed:
		return h.Name + observedSuffix, true
	}
	return "", false
}

// IsTradingDay also reports shortened days before Independence Day and
// Christmas and after Thanksgiving.
func (c MarketCalendar) IsTradingDay(t time.Time) (trading, partial bool) {
	day := t.In(c.loc)
	if !c.business.IsWorkday(day) {
		return false, false
	}
	if name, ok := c.Holiday(day.AddDate(0, 0, 1)); ok && (name == us.IndependenceDay.Name || name == us.ChristmasDay.Name) {
		return true, true
	}
	if name, ok := c.Holiday(day.AddDate(0, 0, -1)); ok && name == us.ThanksgivingDay.Name {
		return true, true
	}
	return true, false
}

func (c MarketCalendar) at(y int, m time.Month, d int, ct clockTime) time.Time {
	return time.Date(y, m, d, ct.hours, ct.minutes, 0, 0, c.loc)
}

// Session returns the trading session of the day of t.
func (c MarketCalendar) Session(t time.Time) (Session, bool) {
	day := t.In(c.loc)
	trading, partial := c.IsTradingDay(day)
	if !trading {
		return Session{}, false
	}
	y, m, d := day.Date()
	s := Session{Open: c.at(y, m, d, c.open), Partial: partial}
	if partial {
		s.Close = c.at(y, m, d, c.partialClose)
	} else {
		s.Close = c.at(y, m, d, c.close)
	}
	s.PreOpen = s.Open.Add(-c.preMarket)
	s.ExtClose = s.Close.Add(c.afterHours)
	return s, true
}
