// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package candles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestGetMonthDuration(t *testing.T) {
	// December has 31 days
	d, _ := getMonthDuration(time.Date(2022, 12, 24, 10, 10, 10, 0, time.UTC))
	assert.Equal(t, float64(44640), d.Minutes())
	d, _ = getMonthDuration(time.Date(2022, 6, 24, 10, 10, 10, 0, time.UTC))
	assert.Equal(t, float64(43200), d.Minutes())
}

func TestGetDayDurationDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	assert.NoError(t, err)
	d := getDayDuration(time.Date(2022, 10, 30, 10, 10, 10, 0, loc))
	assert.Equal(t, float64(1500), d.Minutes())
}

func TestGetNthCandleTime(t *testing.T) {
	r := CandleOneMonth
	d := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, r.GetNthCandleTime(d, 1).Equal(time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.GetNthCandleTime(d, -12).Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
	r = CandleOneWeek
	assert.True(t, r.GetNthCandleTime(time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC), 0).Equal(time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)))
}

func TestStepSeconds(t *testing.T) {
	assert.Equal(t, 60.0, CandleOneMinute.StepSeconds())
	assert.Equal(t, 86400.0, CandleOneDay.StepSeconds())
}

func TestResolutionYaml(t *testing.T) {
	var v struct {
		Resolution CandleResolution
	}
	err := yaml.Unmarshal([]byte("resolution: 15m\n"), &v)
	assert.NoError(t, err)
	assert.Equal(t, CandleFifteenMinutes, v.Resolution)

	out, err := yaml.Marshal(&v)
	assert.NoError(t, err)
	assert.Equal(t, "resolution: 15m\n", string(out))

	err = yaml.Unmarshal([]byte("resolution: 2h\n"), &v)
	assert.Error(t, err)
}

func TestIsBoundary(t *testing.T) {
	a := time.Date(2022, 1, 3, 23, 0, 0, 0, time.UTC)
	b := time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC)
	assert.True(t, CandleSixtyMinutes.IsBoundary(a, b))
	assert.False(t, CandleSixtyMinutes.IsBoundary(b, b.Add(time.Hour)))
	assert.True(t, CandleOneDay.IsBoundary(time.Time{}, b))
}
