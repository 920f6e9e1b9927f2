// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package metrics

import (
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.FramesPainted.Inc()
	m.PanesPainted.WithLabelValues("light").Inc()
	assert.Equal(t, 1., testutil.ToFloat64(m.FramesPainted))
	n, err := testutil.GatherAndCount(reg, "maycharts_frames_painted_total", "maycharts_panes_painted_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewWithoutRegistry(t *testing.T) {
	m := New(nil)
	m.FeedBars.Inc()
	assert.Equal(t, 1., testutil.ToFloat64(m.FeedBars))
}

func TestServerHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.FeedReconnects.Inc()
	s := NewServer("localhost:0", reg, log.Default())
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "maycharts_feed_reconnects_total 1"))
}
