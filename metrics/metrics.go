// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of a chart.
type Metrics struct {
	FramesScheduled prometheus.Counter
	FramesPainted   prometheus.Counter
	// Masks merged into an already scheduled frame.
	MasksCoalesced prometheus.Counter
	// Repainted panes, labels: level
	PanesPainted *prometheus.CounterVec
	FrameDur     prometheus.Histogram

	PersistSaves    prometheus.Counter
	PersistFailures prometheus.Counter
	PersistLoadErrs prometheus.Counter

	FeedBars       prometheus.Counter
	FeedReconnects prometheus.Counter
}

// New creates the metrics and registers them on reg. A nil registerer leaves
// them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_frames_scheduled_total",
			Help: "Total frame callbacks requested",
		}),
		FramesPainted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_frames_painted_total",
			Help: "Total frames processed",
		}),
		MasksCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_masks_coalesced_total",
			Help: "Invalidation masks merged into a pending frame",
		}),
		PanesPainted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maycharts_panes_painted_total",
			Help: "Total pane repaints (by invalidation level)",
		}, []string{"level"}),
		FrameDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maycharts_frame_duration_seconds",
			Help:    "Time spent processing one frame",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.004, 0.008, 0.016, 0.033, 0.1},
		}),
		PersistSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_annotation_saves_total",
			Help: "Annotation snapshots saved",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_annotation_save_failures_total",
			Help: "Annotation snapshots which could not be saved",
		}),
		PersistLoadErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_annotation_load_failures_total",
			Help: "Annotation loads which failed",
		}),
		FeedBars: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_feed_bars_total",
			Help: "Bars received from the live feed",
		}),
		FeedReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maycharts_feed_reconnects_total",
			Help: "Live feed reconnection attempts",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.FramesScheduled,
			m.FramesPainted,
			m.MasksCoalesced,
			m.PanesPainted,
			m.FrameDur,
			m.PersistSaves,
			m.PersistFailures,
			m.PersistLoadErrs,
			m.FeedBars,
			m.FeedReconnects,
		)
	}
	return m
}
