// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package sourceview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeResolved = "resolved"
	outcomeStale    = "stale"
	outcomeFailed   = "failed"
)

var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatehouse_source_resolutions_total",
		Help: "Source resolution attempts by outcome.",
	}, []string{"outcome"})

	unknownKindsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatehouse_source_unknown_kinds_total",
		Help: "Resolved descriptors whose kind had no registered renderer.",
	})

	openViews = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gatehouse_source_views_open",
		Help: "Source view sessions currently open.",
	})
)
