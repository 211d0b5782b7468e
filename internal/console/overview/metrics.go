// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package overview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCollected = "collected"
	outcomeFailed    = "failed"
)

var (
	collectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatehouse_overview_collections_total",
		Help: "Overview collection runs by outcome.",
	}, []string{"outcome"})

	sourcesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gatehouse_directory_sources",
		Help: "Sources known to the directory, by kind, as of the last collection.",
	}, []string{"kind"})
)
