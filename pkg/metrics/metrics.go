// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes all metrics
const Namespace = "docnav"

const (
	// ResultSuccess labels successful builds
	ResultSuccess = "success"
	// ResultConfigError labels builds failing on the site configuration
	ResultConfigError = "config_error"
	// ResultBrokenLinks labels builds failing on unresolved sidebar links
	ResultBrokenLinks = "broken_links"
	// ResultError labels builds failing for any other reason
	ResultError = "error"
)

var (
	buildsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "builds_total",
		Help:      "A counter for site builds by result.",
	},
		[]string{"result"},
	)

	buildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "build_duration_seconds",
		Help:      "A histogram of site build durations.",
		Buckets:   prometheus.DefBuckets,
	})

	pagesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "pages",
		Help:      "Number of pages written by the last build.",
	})

	brokenLinksGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "broken_links",
		Help:      "Number of broken sidebar links found by the last build.",
	})
)

// RegisterBuildMetrics registers the build metrics in registry or in the standard registry if nil
func RegisterBuildMetrics(registry prometheus.Registerer) {
	ResetBuildMetrics()
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(buildsCounter, buildDuration, pagesGauge, brokenLinksGauge)
}

// ResetBuildMetrics resets the build metrics
func ResetBuildMetrics() {
	buildsCounter.Reset()
	pagesGauge.Set(0)
	brokenLinksGauge.Set(0)
}

// Build is the outcome of a site build
type Build struct {
	Start       time.Time
	Pages       int
	BrokenLinks int
	// Result is one of the Result constants
	Result string
}

// ObserveBuild records the outcome of a site build
func ObserveBuild(b Build) {
	buildsCounter.WithLabelValues(b.Result).Inc()
	buildDuration.Observe(time.Since(b.Start).Seconds())
	pagesGauge.Set(float64(b.Pages))
	brokenLinksGauge.Set(float64(b.BrokenLinks))
}
