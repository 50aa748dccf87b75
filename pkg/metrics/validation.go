// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"
	"strconv"

	"github.com/gardener/docnav/pkg/httpclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const validationSubsystem = "link_validation"

var (
	validationInFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: validationSubsystem,
		Name:      "in_flight_requests",
		Help:      "External sidebar link checks currently in flight.",
	})

	validationRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: validationSubsystem,
		Name:      "requests_total",
		Help:      "External sidebar link check requests by status code and method.",
	},
		[]string{"code", "method"},
	)

	validationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: validationSubsystem,
		Name:      "request_duration_seconds",
		Help:      "Latency of external sidebar link check requests.",
		Buckets:   prometheus.DefBuckets,
	},
		[]string{"method"},
	)

	// cached is "true" for responses served from the disk cache
	validationResponsesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: validationSubsystem,
		Name:      "responses_total",
		Help:      "External sidebar link check responses by cache origin.",
	},
		[]string{"cached"},
	)
)

// RegisterValidationMetrics registers the link validation metrics in registry or in the standard registry if nil
func RegisterValidationMetrics(registry prometheus.Registerer) {
	ResetValidationMetrics()
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(validationInFlightGauge, validationRequestsCounter, validationDuration, validationResponsesCounter)
}

// ResetValidationMetrics resets the link validation metrics
func ResetValidationMetrics() {
	validationInFlightGauge.Set(0)
	validationRequestsCounter.Reset()
	validationDuration.Reset()
	validationResponsesCounter.Reset()
}

// InstrumentValidationClient wraps the transport of the link validation client
// with metering middleware. The cache origin is observed on top of the transport,
// so the client may wrap an httpcache transport.
func InstrumentValidationClient(client *http.Client) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	observeCache := promhttp.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := base.RoundTrip(req)
		if err == nil {
			validationResponsesCounter.WithLabelValues(strconv.FormatBool(httpclient.IsCached(resp))).Inc()
		}
		return resp, err
	})
	client.Transport = promhttp.InstrumentRoundTripperInFlight(validationInFlightGauge,
		promhttp.InstrumentRoundTripperCounter(validationRequestsCounter,
			promhttp.InstrumentRoundTripperDuration(validationDuration, observeCache),
		),
	)
	return client
}

// Handler serves the metrics of the standard registry
func Handler() http.Handler {
	return promhttp.Handler()
}
