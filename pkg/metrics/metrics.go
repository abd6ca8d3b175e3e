package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "errorpages"

	metricLabelCode   = "code"
	metricLabelResult = "result"
	metricLabelStatus = "status"
	metricLabelRoute  = "route"
	metricLabelLocale = "locale"
)

// Metrics is the structure that holds all prometheus metrics
var (
	// RenderCounter counts rendered pages by status code and whether the localized title won
	RenderCounter = newCounterVec(
		"render_count",
		"Count of rendered error pages",
		metricLabelCode, metricLabelResult,
	)
	// BundleFetchCounter counts localization bundle fetches
	BundleFetchCounter = newCounterVec(
		"bundle_fetch_count",
		"Count of localization bundle fetches",
		metricLabelStatus,
	)
	// BundleFetchDuration observe the duration of bundle fetches
	BundleFetchDuration = newSummaryVec(
		"bundle_fetch_duration_seconds",
		"Seconds to fetch and decode a localization bundle",
		metricLabelStatus,
	)
	// RequestCounter count the number of requests for each route
	RequestCounter = newCounterVec(
		"request_count",
		"Count of requests for each route",
		metricLabelRoute, metricLabelStatus,
	)
	// StringsRequestCounter count the served string bundles per locale
	StringsRequestCounter = newCounterVec(
		"strings_request_count",
		"Number of served string bundles",
		metricLabelLocale,
	)
	// GeneratedPagesCounter count the pages written by the generator
	GeneratedPagesCounter = newCounterVec(
		"generated_pages_count",
		"Number of error pages written to storage",
		metricLabelResult,
	)
)

func newSummaryVec(name, help string, labels ...string) *prometheus.SummaryVec {
	vec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}
