package render

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lixenwraith/glyphgrid/parameter"
)

var (
	metricFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: parameter.MetricsNamespace,
		Name:      "flushes_total",
		Help:      "Frame buffer flushes that wrote a damage rectangle.",
	})
	metricCellsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: parameter.MetricsNamespace,
		Name:      "cells_emitted_total",
		Help:      "Cells written to output devices.",
	})
	metricFlushErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: parameter.MetricsNamespace,
		Name:      "flush_errors_total",
		Help:      "Flushes rejected by the output device.",
	})
	metricResizes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: parameter.MetricsNamespace,
		Name:      "resizes_total",
		Help:      "Frame buffer reallocations.",
	})
	metricPresentSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: parameter.MetricsNamespace,
		Name:      "present_duration_seconds",
		Help:      "Time spent in Renderer.Present.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
)

// Collectors lists the render metrics, already registered with the default registry
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		metricFlushes,
		metricCellsEmitted,
		metricFlushErrors,
		metricResizes,
		metricPresentSeconds,
	}
}
