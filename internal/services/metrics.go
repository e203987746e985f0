package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type recommendationMetrics struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	catalogSongs  prometheus.Gauge
	catalogGenres prometheus.Gauge
	reloadsTotal  *prometheus.CounterVec
	liveLookups   *prometheus.CounterVec
}

func newRecommendationMetrics(logger *logrus.Logger) *recommendationMetrics {
	return &recommendationMetrics{
		queriesTotal: register(logger, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "songmatch_queries_total",
			Help: "Recommendation queries by mode and outcome",
		}, []string{"mode", "outcome"})),
		queryDuration: register(logger, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "songmatch_query_duration_seconds",
			Help:    "Recommendation query latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"mode"})),
		catalogSongs: register(logger, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "songmatch_catalog_songs",
			Help: "Songs in the active feature space",
		})),
		catalogGenres: register(logger, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "songmatch_catalog_genres",
			Help: "Distinct genres in the active feature space",
		})),
		reloadsTotal: register(logger, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "songmatch_catalog_reloads_total",
			Help: "Catalog reloads by outcome",
		}, []string{"outcome"})),
		liveLookups: register(logger, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "songmatch_live_lookups_total",
			Help: "Live track lookups by outcome",
		}, []string{"outcome"})),
	}
}

// register adds c to the default registry. When an identical collector is
// already registered the existing one is returned so repeated construction
// keeps reporting into the same series.
func register[T prometheus.Collector](logger *logrus.Logger, c T) T {
	if err := prometheus.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
			return c
		}
		logger.WithError(err).Warn("Failed to register metric")
	}
	return c
}
