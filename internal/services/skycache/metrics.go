package skycache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit  = "hit"
	resultMiss = "miss"

	statusOK    = "ok"
	statusError = "error"

	reasonSweep      = "sweep"
	reasonInvalidate = "invalidate"
)

var (
	// обращения к кэшу по уровням
	cacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astro_cache_requests_total",
			Help: "Cache lookups by store and result (hit/miss)",
		},
		[]string{"store", "result"},
	)

	// вызовы платного провайдера
	upstreamFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astro_cache_upstream_fetches_total",
			Help: "Upstream provider calls made on cache misses",
		},
		[]string{"store", "status"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "astro_cache_upstream_fetch_duration_seconds",
			Help:    "Upstream provider call duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"store"},
	)

	cacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astro_cache_evictions_total",
			Help: "Entries removed from the cache by sweep or invalidation",
		},
		[]string{"store", "reason"},
	)

	cacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "astro_cache_entries",
			Help: "Current number of entries per store",
		},
		[]string{"store"},
	)
)
