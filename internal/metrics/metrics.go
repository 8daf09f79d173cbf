// Package metrics holds the Prometheus collectors exported by the paste service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PastesCreated counts pastes stored successfully.
	PastesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebin_pastes_created_total",
		Help: "no. of pastes created",
	})
	// PastesRetrieved counts reads that returned a live paste.
	PastesRetrieved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebin_pastes_retrieved_total",
		Help: "no. of live pastes served",
	})
	// IDCollisions counts inserts rejected because the identifier was taken.
	IDCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebin_id_collisions_total",
		Help: "no. of identifier collisions retried",
	})
	// CacheHits counts reads served from a paste cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebin_cache_hits_total",
		Help: "no. of cache hits",
	})
	// CacheMisses counts reads that fell through to the primary store.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebin_cache_misses_total",
		Help: "no. of cache misses",
	})
	// PurgeCycles counts purge passes, successful or not.
	PurgeCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebin_purge_cycles_total",
		Help: "no. of purge worker cycles",
	})
	// PastesPurged counts expired pastes deleted by the purge worker.
	PastesPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pastebin_pastes_purged_total",
		Help: "no. of expired pastes removed by the purge worker",
	})
	// RequestDuration observes HTTP latency by method, matched route and status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pastebin_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
