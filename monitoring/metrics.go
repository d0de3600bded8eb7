package monitoring

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Storage latency
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clickhouse_query_duration_seconds",
		Help:    "Time taken for ClickHouse queries",
		Buckets: prometheus.LinearBuckets(0.01, 0.05, 10),
	}, []string{"query_type"})

	// Error rates
	ErrorCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bar_builder_errors_total",
		Help: "Total number of errors by type",
	}, []string{"type"})

	// System resources
	MemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bar_builder_memory_bytes",
		Help: "Current memory usage in bytes",
	})

	GoroutineCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bar_builder_goroutines",
		Help: "Current number of goroutines",
	})

	InsertBatchSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bar_builder_insert_batch_size",
		Help: "Size of the last bar batch sent to storage",
	})
)

// Start collecting system metrics
func StartMetricsCollection() {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			collectSystemMetrics()
		}
	}()
}

func collectSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	MemoryUsage.Set(float64(m.Alloc))
	GoroutineCount.Set(float64(runtime.NumGoroutine()))
}
