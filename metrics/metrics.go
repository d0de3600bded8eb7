package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Prometheus metrics
	ticksProcessedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticks_processed_total",
		Help: "The total number of ticks fed into bar construction",
	})

	barsBuiltMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bars_built_total",
		Help: "The total number of bars emitted",
	})

	errorCountMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bar_build_errors_total",
		Help: "Total number of failed bar-construction calls",
	})

	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bar_build_seconds",
		Help:    "Time spent building bars per call",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"kind"})

	// Internal counters
	ticksProcessed uint64
	barsBuilt      uint64
	errorCount     uint64
	lastBuild      time.Time
	startTime      = time.Now()
)

func AddTicksProcessed(n int) {
	atomic.AddUint64(&ticksProcessed, uint64(n))
	ticksProcessedMetric.Add(float64(n))
}

func AddBarsBuilt(n int) {
	atomic.AddUint64(&barsBuilt, uint64(n))
	barsBuiltMetric.Add(float64(n))
	lastBuild = time.Now()
}

func IncrementErrors() {
	atomic.AddUint64(&errorCount, 1)
	errorCountMetric.Inc()
}

func RecordBuildDuration(kind string, duration time.Duration) {
	buildDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func GetStats() (uint64, uint64, uint64, time.Time, time.Duration) {
	return atomic.LoadUint64(&ticksProcessed),
		atomic.LoadUint64(&barsBuilt),
		atomic.LoadUint64(&errorCount),
		lastBuild,
		time.Since(startTime)
}
