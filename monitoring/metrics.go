package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	analyticsComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_computations_total",
			Help: "Snapshot computations per shop, period and source",
		},
		[]string{"shop_id", "period", "source"},
	)

	computationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_computation_duration_seconds",
			Help:    "Duration of analytics use case executions",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"operation"},
	)

	cacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_operations_total",
			Help: "Cache lookups per shop and outcome",
		},
		[]string{"shop_id", "outcome"},
	)

	bottlenecksDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_bottlenecks_detected_total",
			Help: "Bottlenecks flagged per shop and type",
		},
		[]string{"shop_id", "type"},
	)

	recommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_recommendations_generated_total",
			Help: "Recommendations emitted per shop and priority",
		},
		[]string{"shop_id", "priority"},
	)

	cachedSnapshots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analytics_cached_snapshots",
			Help: "Snapshot entries currently held in the cache",
		},
	)
)

// Monitor polls Redis for cache-level gauges and offers the Track helpers
// the analytics service calls on each computation.
type Monitor struct {
	redis *redis.Client
}

func NewMonitor(redisClient *redis.Client) *Monitor {
	monitor := &Monitor{redis: redisClient}

	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()

		keys, err := m.redis.Keys(ctx, "analytics:*").Result()
		if err != nil {
			continue
		}
		cachedSnapshots.Set(float64(len(keys)))
	}
}

// TrackComputation records one snapshot computation. source is "cache",
// "computed" or "fallback".
func (m *Monitor) TrackComputation(shopID, period, source string) {
	analyticsComputations.WithLabelValues(shopID, period, source).Inc()
}

// TrackCache records a cache lookup outcome ("hit" or "miss").
func (m *Monitor) TrackCache(shopID, outcome string) {
	cacheOperations.WithLabelValues(shopID, outcome).Inc()
}

// TrackBottleneck records one flagged bottleneck.
func (m *Monitor) TrackBottleneck(shopID, bottleneckType string) {
	bottlenecksDetected.WithLabelValues(shopID, bottleneckType).Inc()
}

// TrackRecommendation records one emitted recommendation.
func (m *Monitor) TrackRecommendation(shopID, priority string) {
	recommendationsGenerated.WithLabelValues(shopID, priority).Inc()
}

// TrackDuration records one use case execution time.
func (m *Monitor) TrackDuration(operation string, d time.Duration) {
	computationDuration.WithLabelValues(operation).Observe(d.Seconds())
}
