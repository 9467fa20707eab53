package services

import (
	"time"

	"github.com/shopspring/decimal"

	"shop-queue/models"
)

// Canonical zero-value results substituted when a sub-computation fails or
// times out. Consumers always receive a structurally complete summary, so
// every slice here is empty rather than nil and every bucket is present.

// DefaultSnapshot returns an all-zero snapshot for the shop and range.
func DefaultSnapshot(shopID string, rng models.DateRange) models.AnalyticsSnapshot {
	return models.AnalyticsSnapshot{
		ShopID:     shopID,
		DateRange:  rng,
		ComputedAt: time.Now(),
	}
}

// DefaultPeakHours returns 24 empty hour buckets with no rankings.
func DefaultPeakHours(shopID string, rng models.DateRange) models.PeakHoursSnapshot {
	hourly := make([]models.HourlyStats, 24)
	for hour := range hourly {
		hourly[hour] = models.HourlyStats{Hour: hour}
	}
	return models.PeakHoursSnapshot{
		ShopID:      shopID,
		DateRange:   rng,
		HourlyStats: hourly,
		PeakHours:   []models.HourlyStats{},
		QuietHours:  []models.HourlyStats{},
		Staffing:    []models.StaffingSuggestion{},
	}
}

// DefaultServiceAnalytics returns an empty per-service block.
func DefaultServiceAnalytics(shopID string, rng models.DateRange) models.ServiceAnalytics {
	return models.ServiceAnalytics{
		ShopID:         shopID,
		DateRange:      rng,
		Services:       []models.ServiceStats{},
		TopServices:    []models.ServiceStats{},
		BottomServices: []models.ServiceStats{},
	}
}

// DefaultOptimizationMetrics returns zeroed projections that still carry the
// configured target so dashboards render a meaningful goal line.
func DefaultOptimizationMetrics(targetEfficiency float64) models.OptimizationMetrics {
	return models.OptimizationMetrics{
		TargetEfficiency:         targetEfficiency,
		CurrentRevenue:           decimal.Zero,
		PotentialRevenue:         decimal.Zero,
		PotentialRevenueIncrease: decimal.Zero,
	}
}
