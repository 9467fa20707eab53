package services

import (
	"github.com/shopspring/decimal"

	"shop-queue/config"
	"shop-queue/models"
)

// ComputeOptimizationMetrics projects the efficiency gap and revenue upside
// from the snapshot's completion rate against the configured target. The
// flat per-service price and implementation cost come from config, not from
// per-service data; the projection is a planning figure, not an invoice.
func ComputeOptimizationMetrics(snapshot models.AnalyticsSnapshot, cfg *config.Config) models.OptimizationMetrics {
	current := float64(snapshot.CompletionRate) / 100
	target := cfg.TargetEfficiency

	improvement := 0
	if current > 0 && target > current {
		improvement = roundHalfUp((target - current) / current * 100)
	}

	price := decimal.NewFromFloat(cfg.AverageServicePrice)
	currentRevenue := price.Mul(decimal.NewFromInt(int64(snapshot.CompletedQueues)))
	potentialRevenue := price.
		Mul(decimal.NewFromInt(int64(snapshot.TotalQueues))).
		Mul(decimal.NewFromFloat(target))

	increase := potentialRevenue.Sub(currentRevenue)
	if increase.IsNegative() {
		increase = decimal.Zero
	}

	roi := 0
	if cfg.ImplementationCost > 0 {
		cost := decimal.NewFromFloat(cfg.ImplementationCost)
		roi = int(increase.Div(cost).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}

	return models.OptimizationMetrics{
		CurrentEfficiency:        current,
		TargetEfficiency:         target,
		PotentialImprovement:     improvement,
		CurrentRevenue:           currentRevenue,
		PotentialRevenue:         potentialRevenue,
		PotentialRevenueIncrease: increase,
		ROIPercentage:            roi,
	}
}
