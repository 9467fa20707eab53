package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"shop-queue/models"
)

// Number of services surfaced in the top/bottom rankings.
const rankedServiceCount = 10

// Popularity score weights. The blend is additive with non-negative weights
// (and an inverted wait term), so more volume, completions or revenue and
// less waiting can only raise the score.
const (
	popularityVolumeWeight     = 0.5
	popularityCompletionWeight = 0.3
	popularityRevenueWeight    = 0.15
	popularityWaitWeight       = 0.05
	popularityWaitCeiling      = 60 // minutes; waits at or above this score 0
)

// AnalyzeServicePopularity expands every record's line items and groups them
// by service. A record counts once per service no matter how many of its
// line items reference that service; revenue sums every occurrence.
func AnalyzeServicePopularity(shopID string, records []models.QueueRecord, rng models.DateRange) models.ServiceAnalytics {
	type serviceAcc struct {
		name         string
		total        int
		completed    int
		waitSum      int
		waitCount    int
		serviceSum   int
		serviceCount int
		revenue      decimal.Decimal
	}
	accs := map[string]*serviceAcc{}

	for _, record := range records {
		seen := map[string]bool{}
		for _, item := range record.LineItems {
			acc, ok := accs[item.ServiceID]
			if !ok {
				acc = &serviceAcc{name: item.ServiceName, revenue: decimal.Zero}
				accs[item.ServiceID] = acc
			}

			acc.revenue = acc.revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))

			if seen[item.ServiceID] {
				continue
			}
			seen[item.ServiceID] = true

			acc.total++
			if record.Status == models.QueueStatusCompleted {
				acc.completed++
			}
			if record.ActualWaitTime > 0 {
				acc.waitSum += record.ActualWaitTime
				acc.waitCount++
			}
			if mins := record.ServiceMinutes(); mins > 0 {
				acc.serviceSum += mins
				acc.serviceCount++
			}
		}
	}

	services := make([]models.ServiceStats, 0, len(accs))
	for serviceID, acc := range accs {
		stats := models.ServiceStats{
			ServiceID:       serviceID,
			ServiceName:     acc.name,
			TotalQueues:     acc.total,
			CompletedQueues: acc.completed,
			Revenue:         acc.revenue,
		}
		if acc.waitCount > 0 {
			stats.AverageWaitTime = roundHalfUp(float64(acc.waitSum) / float64(acc.waitCount))
		}
		if acc.serviceCount > 0 {
			stats.AverageServiceTime = roundHalfUp(float64(acc.serviceSum) / float64(acc.serviceCount))
		}
		stats.PopularityScore = popularityScore(stats)
		services = append(services, stats)
	}

	sort.Slice(services, func(i, j int) bool {
		if services[i].TotalQueues != services[j].TotalQueues {
			return services[i].TotalQueues > services[j].TotalQueues
		}
		return services[i].ServiceID < services[j].ServiceID
	})

	return models.ServiceAnalytics{
		ShopID:         shopID,
		DateRange:      rng,
		Services:       services,
		TopServices:    headServices(services),
		BottomServices: tailServices(services),
	}
}

func popularityScore(stats models.ServiceStats) float64 {
	revenue, _ := stats.Revenue.Float64()

	waitScore := float64(popularityWaitCeiling - stats.AverageWaitTime)
	if waitScore < 0 {
		waitScore = 0
	}

	return popularityVolumeWeight*float64(stats.TotalQueues) +
		popularityCompletionWeight*float64(stats.CompletedQueues) +
		popularityRevenueWeight*revenue +
		popularityWaitWeight*waitScore
}

func headServices(sorted []models.ServiceStats) []models.ServiceStats {
	n := len(sorted)
	if n > rankedServiceCount {
		n = rankedServiceCount
	}
	top := make([]models.ServiceStats, n)
	copy(top, sorted[:n])
	return top
}

func tailServices(sorted []models.ServiceStats) []models.ServiceStats {
	n := len(sorted)
	if n > rankedServiceCount {
		n = rankedServiceCount
	}
	bottom := make([]models.ServiceStats, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		bottom = append(bottom, sorted[i])
	}
	return bottom
}
