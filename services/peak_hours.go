package services

import (
	"sort"

	"shop-queue/models"
)

// Number of hours surfaced in the peak/quiet rankings.
const rankedHourCount = 8

// Staffing reason strings surfaced on the dashboard.
const (
	reasonHighVolume   = "High volume"
	reasonNormalVolume = "Normal volume"
)

// AnalyzePeakHours buckets records by created-at hour of day across the full
// range, regardless of date. Ties in the rankings break on hour ascending so
// repeated calls over the same data produce identical output.
func AnalyzePeakHours(shopID string, records []models.QueueRecord, rng models.DateRange, staffThreshold int) models.PeakHoursSnapshot {
	type bucket struct {
		count     int
		completed int
		waitSum   int
		waitCount int
	}
	var buckets [24]bucket

	for _, record := range records {
		hour := record.CreatedAt.Hour()
		buckets[hour].count++
		if record.Status == models.QueueStatusCompleted {
			buckets[hour].completed++
		}
		if record.ActualWaitTime > 0 {
			buckets[hour].waitSum += record.ActualWaitTime
			buckets[hour].waitCount++
		}
	}

	hourly := make([]models.HourlyStats, 24)
	staffing := make([]models.StaffingSuggestion, 24)
	for hour := 0; hour < 24; hour++ {
		b := buckets[hour]
		stats := models.HourlyStats{
			Hour:           hour,
			QueueCount:     b.count,
			CompletionRate: percentage(b.completed, b.count),
		}
		if b.waitCount > 0 {
			stats.AverageWaitTime = roundHalfUp(float64(b.waitSum) / float64(b.waitCount))
		}
		hourly[hour] = stats

		suggestion := models.StaffingSuggestion{Hour: hour, RecommendedEmployees: 1, Reason: reasonNormalVolume}
		if b.count > staffThreshold {
			suggestion.RecommendedEmployees = 2
			suggestion.Reason = reasonHighVolume
		}
		staffing[hour] = suggestion
	}

	return models.PeakHoursSnapshot{
		ShopID:      shopID,
		DateRange:   rng,
		HourlyStats: hourly,
		PeakHours:   rankHours(hourly, true),
		QuietHours:  rankHours(hourly, false),
		Staffing:    staffing,
	}
}

// rankHours returns the top rankedHourCount buckets by queue count,
// descending when busiest is true, ascending otherwise.
func rankHours(hourly []models.HourlyStats, busiest bool) []models.HourlyStats {
	ranked := make([]models.HourlyStats, len(hourly))
	copy(ranked, hourly)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].QueueCount != ranked[j].QueueCount {
			if busiest {
				return ranked[i].QueueCount > ranked[j].QueueCount
			}
			return ranked[i].QueueCount < ranked[j].QueueCount
		}
		return ranked[i].Hour < ranked[j].Hour
	})

	if len(ranked) > rankedHourCount {
		ranked = ranked[:rankedHourCount]
	}
	return ranked
}
