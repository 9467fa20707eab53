package services

import (
	"fmt"

	"shop-queue/models"
)

// Bottleneck rule thresholds.
const (
	waitSpikeFactor        = 1.5
	overloadQueueThreshold = 5
	lowCompletionThreshold = 70
)

// DetectBottlenecks applies the fixed operational rules to a snapshot plus
// the per-record and per-employee data it was derived from. Each triggered
// rule yields exactly one entry; an empty result is the normal case.
func DetectBottlenecks(snapshot models.AnalyticsSnapshot, records []models.QueueRecord, employees []models.EmployeeRecord) []models.Bottleneck {
	bottlenecks := []models.Bottleneck{}

	// Records waiting far beyond the average point at intake problems. The
	// rule is skipped entirely when no wait data exists, so an all-zero set
	// can never trip it.
	if snapshot.AverageWaitTime > 0 {
		spiked := 0
		threshold := waitSpikeFactor * float64(snapshot.AverageWaitTime)
		for _, record := range records {
			if float64(record.ActualWaitTime) > threshold {
				spiked++
			}
		}
		if spiked > 0 {
			bottlenecks = append(bottlenecks, models.Bottleneck{
				Type:          models.BottleneckHighWaitTime,
				Severity:      models.SeverityHigh,
				Description:   fmt.Sprintf("%d queues waited more than %.1fx the average wait time", spiked, waitSpikeFactor),
				AffectedCount: spiked,
			})
		}
	}

	overloaded := 0
	for _, employee := range employees {
		if employee.ActiveQueueCount > overloadQueueThreshold {
			overloaded++
		}
	}
	if overloaded > 0 {
		bottlenecks = append(bottlenecks, models.Bottleneck{
			Type:          models.BottleneckEmployeeOverload,
			Severity:      models.SeverityMedium,
			Description:   fmt.Sprintf("%d employees carry more than %d active queues", overloaded, overloadQueueThreshold),
			AffectedCount: overloaded,
		})
	}

	if snapshot.TotalQueues > 0 && snapshot.CompletionRate < lowCompletionThreshold {
		bottlenecks = append(bottlenecks, models.Bottleneck{
			Type:          models.BottleneckLowCompletionRate,
			Severity:      models.SeverityMedium,
			Description:   fmt.Sprintf("completion rate is %d%%, below the %d%% threshold", snapshot.CompletionRate, lowCompletionThreshold),
			AffectedCount: snapshot.TotalQueues - snapshot.CompletedQueues,
		})
	}

	return bottlenecks
}
