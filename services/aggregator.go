package services

import (
	"math"
	"time"

	"shop-queue/models"
)

// roundHalfUp rounds a non-negative value to the nearest integer, halves up.
// All percentage and minute fields in the snapshots use this rounding.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// percentage returns round(part/total*100), or 0 when total is 0.
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(total) * 100)
}

// AggregateQueueRecords reduces one shop's records over a range into a
// single snapshot. Records with a status outside the known enum are ignored
// entirely. The record set may be empty; every derived field is then 0
// rather than NaN.
func AggregateQueueRecords(shopID string, records []models.QueueRecord, rng models.DateRange) models.AnalyticsSnapshot {
	snapshot := models.AnalyticsSnapshot{
		ShopID:     shopID,
		DateRange:  rng,
		ComputedAt: time.Now(),
	}

	waitSum, waitCount := 0, 0
	serviceSum, serviceCount := 0, 0

	for _, record := range records {
		switch record.Status {
		case models.QueueStatusCompleted:
			snapshot.CompletedQueues++
		case models.QueueStatusCancelled:
			snapshot.CancelledQueues++
		case models.QueueStatusNoShow:
			snapshot.NoShowQueues++
		case models.QueueStatusInProgress:
			snapshot.InProgressQueues++
		case models.QueueStatusWaiting:
			snapshot.WaitingQueues++
		default:
			// Unknown statuses stay out of the total so the five status
			// buckets always sum to it.
			continue
		}
		snapshot.TotalQueues++

		if record.ActualWaitTime > 0 {
			waitSum += record.ActualWaitTime
			waitCount++
		}
		if mins := record.ServiceMinutes(); mins > 0 {
			serviceSum += mins
			serviceCount++
		}
	}

	if waitCount > 0 {
		snapshot.AverageWaitTime = roundHalfUp(float64(waitSum) / float64(waitCount))
	}
	if serviceCount > 0 {
		snapshot.AverageServiceTime = roundHalfUp(float64(serviceSum) / float64(serviceCount))
	}

	snapshot.CompletionRate = percentage(snapshot.CompletedQueues, snapshot.TotalQueues)
	snapshot.CancellationRate = percentage(snapshot.CancelledQueues, snapshot.TotalQueues)
	snapshot.NoShowRate = percentage(snapshot.NoShowQueues, snapshot.TotalQueues)

	return snapshot
}
