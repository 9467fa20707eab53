package services

import (
	"fmt"

	"shop-queue/models"
)

// Recommendation rule thresholds.
const (
	staffingWaitThreshold      = 20 // minutes of average wait
	maxWaitTechnologyThreshold = 45 // minutes of worst-case wait
	underutilizationThreshold  = 50 // percent
	overutilizationThreshold   = 90 // percent
	completionRecThreshold     = 80 // percent
)

// GenerateRecommendations evaluates the fixed rule table in order and
// concatenates every triggered entry. Rules are independent; several can
// fire on the same snapshot. An empty record set yields no recommendations.
func GenerateRecommendations(snapshot models.AnalyticsSnapshot, utilization []models.EmployeeUtilization, records []models.QueueRecord) []models.Recommendation {
	recommendations := []models.Recommendation{}
	if snapshot.TotalQueues == 0 {
		return recommendations
	}

	if snapshot.AverageWaitTime > staffingWaitThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Type:            "staffing",
			Priority:        models.PriorityHigh,
			Title:           "Increase staff during peak hours",
			Description:     fmt.Sprintf("Average wait time is %d minutes, above the %d minute target.", snapshot.AverageWaitTime, staffingWaitThreshold),
			Action:          "Schedule additional employees for the busiest windows",
			EstimatedImpact: "Reduce average wait time by 30-40%",
		})
	}

	underused := 0
	overused := 0
	for _, u := range utilization {
		if u.UtilizationRate < underutilizationThreshold {
			underused++
		}
		if u.UtilizationRate > overutilizationThreshold {
			overused++
		}
	}

	if underused > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Type:            "load_balancing",
			Priority:        models.PriorityMedium,
			Title:           "Redistribute workload across employees",
			Description:     fmt.Sprintf("%d employees are below %d%% utilization.", underused, underutilizationThreshold),
			Action:          "Rebalance assignments and cross-train underused staff",
			EstimatedImpact: "Improve throughput without extra headcount",
		})
	}

	if snapshot.CompletionRate < completionRecThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Type:            "process_improvement",
			Priority:        models.PriorityHigh,
			Title:           "Improve queue completion rate",
			Description:     fmt.Sprintf("Completion rate is %d%%, below the %d%% target.", snapshot.CompletionRate, completionRecThreshold),
			Action:          "Review cancellation causes and add no-show reminders",
			EstimatedImpact: "Recover lost revenue from abandoned queues",
		})
	}

	if maxWaitTime(records) > maxWaitTechnologyThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Type:            "technology",
			Priority:        models.PriorityMedium,
			Title:           "Adopt digital queue notifications",
			Description:     fmt.Sprintf("At least one customer waited over %d minutes.", maxWaitTechnologyThreshold),
			Action:          "Let customers leave and return via status notifications",
			EstimatedImpact: "Reduce perceived wait time and walkaways",
		})
	}

	if overused > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Type:            "training",
			Priority:        models.PriorityLow,
			Title:           "Support overloaded employees",
			Description:     fmt.Sprintf("%d employees are above %d%% utilization.", overused, overutilizationThreshold),
			Action:          "Provide additional training and review their service mix",
			EstimatedImpact: "Reduce burnout and service-time variance",
		})
	}

	return recommendations
}

// CountByPriority tallies recommendations per priority tier. Every tier is
// present in the result, zero included, so consumers can compare the counts
// against the emitted list with plain equality.
func CountByPriority(recommendations []models.Recommendation) map[string]int {
	counts := map[string]int{
		models.PriorityHigh:   0,
		models.PriorityMedium: 0,
		models.PriorityLow:    0,
	}
	for _, rec := range recommendations {
		counts[rec.Priority]++
	}
	return counts
}

func maxWaitTime(records []models.QueueRecord) int {
	max := 0
	for _, record := range records {
		if record.ActualWaitTime > max {
			max = record.ActualWaitTime
		}
	}
	return max
}
