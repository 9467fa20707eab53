package services

import (
	"shop-queue/models"
)

// ComputeEmployeeUtilization sums the serviced minutes of every active
// employee across their assigned records and expresses them as a share of
// the configured weekly staffed capacity. Inactive employees are skipped.
func ComputeEmployeeUtilization(employees []models.EmployeeRecord, records []models.QueueRecord, weeklyCapacityMinutes int) []models.EmployeeUtilization {
	minutesByEmployee := map[string]int{}
	for _, record := range records {
		if record.ServedByEmployeeID == "" {
			continue
		}
		minutesByEmployee[record.ServedByEmployeeID] += record.ServiceMinutes()
	}

	utilization := make([]models.EmployeeUtilization, 0, len(employees))
	for _, employee := range employees {
		if employee.Status != models.EmployeeStatusActive {
			continue
		}

		total := minutesByEmployee[employee.ID]
		rate := 0
		if weeklyCapacityMinutes > 0 {
			rate = roundHalfUp(float64(total) / float64(weeklyCapacityMinutes) * 100)
		}

		utilization = append(utilization, models.EmployeeUtilization{
			EmployeeID:       employee.ID,
			Name:             employee.Name,
			TotalServiceTime: total,
			UtilizationRate:  rate,
			ActiveQueueCount: employee.ActiveQueueCount,
		})
	}

	return utilization
}
