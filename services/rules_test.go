package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-queue/models"
)

func makeEmployee(id, name, employeeStatus string, activeQueues int) models.EmployeeRecord {
	return models.EmployeeRecord{
		ID:               id,
		ShopID:           "shop-1",
		Name:             name,
		Status:           employeeStatus,
		ActiveQueueCount: activeQueues,
	}
}

func servedRecord(id int, employeeID string, serviceMinutes int) models.QueueRecord {
	created := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	called := created.Add(5 * time.Minute)
	record := withServiceTimes(
		makeQueueRecord(id, models.QueueStatusCompleted, 0, created),
		called, called.Add(time.Duration(serviceMinutes)*time.Minute))
	record.ServedByEmployeeID = employeeID
	return record
}

func TestComputeEmployeeUtilization(t *testing.T) {
	employees := []models.EmployeeRecord{
		makeEmployee("emp-1", "Alice", models.EmployeeStatusActive, 2),
		makeEmployee("emp-2", "Bob", models.EmployeeStatusActive, 0),
		makeEmployee("emp-3", "Carol", models.EmployeeStatusInactive, 0),
	}
	records := []models.QueueRecord{
		servedRecord(1, "emp-1", 1000),
		servedRecord(2, "emp-1", 680),
		servedRecord(3, "emp-3", 500),
	}

	utilization := ComputeEmployeeUtilization(employees, records, 3360)

	// Inactive employees never appear, even with serviced records.
	require.Len(t, utilization, 2)

	alice := utilization[0]
	assert.Equal(t, "emp-1", alice.EmployeeID)
	assert.Equal(t, 1680, alice.TotalServiceTime)
	assert.Equal(t, 50, alice.UtilizationRate)
	assert.Equal(t, 2, alice.ActiveQueueCount)

	bob := utilization[1]
	assert.Equal(t, 0, bob.TotalServiceTime)
	assert.Equal(t, 0, bob.UtilizationRate)
}

func TestComputeEmployeeUtilization_ZeroCapacity(t *testing.T) {
	employees := []models.EmployeeRecord{makeEmployee("emp-1", "Alice", models.EmployeeStatusActive, 0)}
	records := []models.QueueRecord{servedRecord(1, "emp-1", 120)}

	utilization := ComputeEmployeeUtilization(employees, records, 0)

	require.Len(t, utilization, 1)
	assert.Equal(t, 120, utilization[0].TotalServiceTime)
	assert.Equal(t, 0, utilization[0].UtilizationRate)
}

func TestDetectBottlenecks_WaitSpike(t *testing.T) {
	created := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	records := []models.QueueRecord{
		makeQueueRecord(1, models.QueueStatusCompleted, 10, created),
		makeQueueRecord(2, models.QueueStatusCompleted, 10, created),
		makeQueueRecord(3, models.QueueStatusCompleted, 40, created),
	}
	snapshot := AggregateQueueRecords("shop-1", records, testRange())
	require.Equal(t, 20, snapshot.AverageWaitTime)

	bottlenecks := DetectBottlenecks(snapshot, records, nil)

	require.Len(t, bottlenecks, 1)
	assert.Equal(t, models.BottleneckHighWaitTime, bottlenecks[0].Type)
	assert.Equal(t, models.SeverityHigh, bottlenecks[0].Severity)
	assert.Equal(t, 1, bottlenecks[0].AffectedCount)
}

func TestDetectBottlenecks_SkipsWaitRuleWithoutWaitData(t *testing.T) {
	records := makeStatusRecords(map[string]int{models.QueueStatusCompleted: 5})
	snapshot := AggregateQueueRecords("shop-1", records, testRange())
	require.Equal(t, 0, snapshot.AverageWaitTime)

	bottlenecks := DetectBottlenecks(snapshot, records, nil)

	for _, b := range bottlenecks {
		assert.NotEqual(t, models.BottleneckHighWaitTime, b.Type)
	}
}

func TestDetectBottlenecks_EmployeeOverload(t *testing.T) {
	employees := []models.EmployeeRecord{
		makeEmployee("emp-1", "Alice", models.EmployeeStatusActive, 6),
		makeEmployee("emp-2", "Bob", models.EmployeeStatusActive, 5),
	}
	records := makeStatusRecords(map[string]int{models.QueueStatusCompleted: 10})
	snapshot := AggregateQueueRecords("shop-1", records, testRange())

	bottlenecks := DetectBottlenecks(snapshot, records, employees)

	require.Len(t, bottlenecks, 1)
	assert.Equal(t, models.BottleneckEmployeeOverload, bottlenecks[0].Type)
	assert.Equal(t, models.SeverityMedium, bottlenecks[0].Severity)
	// Only the employee above the threshold counts; exactly five queues does not.
	assert.Equal(t, 1, bottlenecks[0].AffectedCount)
}

func TestDetectBottlenecks_LowCompletionRate(t *testing.T) {
	records := makeStatusRecords(map[string]int{
		models.QueueStatusCompleted: 6,
		models.QueueStatusCancelled: 4,
	})
	snapshot := AggregateQueueRecords("shop-1", records, testRange())
	require.Equal(t, 60, snapshot.CompletionRate)

	bottlenecks := DetectBottlenecks(snapshot, records, nil)

	require.Len(t, bottlenecks, 1)
	assert.Equal(t, models.BottleneckLowCompletionRate, bottlenecks[0].Type)
	assert.Equal(t, 4, bottlenecks[0].AffectedCount)
}

func TestDetectBottlenecks_EmptyDataset(t *testing.T) {
	snapshot := AggregateQueueRecords("shop-1", nil, testRange())

	bottlenecks := DetectBottlenecks(snapshot, nil, nil)

	assert.NotNil(t, bottlenecks)
	assert.Empty(t, bottlenecks)
}

func TestGenerateRecommendations_StaffingFiresOnLongWaits(t *testing.T) {
	created := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	records := []models.QueueRecord{}
	for i := 0; i < 20; i++ {
		records = append(records, makeQueueRecord(i, models.QueueStatusCompleted, 25+i%6, created))
	}
	snapshot := AggregateQueueRecords("shop-1", records, testRange())
	require.Greater(t, snapshot.AverageWaitTime, 20)
	require.Equal(t, 100, snapshot.CompletionRate)

	recommendations := GenerateRecommendations(snapshot, nil, records)

	require.Len(t, recommendations, 1)
	assert.Equal(t, "staffing", recommendations[0].Type)
	assert.Equal(t, models.PriorityHigh, recommendations[0].Priority)
}

func TestGenerateRecommendations_RuleOrder(t *testing.T) {
	created := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	// Long average wait, one extreme wait, poor completion.
	records := []models.QueueRecord{
		makeQueueRecord(1, models.QueueStatusCompleted, 50, created),
		makeQueueRecord(2, models.QueueStatusCancelled, 30, created),
		makeQueueRecord(3, models.QueueStatusNoShow, 0, created),
	}
	snapshot := AggregateQueueRecords("shop-1", records, testRange())
	utilization := []models.EmployeeUtilization{
		{EmployeeID: "emp-1", UtilizationRate: 30},
		{EmployeeID: "emp-2", UtilizationRate: 95},
	}

	recommendations := GenerateRecommendations(snapshot, utilization, records)

	require.Len(t, recommendations, 5)
	assert.Equal(t, "staffing", recommendations[0].Type)
	assert.Equal(t, "load_balancing", recommendations[1].Type)
	assert.Equal(t, "process_improvement", recommendations[2].Type)
	assert.Equal(t, "technology", recommendations[3].Type)
	assert.Equal(t, "training", recommendations[4].Type)
}

func TestGenerateRecommendations_EmptyDataset(t *testing.T) {
	snapshot := AggregateQueueRecords("shop-1", nil, testRange())
	utilization := []models.EmployeeUtilization{{EmployeeID: "emp-1", UtilizationRate: 10}}

	recommendations := GenerateRecommendations(snapshot, utilization, nil)

	assert.NotNil(t, recommendations)
	assert.Empty(t, recommendations)
}

func TestCountByPriority(t *testing.T) {
	recommendations := []models.Recommendation{
		{Priority: models.PriorityHigh},
		{Priority: models.PriorityHigh},
		{Priority: models.PriorityMedium},
	}

	counts := CountByPriority(recommendations)

	assert.Equal(t, map[string]int{
		models.PriorityHigh:   2,
		models.PriorityMedium: 1,
		models.PriorityLow:    0,
	}, counts)
}

func TestCountByPriority_EmptyListKeepsAllTiers(t *testing.T) {
	counts := CountByPriority(nil)

	assert.Equal(t, map[string]int{
		models.PriorityHigh:   0,
		models.PriorityMedium: 0,
		models.PriorityLow:    0,
	}, counts)
}
