package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-queue/config"
	"shop-queue/internal/status"
	"shop-queue/models"
)

type fakeGateway struct {
	mu            sync.Mutex
	queues        []models.QueueRecord
	employees     []models.EmployeeRecord
	queueErr      error
	employeeErr   error
	queueCalls    int
	employeeCalls int
}

func (f *fakeGateway) GetQueues(ctx context.Context, shopID string, rng models.DateRange, page, limit int) ([]models.QueueRecord, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queueCalls++
	if f.queueErr != nil {
		return nil, 0, f.queueErr
	}
	return f.queues, len(f.queues), nil
}

func (f *fakeGateway) GetEmployees(ctx context.Context, shopID, employeeStatus string, page, limit int) ([]models.EmployeeRecord, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.employeeCalls++
	if f.employeeErr != nil {
		return nil, 0, f.employeeErr
	}
	return f.employees, len(f.employees), nil
}

func (f *fakeGateway) queueCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queueCalls
}

func serviceConfig() *config.Config {
	return &config.Config{
		CacheTTL:               5 * time.Minute,
		GatewayPageSize:        10000,
		SubComputationTimeout:  2 * time.Second,
		TargetEfficiency:       0.90,
		AverageServicePrice:    50,
		ImplementationCost:     5000,
		WeeklyCapacityMinutes:  3360,
		PeakHourStaffThreshold: 10,
	}
}

func newTestService(gateway RecordGateway) (*AnalyticsService, redismock.ClientMock) {
	redisClient, mock := redismock.NewClientMock()
	cache := NewAnalyticsCache(redisClient, 5*time.Minute)
	return NewAnalyticsService(gateway, cache, nil, nil, serviceConfig()), mock
}

func TestGetQueueAnalyticsSummary_RequiresShopID(t *testing.T) {
	service, _ := newTestService(&fakeGateway{})

	summary, err := service.GetQueueAnalyticsSummary(context.Background(), "")

	assert.Nil(t, summary)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrShopIDRequired)

	var opErr *status.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "getQueueAnalyticsSummary", opErr.Op)
}

func TestGetQueueAnalyticsSummary_HappyPath(t *testing.T) {
	created := ResolvePeriods(time.Now()).Today.From.Add(10 * time.Hour)
	gateway := &fakeGateway{
		queues: []models.QueueRecord{
			makeQueueRecord(1, models.QueueStatusCompleted, 10, created),
			makeQueueRecord(2, models.QueueStatusCompleted, 20, created),
			makeQueueRecord(3, models.QueueStatusCancelled, 0, created),
			makeQueueRecord(4, models.QueueStatusWaiting, 0, created),
		},
	}
	service, mock := newTestService(gateway)

	// Five branches run concurrently, so expectation order cannot be pinned.
	mock.MatchExpectationsInOrder(false)
	periods := ResolvePeriods(time.Now())
	for _, rng := range []models.DateRange{periods.Today, periods.Week, periods.Month} {
		key := service.Cache.Key("shop-1", rng)
		mock.ExpectGet(key).RedisNil()
		mock.Regexp().ExpectSet(key, `.*`, 5*time.Minute).SetVal("OK")
	}

	summary, err := service.GetQueueAnalyticsSummary(context.Background(), "shop-1")

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "shop-1", summary.ShopID)
	assert.False(t, summary.GeneratedAt.IsZero())

	for _, snapshot := range []models.AnalyticsSnapshot{summary.Today, summary.Week, summary.Month} {
		assert.Equal(t, 4, snapshot.TotalQueues)
		assert.Equal(t, 2, snapshot.CompletedQueues)
		assert.Equal(t, 50, snapshot.CompletionRate)
		assert.Equal(t, 15, snapshot.AverageWaitTime)
	}

	require.Len(t, summary.PeakHours.HourlyStats, 24)
	assert.Equal(t, 4, summary.PeakHours.HourlyStats[10].QueueCount)

	// Three snapshot branches plus peak and service analytics.
	assert.Equal(t, 5, gateway.queueCallCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQueueAnalyticsSummary_AllBranchesDegrade(t *testing.T) {
	gateway := &fakeGateway{queueErr: errors.New("record store down")}
	service, _ := newTestService(gateway)

	summary, err := service.GetQueueAnalyticsSummary(context.Background(), "shop-1")

	// Sub-failures never fail the call.
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 0, summary.Today.TotalQueues)
	assert.Equal(t, 0, summary.Week.TotalQueues)
	assert.Equal(t, 0, summary.Month.TotalQueues)
	assert.Equal(t, "shop-1", summary.Today.ShopID)

	require.Len(t, summary.PeakHours.HourlyStats, 24)
	assert.Empty(t, summary.PeakHours.PeakHours)
	assert.NotNil(t, summary.ServiceAnalytics.Services)
	assert.Empty(t, summary.ServiceAnalytics.Services)
}

func TestOptimizeQueueFlow_RequiresShopID(t *testing.T) {
	service, _ := newTestService(&fakeGateway{})

	result, err := service.OptimizeQueueFlow(context.Background(), "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, status.ErrShopIDRequired)
}

func TestOptimizeQueueFlow_UsesCachedSnapshot(t *testing.T) {
	rng := ResolvePeriods(time.Now()).Month
	gateway := &fakeGateway{
		employees: []models.EmployeeRecord{
			makeEmployee("emp-1", "Alice", models.EmployeeStatusActive, 0),
		},
	}
	service, mock := newTestService(gateway)

	cached := models.AnalyticsSnapshot{
		ShopID:          "shop-1",
		DateRange:       rng,
		TotalQueues:     10,
		CompletedQueues: 7,
		CompletionRate:  70,
		AverageWaitTime: 15,
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet(service.Cache.Key("shop-1", rng)).SetVal(string(data))

	result, err := service.OptimizeQueueFlow(context.Background(), "shop-1")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 10, result.Snapshot.TotalQueues)
	assert.Equal(t, 70, result.Snapshot.CompletionRate)

	// The cache served the snapshot; only the per-record rule fetch hit the gateway.
	assert.Equal(t, 1, gateway.queueCallCount())

	// Completion below 80% with an idle active employee.
	require.Len(t, result.EmployeeUtilization, 1)
	assert.Equal(t, 0, result.EmployeeUtilization[0].UtilizationRate)

	types := []string{}
	for _, rec := range result.Recommendations {
		types = append(types, rec.Type)
	}
	assert.Equal(t, []string{"load_balancing", "process_improvement"}, types)
	assert.Equal(t, CountByPriority(result.Recommendations), result.PriorityCounts)

	assert.Equal(t, 29, result.Metrics.PotentialImprovement)
	assert.Equal(t, 2, result.Metrics.ROIPercentage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOptimizeQueueFlow_PrimaryDatasetFailure(t *testing.T) {
	rng := ResolvePeriods(time.Now()).Month
	gateway := &fakeGateway{queueErr: errors.New("record store down")}
	service, mock := newTestService(gateway)

	mock.ExpectGet(service.Cache.Key("shop-1", rng)).RedisNil()

	result, err := service.OptimizeQueueFlow(context.Background(), "shop-1")

	assert.Nil(t, result)
	require.Error(t, err)

	var opErr *status.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "optimizeQueueFlow", opErr.Op)
	assert.Equal(t, "failed to load the primary queue dataset", opErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOptimizeQueueFlow_DegradesWhenEmployeesUnavailable(t *testing.T) {
	rng := ResolvePeriods(time.Now()).Month
	created := rng.From.Add(10 * time.Hour)
	gateway := &fakeGateway{
		queues: []models.QueueRecord{
			makeQueueRecord(1, models.QueueStatusCompleted, 10, created),
			makeQueueRecord(2, models.QueueStatusCompleted, 12, created),
		},
		employeeErr: errors.New("employee store down"),
	}
	service, mock := newTestService(gateway)

	mock.MatchExpectationsInOrder(false)
	key := service.Cache.Key("shop-1", rng)
	mock.ExpectGet(key).RedisNil()
	mock.Regexp().ExpectSet(key, `.*`, 5*time.Minute).SetVal("OK")

	result, err := service.OptimizeQueueFlow(context.Background(), "shop-1")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Snapshot.TotalQueues)
	assert.Empty(t, result.EmployeeUtilization)
	assert.NoError(t, mock.ExpectationsWereMet())
}
