package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	pubnub "github.com/pubnub/go"

	"shop-queue/config"
	"shop-queue/internal/status"
	"shop-queue/models"
	"shop-queue/monitoring"
	"shop-queue/utils"
)

// AnalyticsService orchestrates the analytics engine: it resolves the
// dashboard periods, consults the cache, pulls records through the gateway
// and runs the analyzers. Every sub-computation is independent; failures in
// one degrade that section to its zero-valued default instead of failing
// the request.
type AnalyticsService struct {
	Gateway RecordGateway
	Cache   *AnalyticsCache
	PubNub  *pubnub.PubNub
	Monitor *monitoring.Monitor
	Config  *config.Config

	breaker *utils.CircuitBreaker
}

func NewAnalyticsService(gateway RecordGateway, cache *AnalyticsCache, pn *pubnub.PubNub, monitor *monitoring.Monitor, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{
		Gateway: gateway,
		Cache:   cache,
		PubNub:  pn,
		Monitor: monitor,
		Config:  cfg,
		breaker: utils.NewCircuitBreaker("record-gateway"),
	}
}

// GetQueueAnalyticsSummary assembles the dashboard summary for a shop: one
// snapshot per period plus the peak-hour and service blocks, computed in
// parallel and joined before assembly. Only a missing shop id fails the
// call; every sub-failure is logged and replaced by a default section.
func (s *AnalyticsService) GetQueueAnalyticsSummary(ctx context.Context, shopID string) (*models.QueueAnalyticsSummary, error) {
	const op = "getQueueAnalyticsSummary"
	if shopID == "" {
		return nil, status.NewOpError(op, "shop id is required", map[string]any{"shop_id": shopID}, status.ErrShopIDRequired)
	}

	started := time.Now()
	trace, _ := utils.GenerateCode(4)
	slog.Info("Building queue analytics summary", "shop_id", shopID, "operation", op, "trace", trace)

	periods := ResolvePeriods(time.Now())
	summary := &models.QueueAnalyticsSummary{ShopID: shopID}

	var wg sync.WaitGroup

	runSnapshot := func(rng models.DateRange, period string, dst *models.AnalyticsSnapshot) {
		defer wg.Done()
		branchCtx, cancel := context.WithTimeout(ctx, s.Config.SubComputationTimeout)
		defer cancel()

		snapshot, err := s.snapshotForPeriod(branchCtx, shopID, rng, period)
		if err != nil {
			slog.Error("Snapshot computation failed, using zero-valued default",
				"shop_id", shopID, "operation", op, "period", period, "trace", trace, "error", err)
			s.trackComputation(shopID, period, "fallback")
			*dst = DefaultSnapshot(shopID, rng)
			return
		}
		*dst = snapshot
	}

	wg.Add(3)
	go runSnapshot(periods.Today, PeriodToday, &summary.Today)
	go runSnapshot(periods.Week, PeriodWeek, &summary.Week)
	go runSnapshot(periods.Month, PeriodMonth, &summary.Month)

	// Peak-hour and service analytics are recomputed on every call; only the
	// period snapshots go through the cache.
	wg.Add(1)
	go func() {
		defer wg.Done()
		branchCtx, cancel := context.WithTimeout(ctx, s.Config.SubComputationTimeout)
		defer cancel()

		records, err := s.fetchQueues(branchCtx, shopID, periods.Month)
		if err != nil {
			slog.Error("Peak-hour analysis failed, using zero-valued default",
				"shop_id", shopID, "operation", op, "trace", trace, "error", err)
			s.trackComputation(shopID, "peak_hours", "fallback")
			summary.PeakHours = DefaultPeakHours(shopID, periods.Month)
			return
		}
		summary.PeakHours = AnalyzePeakHours(shopID, records, periods.Month, s.Config.PeakHourStaffThreshold)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		branchCtx, cancel := context.WithTimeout(ctx, s.Config.SubComputationTimeout)
		defer cancel()

		records, err := s.fetchQueues(branchCtx, shopID, periods.Month)
		if err != nil {
			slog.Error("Service analytics failed, using zero-valued default",
				"shop_id", shopID, "operation", op, "trace", trace, "error", err)
			s.trackComputation(shopID, "service_analytics", "fallback")
			summary.ServiceAnalytics = DefaultServiceAnalytics(shopID, periods.Month)
			return
		}
		summary.ServiceAnalytics = AnalyzeServicePopularity(shopID, records, periods.Month)
	}()

	wg.Wait()
	summary.GeneratedAt = time.Now()

	s.trackDuration(op, time.Since(started))
	s.publishDashboard(shopID, "analytics_summary", trace, summary)

	slog.Info("Queue analytics summary ready",
		"shop_id", shopID, "operation", op, "trace", trace, "duration", time.Since(started))
	return summary, nil
}

// OptimizeQueueFlow runs the optimization use case over the month range:
// employee utilization, bottleneck detection, the recommendation rule table
// and the efficiency/ROI projection. The period snapshot is the primary
// dataset; if it cannot be produced nothing else can proceed and the call
// fails with a domain error.
func (s *AnalyticsService) OptimizeQueueFlow(ctx context.Context, shopID string) (*models.QueueFlowOptimization, error) {
	const op = "optimizeQueueFlow"
	if shopID == "" {
		return nil, status.NewOpError(op, "shop id is required", map[string]any{"shop_id": shopID}, status.ErrShopIDRequired)
	}

	started := time.Now()
	trace, _ := utils.GenerateCode(4)
	slog.Info("Optimizing queue flow", "shop_id", shopID, "operation", op, "trace", trace)

	rng := ResolvePeriods(time.Now()).Month

	snapshot, err := s.snapshotForPeriod(ctx, shopID, rng, PeriodMonth)
	if err != nil {
		return nil, status.NewOpError(op, "failed to load the primary queue dataset",
			map[string]any{"shop_id": shopID, "from": rng.From, "to": rng.To}, err)
	}

	// The per-record rules need the raw set; when the snapshot came from
	// cache or this fetch fails, they degrade to the snapshot-only rules.
	records, err := s.fetchQueues(ctx, shopID, rng)
	if err != nil {
		slog.Error("Queue record fetch failed, rules degrade to snapshot data",
			"shop_id", shopID, "operation", op, "trace", trace, "error", err)
		records = nil
	}

	employees, err := s.fetchEmployees(ctx, shopID)
	if err != nil {
		slog.Error("Employee fetch failed, skipping utilization rules",
			"shop_id", shopID, "operation", op, "trace", trace, "error", err)
		employees = nil
	}

	utilization := ComputeEmployeeUtilization(employees, records, s.Config.WeeklyCapacityMinutes)
	bottlenecks := DetectBottlenecks(snapshot, records, employees)
	recommendations := GenerateRecommendations(snapshot, utilization, records)

	for _, bottleneck := range bottlenecks {
		s.trackBottleneck(shopID, bottleneck.Type)
	}
	for _, recommendation := range recommendations {
		s.trackRecommendation(shopID, recommendation.Priority)
	}

	result := &models.QueueFlowOptimization{
		ShopID:              shopID,
		Snapshot:            snapshot,
		EmployeeUtilization: utilization,
		Bottlenecks:         bottlenecks,
		Recommendations:     recommendations,
		PriorityCounts:      CountByPriority(recommendations),
		Metrics:             ComputeOptimizationMetrics(snapshot, s.Config),
		GeneratedAt:         time.Now(),
	}

	s.trackDuration(op, time.Since(started))
	s.publishDashboard(shopID, "queue_flow_optimization", trace, result)

	slog.Info("Queue flow optimization ready",
		"shop_id", shopID, "operation", op, "trace", trace,
		"bottlenecks", len(bottlenecks), "recommendations", len(recommendations),
		"duration", time.Since(started))
	return result, nil
}

// snapshotForPeriod serves one period snapshot: cache read, then fetch and
// aggregate on a miss, then cache write. The write never happens without a
// completed computation.
func (s *AnalyticsService) snapshotForPeriod(ctx context.Context, shopID string, rng models.DateRange, period string) (models.AnalyticsSnapshot, error) {
	cached, err := s.Cache.Get(ctx, shopID, rng)
	if err == nil {
		s.trackCache(shopID, "hit")
		s.trackComputation(shopID, period, "cache")
		return *cached, nil
	}
	if !errors.Is(err, status.ErrCacheMiss) {
		// Cache trouble is not fatal; fall through and compute.
		slog.Warn("Cache read failed", "shop_id", shopID, "period", period, "error", err)
	}
	s.trackCache(shopID, "miss")

	records, err := s.fetchQueues(ctx, shopID, rng)
	if err != nil {
		return models.AnalyticsSnapshot{}, err
	}

	snapshot := AggregateQueueRecords(shopID, records, rng)
	if err := s.Cache.Set(ctx, snapshot); err != nil {
		slog.Warn("Cache write failed", "shop_id", shopID, "period", period, "error", err)
	}
	s.trackComputation(shopID, period, "computed")
	return snapshot, nil
}

func (s *AnalyticsService) fetchQueues(ctx context.Context, shopID string, rng models.DateRange) ([]models.QueueRecord, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		records, _, err := s.Gateway.GetQueues(ctx, shopID, rng, 1, s.Config.GatewayPageSize)
		return records, err
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.QueueRecord), nil
}

func (s *AnalyticsService) fetchEmployees(ctx context.Context, shopID string) ([]models.EmployeeRecord, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		employees, _, err := s.Gateway.GetEmployees(ctx, shopID, models.EmployeeStatusActive, 1, s.Config.GatewayPageSize)
		return employees, err
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.EmployeeRecord), nil
}

func (s *AnalyticsService) publishDashboard(shopID, messageType, trace string, payload any) {
	if s.PubNub == nil {
		return
	}

	channel := fmt.Sprintf("shop-dashboard-%s", shopID)
	_, _, err := s.PubNub.Publish().
		Channel(channel).
		Message(map[string]any{
			"type":  messageType,
			"trace": trace,
			"data":  payload,
		}).
		Execute()
	if err != nil {
		slog.Error("Dashboard publish failed", "shop_id", shopID, "channel", channel, "error", err)
	}
}

func (s *AnalyticsService) trackComputation(shopID, period, source string) {
	if s.Monitor != nil {
		s.Monitor.TrackComputation(shopID, period, source)
	}
}

func (s *AnalyticsService) trackCache(shopID, outcome string) {
	if s.Monitor != nil {
		s.Monitor.TrackCache(shopID, outcome)
	}
}

func (s *AnalyticsService) trackBottleneck(shopID, bottleneckType string) {
	if s.Monitor != nil {
		s.Monitor.TrackBottleneck(shopID, bottleneckType)
	}
}

func (s *AnalyticsService) trackRecommendation(shopID, priority string) {
	if s.Monitor != nil {
		s.Monitor.TrackRecommendation(shopID, priority)
	}
}

func (s *AnalyticsService) trackDuration(operation string, d time.Duration) {
	if s.Monitor != nil {
		s.Monitor.TrackDuration(operation, d)
	}
}
