package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive [From, To] window. From/To carry the shop's
// local midnight and end-of-day respectively.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the range (inclusive).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// AnalyticsSnapshot is the aggregated view of one shop over one date range.
// All rate fields are whole percentages in [0,100]; averages are whole
// minutes. An empty record set produces an all-zero snapshot, never NaN.
type AnalyticsSnapshot struct {
	ShopID             string    `json:"shop_id"`
	DateRange          DateRange `json:"date_range"`
	TotalQueues        int       `json:"total_queues"`
	CompletedQueues    int       `json:"completed_queues"`
	CancelledQueues    int       `json:"cancelled_queues"`
	NoShowQueues       int       `json:"no_show_queues"`
	InProgressQueues   int       `json:"in_progress_queues"`
	WaitingQueues      int       `json:"waiting_queues"`
	AverageWaitTime    int       `json:"average_wait_time"`
	AverageServiceTime int       `json:"average_service_time"`
	CompletionRate     int       `json:"completion_rate"`
	CancellationRate   int       `json:"cancellation_rate"`
	NoShowRate         int       `json:"no_show_rate"`
	ComputedAt         time.Time `json:"computed_at"`
}

// HourlyStats is one of the 24 hour-of-day buckets.
type HourlyStats struct {
	Hour            int `json:"hour"`
	QueueCount      int `json:"queue_count"`
	AverageWaitTime int `json:"average_wait_time"`
	CompletionRate  int `json:"completion_rate"`
}

// StaffingSuggestion pairs an hour bucket with a recommended headcount.
type StaffingSuggestion struct {
	Hour                 int    `json:"hour"`
	RecommendedEmployees int    `json:"recommended_employees"`
	Reason               string `json:"reason"`
}

// PeakHoursSnapshot buckets a record set by hour of day. PeakHours and
// QuietHours are slices of the same 24-bucket source, ranked by queue count
// descending/ascending with hour-ascending tie-break.
type PeakHoursSnapshot struct {
	ShopID      string               `json:"shop_id"`
	DateRange   DateRange            `json:"date_range"`
	HourlyStats []HourlyStats        `json:"hourly_stats"`
	PeakHours   []HourlyStats        `json:"peak_hours"`
	QuietHours  []HourlyStats        `json:"quiet_hours"`
	Staffing    []StaffingSuggestion `json:"staffing"`
}

// ServiceStats aggregates one service line across a record set.
type ServiceStats struct {
	ServiceID          string          `json:"service_id"`
	ServiceName        string          `json:"service_name"`
	TotalQueues        int             `json:"total_queues"`
	CompletedQueues    int             `json:"completed_queues"`
	AverageWaitTime    int             `json:"average_wait_time"`
	AverageServiceTime int             `json:"average_service_time"`
	Revenue            decimal.Decimal `json:"revenue"`
	PopularityScore    float64         `json:"popularity_score"`
}

// ServiceAnalytics holds per-service stats plus volume rankings.
type ServiceAnalytics struct {
	ShopID         string         `json:"shop_id"`
	DateRange      DateRange      `json:"date_range"`
	Services       []ServiceStats `json:"services"`
	TopServices    []ServiceStats `json:"top_services"`
	BottomServices []ServiceStats `json:"bottom_services"`
}

// EmployeeUtilization is the serviced-time share of one active employee
// against the fixed weekly staffed capacity.
type EmployeeUtilization struct {
	EmployeeID       string `json:"employee_id"`
	Name             string `json:"name"`
	TotalServiceTime int    `json:"total_service_time"` // minutes
	UtilizationRate  int    `json:"utilization_rate"`   // percent of weekly capacity
	ActiveQueueCount int    `json:"active_queue_count"`
}

// Bottleneck types and severities.
const (
	BottleneckHighWaitTime      = "high_wait_time"
	BottleneckEmployeeOverload  = "employee_overload"
	BottleneckLowCompletionRate = "low_completion_rate"

	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Bottleneck is a rule-triggered operational problem. Recomputed on every
// call, never stored.
type Bottleneck struct {
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	Description   string `json:"description"`
	AffectedCount int    `json:"affected_count"`
}

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is a rule-triggered, human-readable suggested action.
type Recommendation struct {
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Action          string `json:"action"`
	EstimatedImpact string `json:"estimated_impact"`
}

// OptimizationMetrics projects the efficiency gap and revenue upside from
// the current completion rate against the configured target.
type OptimizationMetrics struct {
	CurrentEfficiency        float64         `json:"current_efficiency"`
	TargetEfficiency         float64         `json:"target_efficiency"`
	PotentialImprovement     int             `json:"potential_improvement"` // percent, never negative
	CurrentRevenue           decimal.Decimal `json:"current_revenue"`
	PotentialRevenue         decimal.Decimal `json:"potential_revenue"`
	PotentialRevenueIncrease decimal.Decimal `json:"potential_revenue_increase"`
	ROIPercentage            int             `json:"roi_percentage"`
}

// QueueAnalyticsSummary is the dashboard payload: one snapshot per period
// plus the uncached peak-hour and service blocks. Degraded sub-sections are
// zero-valued, never absent.
type QueueAnalyticsSummary struct {
	ShopID           string            `json:"shop_id"`
	Today            AnalyticsSnapshot `json:"today"`
	Week             AnalyticsSnapshot `json:"week"`
	Month            AnalyticsSnapshot `json:"month"`
	PeakHours        PeakHoursSnapshot `json:"peak_hours"`
	ServiceAnalytics ServiceAnalytics  `json:"service_analytics"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// QueueFlowOptimization is the optimize-queue-flow payload.
type QueueFlowOptimization struct {
	ShopID              string                `json:"shop_id"`
	Snapshot            AnalyticsSnapshot     `json:"snapshot"`
	EmployeeUtilization []EmployeeUtilization `json:"employee_utilization"`
	Bottlenecks         []Bottleneck          `json:"bottlenecks"`
	Recommendations     []Recommendation      `json:"recommendations"`
	PriorityCounts      map[string]int        `json:"priority_counts"`
	Metrics             OptimizationMetrics   `json:"metrics"`
	GeneratedAt         time.Time             `json:"generated_at"`
}
