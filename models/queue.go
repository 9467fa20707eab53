package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Queue statuses. A record is immutable once it reaches a terminal status
// (completed, cancelled, no_show).
const (
	QueueStatusWaiting    = "waiting"
	QueueStatusInProgress = "in_progress"
	QueueStatusCompleted  = "completed"
	QueueStatusCancelled  = "cancelled"
	QueueStatusNoShow     = "no_show"
)

// QueueRecord is one customer service episode, from creation to terminal
// status. The analytics engine treats these as read-only input.
type QueueRecord struct {
	ID                 string          `json:"id"`
	ShopID             string          `json:"shop_id"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	CalledAt           *time.Time      `json:"called_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	ActualWaitTime     int             `json:"actual_wait_time,omitempty"` // minutes, 0 = not recorded
	ServedByEmployeeID string          `json:"served_by_employee_id,omitempty"`
	LineItems          []QueueLineItem `json:"line_items,omitempty"`
}

// QueueLineItem is one service sold within a queue episode.
type QueueLineItem struct {
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// ServiceMinutes returns whole minutes between called_at and completed_at,
// or 0 when either timestamp is missing or the difference is not positive.
func (q *QueueRecord) ServiceMinutes() int {
	if q.CalledAt == nil || q.CompletedAt == nil {
		return 0
	}
	mins := int(q.CompletedAt.Sub(*q.CalledAt).Minutes())
	if mins <= 0 {
		return 0
	}
	return mins
}

// IsTerminal reports whether the record can no longer change.
func (q *QueueRecord) IsTerminal() bool {
	switch q.Status {
	case QueueStatusCompleted, QueueStatusCancelled, QueueStatusNoShow:
		return true
	}
	return false
}

// EmployeeRecord is the slice of an employee the analytics engine reads:
// identity, active/inactive flag and the number of queues currently assigned.
type EmployeeRecord struct {
	ID               string `json:"id"`
	ShopID           string `json:"shop_id"`
	Name             string `json:"name"`
	Status           string `json:"status"` // active, inactive
	ActiveQueueCount int    `json:"active_queue_count"`
}

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)
