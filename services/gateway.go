package services

import (
	"context"
	"log/slog"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"shop-queue/models"
)

// RecordGateway is the read-only boundary to the queue and employee stores.
// Implementations must support date-range filtering and pagination; the
// analytics engine requests large pages to pull a full range in one call.
type RecordGateway interface {
	GetQueues(ctx context.Context, shopID string, rng models.DateRange, page, limit int) ([]models.QueueRecord, int, error)
	GetEmployees(ctx context.Context, shopID, employeeStatus string, page, limit int) ([]models.EmployeeRecord, int, error)
}

// PocketBaseGateway reads the queues and employees collections. Raw records
// are converted to the typed model here, at the boundary, so the analytics
// logic never touches loosely typed data.
type PocketBaseGateway struct {
	app *pocketbase.PocketBase
}

func NewPocketBaseGateway(app *pocketbase.PocketBase) *PocketBaseGateway {
	return &PocketBaseGateway{app: app}
}

const storedTimeLayout = "2006-01-02 15:04:05.000Z"

func (g *PocketBaseGateway) GetQueues(ctx context.Context, shopID string, rng models.DateRange, page, limit int) ([]models.QueueRecord, int, error) {
	params := dbx.Params{
		"shop": shopID,
		"from": rng.From.UTC().Format(storedTimeLayout),
		"to":   rng.To.UTC().Format(storedTimeLayout),
	}

	records, err := g.app.FindRecordsByFilter(
		"queues",
		"shop = {:shop} && created >= {:from} && created <= {:to}",
		"-created",
		limit,
		(page-1)*limit,
		params,
	)
	if err != nil {
		return nil, 0, err
	}

	total, err := g.app.CountRecords("queues",
		dbx.NewExp("shop = {:shop} AND created >= {:from} AND created <= {:to}", params))
	if err != nil {
		return nil, 0, err
	}

	queues := make([]models.QueueRecord, 0, len(records))
	for _, record := range records {
		queues = append(queues, toQueueRecord(record))
	}
	return queues, int(total), nil
}

func (g *PocketBaseGateway) GetEmployees(ctx context.Context, shopID, employeeStatus string, page, limit int) ([]models.EmployeeRecord, int, error) {
	params := dbx.Params{
		"shop":   shopID,
		"status": employeeStatus,
	}

	records, err := g.app.FindRecordsByFilter(
		"employees",
		"shop = {:shop} && status = {:status}",
		"name",
		limit,
		(page-1)*limit,
		params,
	)
	if err != nil {
		return nil, 0, err
	}

	total, err := g.app.CountRecords("employees",
		dbx.NewExp("shop = {:shop} AND status = {:status}", params))
	if err != nil {
		return nil, 0, err
	}

	employees := make([]models.EmployeeRecord, 0, len(records))
	for _, record := range records {
		employees = append(employees, models.EmployeeRecord{
			ID:               record.Id,
			ShopID:           record.GetString("shop"),
			Name:             record.GetString("name"),
			Status:           record.GetString("status"),
			ActiveQueueCount: record.GetInt("active_queue_count"),
		})
	}
	return employees, int(total), nil
}

func toQueueRecord(record *core.Record) models.QueueRecord {
	queue := models.QueueRecord{
		ID:                 record.Id,
		ShopID:             record.GetString("shop"),
		Status:             record.GetString("status"),
		CreatedAt:          record.GetDateTime("created").Time(),
		ActualWaitTime:     record.GetInt("actual_wait_time"),
		ServedByEmployeeID: record.GetString("served_by"),
	}

	if dt := record.GetDateTime("called_at"); !dt.IsZero() {
		t := dt.Time()
		queue.CalledAt = &t
	}
	if dt := record.GetDateTime("completed_at"); !dt.IsZero() {
		t := dt.Time()
		queue.CompletedAt = &t
	}

	if raw := record.GetString("line_items"); raw != "" {
		if err := record.UnmarshalJSONField("line_items", &queue.LineItems); err != nil {
			// Malformed line items degrade that record's service analytics,
			// not the whole request.
			slog.Warn("Failed to decode queue line items", "queue_id", record.Id, "error", err)
			queue.LineItems = nil
		}
	}
	return queue
}
