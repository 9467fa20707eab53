package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("queues")

		collection.Fields.Add(
			&core.TextField{Name: "shop", Required: true},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"waiting", "in_progress", "completed", "cancelled", "no_show"},
			},
			&core.DateField{Name: "called_at"},
			&core.DateField{Name: "completed_at"},
			&core.NumberField{Name: "actual_wait_time", OnlyInt: true},
			&core.TextField{Name: "served_by"},
			&core.JSONField{Name: "line_items", MaxSize: 51200},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		// The analytics gateway always filters by shop and date range.
		collection.AddIndex("idx_queues_shop_created", false, "shop, created", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("queues")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
