package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("employees")

		collection.Fields.Add(
			&core.TextField{Name: "shop", Required: true},
			&core.TextField{Name: "name", Required: true},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"active", "inactive"},
			},
			&core.NumberField{Name: "active_queue_count", OnlyInt: true},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_employees_shop_status", false, "shop, status", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("employees")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
