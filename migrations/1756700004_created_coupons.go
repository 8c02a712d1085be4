package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_coupons_0001",
			"name": "coupons",
			"type": "base",
			"system": false,
			"fields": [
				{"autogeneratePattern":"[a-z0-9]{15}","hidden":false,"id":"text_cp_id","max":15,"min":15,"name":"id","pattern":"^[a-z0-9]+$","presentable":false,"primaryKey":true,"required":true,"system":true,"type":"text"},
				{"hidden":false,"id":"text_cp_code","max":32,"min":3,"name":"code","presentable":true,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"num_cp_discount","name":"discount_percent","presentable":false,"required":false,"system":false,"type":"number"},
				{"hidden":false,"id":"text_cp_event","max":0,"min":0,"name":"event_id","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"num_cp_max","name":"max_uses","onlyInt":true,"presentable":false,"required":false,"system":false,"type":"number"},
				{"hidden":false,"id":"num_cp_used","name":"used","onlyInt":true,"presentable":false,"required":false,"system":false,"type":"number"},
				{"hidden":false,"id":"bool_cp_active","name":"active","presentable":false,"required":false,"system":false,"type":"bool"},
				{"hidden":false,"id":"date_cp_expires","name":"expires_at","presentable":false,"required":false,"system":false,"type":"date"},
				{"hidden":false,"id":"autodate_cp_c","name":"created","onCreate":true,"onUpdate":false,"presentable":false,"system":false,"type":"autodate"},
				{"hidden":false,"id":"autodate_cp_u","name":"updated","onCreate":true,"onUpdate":true,"presentable":false,"system":false,"type":"autodate"}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_coupons_code ON coupons (code)"
			],
			"listRule": null,
			"viewRule": null,
			"createRule": null,
			"updateRule": null,
			"deleteRule": null
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_coupons_0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
