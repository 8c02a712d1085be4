package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_members_0001",
			"name": "members",
			"type": "base",
			"system": false,
			"fields": [
				{"autogeneratePattern":"[a-z0-9]{15}","hidden":false,"id":"text_mb_id","max":15,"min":15,"name":"id","pattern":"^[a-z0-9]+$","presentable":false,"primaryKey":true,"required":true,"system":true,"type":"text"},
				{"hidden":false,"id":"text_mb_fname","max":0,"min":0,"name":"full_name","presentable":true,"required":true,"system":false,"type":"text"},
				{"exceptDomains":null,"hidden":false,"id":"email_mb_email","name":"email","onlyDomains":null,"presentable":false,"required":true,"system":false,"type":"email"},
				{"hidden":false,"id":"text_mb_phone","max":0,"min":0,"name":"phone","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_mb_lpu","max":0,"min":0,"name":"lpu_id","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_mb_course","max":0,"min":0,"name":"course","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":true,"id":"text_mb_hash","max":0,"min":0,"name":"password_hash","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"bool_mb_admin","name":"is_admin","presentable":false,"required":false,"system":false,"type":"bool"},
				{"hidden":false,"id":"autodate_mb_c","name":"created","onCreate":true,"onUpdate":false,"presentable":false,"system":false,"type":"autodate"},
				{"hidden":false,"id":"autodate_mb_u","name":"updated","onCreate":true,"onUpdate":true,"presentable":false,"system":false,"type":"autodate"}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_members_email ON members (email)",
				"CREATE UNIQUE INDEX idx_members_lpu_id ON members (lpu_id)"
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
		collection, err := app.FindCollectionByNameOrId("pbc_members_0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
