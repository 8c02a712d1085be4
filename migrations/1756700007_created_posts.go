package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_posts_0001",
			"name": "posts",
			"type": "base",
			"system": false,
			"fields": [
				{"autogeneratePattern":"[a-z0-9]{15}","hidden":false,"id":"text_ps_id","max":15,"min":15,"name":"id","pattern":"^[a-z0-9]+$","presentable":false,"primaryKey":true,"required":true,"system":true,"type":"text"},
				{"hidden":false,"id":"text_ps_author","max":0,"min":0,"name":"author","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_ps_title","max":200,"min":0,"name":"title","presentable":true,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_ps_body","max":0,"min":0,"name":"body","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_ps_image","max":0,"min":0,"name":"image_url","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"autodate_ps_c","name":"created","onCreate":true,"onUpdate":false,"presentable":false,"system":false,"type":"autodate"},
				{"hidden":false,"id":"autodate_ps_u","name":"updated","onCreate":true,"onUpdate":true,"presentable":false,"system":false,"type":"autodate"}
			],
			"indexes": [],
			"listRule": "",
			"viewRule": "",
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
		collection, err := app.FindCollectionByNameOrId("pbc_posts_0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
