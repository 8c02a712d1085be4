package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_events_0001",
			"name": "events",
			"type": "base",
			"system": false,
			"fields": [
				{"autogeneratePattern":"[a-z0-9]{15}","hidden":false,"id":"text_ev_id","max":15,"min":15,"name":"id","pattern":"^[a-z0-9]+$","presentable":false,"primaryKey":true,"required":true,"system":true,"type":"text"},
				{"hidden":false,"id":"text_ev_name","max":200,"min":0,"name":"name","presentable":true,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_ev_desc","max":0,"min":0,"name":"description","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_ev_venue","max":0,"min":0,"name":"venue","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"date_ev_start","name":"start_time","presentable":false,"required":false,"system":false,"type":"date"},
				{"hidden":false,"id":"date_ev_end","name":"end_time","presentable":false,"required":false,"system":false,"type":"date"},
				{"hidden":false,"id":"num_ev_price","name":"price","presentable":false,"required":false,"system":false,"type":"number"},
				{"hidden":false,"id":"text_ev_status","max":0,"min":0,"name":"status","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"autodate_ev_c","name":"created","onCreate":true,"onUpdate":false,"presentable":false,"system":false,"type":"autodate"},
				{"hidden":false,"id":"autodate_ev_u","name":"updated","onCreate":true,"onUpdate":true,"presentable":false,"system":false,"type":"autodate"}
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
		collection, err := app.FindCollectionByNameOrId("pbc_events_0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
