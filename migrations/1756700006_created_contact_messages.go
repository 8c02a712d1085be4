package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_contact_0001",
			"name": "contact_messages",
			"type": "base",
			"system": false,
			"fields": [
				{"autogeneratePattern":"[a-z0-9]{15}","hidden":false,"id":"text_cm_id","max":15,"min":15,"name":"id","pattern":"^[a-z0-9]+$","presentable":false,"primaryKey":true,"required":true,"system":true,"type":"text"},
				{"hidden":false,"id":"text_cm_name","max":0,"min":0,"name":"name","presentable":true,"required":true,"system":false,"type":"text"},
				{"exceptDomains":null,"hidden":false,"id":"email_cm_email","name":"email","onlyDomains":null,"presentable":false,"required":true,"system":false,"type":"email"},
				{"hidden":false,"id":"text_cm_subject","max":0,"min":0,"name":"subject","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_cm_message","max":0,"min":0,"name":"message","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"autodate_cm_c","name":"created","onCreate":true,"onUpdate":false,"presentable":false,"system":false,"type":"autodate"},
				{"hidden":false,"id":"autodate_cm_u","name":"updated","onCreate":true,"onUpdate":true,"presentable":false,"system":false,"type":"autodate"}
			],
			"indexes": [],
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
		collection, err := app.FindCollectionByNameOrId("pbc_contact_0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
