package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// The two unique indexes are what enforces one ticket per payer per event:
// duplicate issuance attempts lose at the index, not at a pre-check.
func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_tickets_0001",
			"name": "tickets",
			"type": "base",
			"system": false,
			"fields": [
				{"autogeneratePattern":"[a-z0-9]{15}","hidden":false,"id":"text_tk_id","max":15,"min":15,"name":"id","pattern":"^[a-z0-9]+$","presentable":false,"primaryKey":true,"required":true,"system":true,"type":"text"},
				{"hidden":false,"id":"text_tk_tid","max":0,"min":0,"name":"ticket_id","presentable":true,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_fname","max":0,"min":0,"name":"full_name","presentable":false,"required":true,"system":false,"type":"text"},
				{"exceptDomains":null,"hidden":false,"id":"email_tk_email","name":"email","onlyDomains":null,"presentable":false,"required":true,"system":false,"type":"email"},
				{"hidden":false,"id":"text_tk_phone","max":0,"min":0,"name":"phone","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_lpu","max":0,"min":0,"name":"lpu_id","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_gender","max":0,"min":0,"name":"gender","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"bool_tk_hosteler","name":"hosteler","presentable":false,"required":false,"system":false,"type":"bool"},
				{"hidden":false,"id":"text_tk_hostel","max":0,"min":0,"name":"hostel","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_course","max":0,"min":0,"name":"course","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_club","max":0,"min":0,"name":"club","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_event","max":0,"min":0,"name":"event_id","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_evname","max":0,"min":0,"name":"event_name","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"bool_tk_used","name":"is_used","presentable":false,"required":false,"system":false,"type":"bool"},
				{"hidden":false,"id":"bool_tk_cancel","name":"is_cancelled","presentable":false,"required":false,"system":false,"type":"bool"},
				{"hidden":false,"id":"text_tk_qrurl","max":0,"min":0,"name":"qr_url","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tk_qrobj","max":0,"min":0,"name":"qr_object_id","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"date_tk_used","name":"used_at","presentable":false,"required":false,"system":false,"type":"date"},
				{"hidden":false,"id":"autodate_tk_c","name":"created","onCreate":true,"onUpdate":false,"presentable":false,"system":false,"type":"autodate"},
				{"hidden":false,"id":"autodate_tk_u","name":"updated","onCreate":true,"onUpdate":true,"presentable":false,"system":false,"type":"autodate"}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_tickets_ticket_id ON tickets (ticket_id)",
				"CREATE UNIQUE INDEX idx_tickets_event_email ON tickets (event_id, email)",
				"CREATE UNIQUE INDEX idx_tickets_event_lpu ON tickets (event_id, lpu_id)"
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
		collection, err := app.FindCollectionByNameOrId("pbc_tickets_0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
