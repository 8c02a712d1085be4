package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_txn_0001",
			"name": "transactions",
			"type": "base",
			"system": false,
			"fields": [
				{"autogeneratePattern":"[a-z0-9]{15}","hidden":false,"id":"text_tx_id","max":15,"min":15,"name":"id","pattern":"^[a-z0-9]+$","presentable":false,"primaryKey":true,"required":true,"system":true,"type":"text"},
				{"hidden":false,"id":"text_tx_order","max":0,"min":0,"name":"order_id","presentable":true,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_fname","max":0,"min":0,"name":"full_name","presentable":false,"required":true,"system":false,"type":"text"},
				{"exceptDomains":null,"hidden":false,"id":"email_tx_email","name":"email","onlyDomains":null,"presentable":false,"required":true,"system":false,"type":"email"},
				{"hidden":false,"id":"text_tx_phone","max":0,"min":0,"name":"phone","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_lpu","max":0,"min":0,"name":"lpu_id","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_gender","max":0,"min":0,"name":"gender","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"bool_tx_hosteler","name":"hosteler","presentable":false,"required":false,"system":false,"type":"bool"},
				{"hidden":false,"id":"text_tx_hostel","max":0,"min":0,"name":"hostel","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_course","max":0,"min":0,"name":"course","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_club","max":0,"min":0,"name":"club","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"num_tx_amount","name":"amount","presentable":false,"required":false,"system":false,"type":"number"},
				{"hidden":false,"id":"text_tx_event","max":0,"min":0,"name":"event_id","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_evname","max":0,"min":0,"name":"event_name","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_status","max":0,"min":0,"name":"status","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_provider","max":0,"min":0,"name":"provider","presentable":false,"required":true,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_gwref","max":0,"min":0,"name":"gateway_ref","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"text_tx_payid","max":0,"min":0,"name":"payment_id","presentable":false,"required":false,"system":false,"type":"text"},
				{"hidden":false,"id":"date_tx_done","name":"completed_at","presentable":false,"required":false,"system":false,"type":"date"},
				{"hidden":false,"id":"autodate_tx_c","name":"created","onCreate":true,"onUpdate":false,"presentable":false,"system":false,"type":"autodate"},
				{"hidden":false,"id":"autodate_tx_u","name":"updated","onCreate":true,"onUpdate":true,"presentable":false,"system":false,"type":"autodate"}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_transactions_order_id ON transactions (order_id)",
				"CREATE INDEX idx_transactions_gateway_ref ON transactions (provider, gateway_ref)"
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
		collection, err := app.FindCollectionByNameOrId("pbc_txn_0001")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
