package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	EventID         string          `json:"event_id,omitempty"` // empty = any event
	MaxUses         int             `json:"max_uses"`
	Used            int             `json:"used"`
	Active          bool            `json:"active"`
	ExpiresAt       time.Time       `json:"expires_at"`
}
