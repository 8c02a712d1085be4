package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Venue       string          `json:"venue"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"` // draft, published, ended
}
