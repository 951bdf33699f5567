package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderReceipt struct {
	OrderNumber string          `json:"orderNumber"`
	Items       []LineItem      `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	PlacedAt    time.Time       `json:"placedAt"`
}
