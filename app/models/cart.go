package models

import "github.com/shopspring/decimal"

// Cart is a point-in-time view of a session cart, used for rendering and checkout.
type Cart struct {
	Items      []LineItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
