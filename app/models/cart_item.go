package models

import (
	"github.com/shopspring/decimal"
)

type LineItem struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Image       string          `json:"image,omitempty"`
	DesignAsset *DesignAsset    `json:"designAsset,omitempty"`
}

// SameKey reports whether both items share the (id, color, size) merge key.
func (li LineItem) SameKey(other LineItem) bool {
	return li.ID == other.ID && li.Color == other.Color && li.Size == other.Size
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
