package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	ProductTypeBasic     ProductType = "basic"
	ProductTypePremium   ProductType = "premium"
	ProductTypeOversized ProductType = "oversized"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeBasic, ProductTypePremium, ProductTypeOversized:
		return true
	}
	return false
}

type Product struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Price       decimal.Decimal `yaml:"price" json:"price"`
	Type        ProductType     `yaml:"type" json:"type"`
	Colors      []string        `yaml:"colors" json:"colors"`
	Image       string          `yaml:"image" json:"image"`
	Description string          `yaml:"description" json:"description"`
	Material    string          `yaml:"material" json:"material"`
	Care        string          `yaml:"care" json:"care"`
}

func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// ProductFilter narrows the catalog listing. The zero value matches every product;
// Type "all" and Color "All" are accepted as explicit "no constraint" values.
type ProductFilter struct {
	Type     string
	Color    string
	MaxPrice *decimal.Decimal
}

func (f ProductFilter) Match(p Product) bool {
	if f.Type != "" && f.Type != "all" && string(p.Type) != f.Type {
		return false
	}
	if f.Color != "" && f.Color != "All" && !p.HasColor(f.Color) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
