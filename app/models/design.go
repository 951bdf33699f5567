package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

const (
	CustomProductName = "Custom T-Shirt"
	CustomIDPrefix    = "custom-"
	DefaultSize       = "M"

	MaxDesignBytes = 10 * 1024 * 1024
)

var CustomUnitPrice = decimal.RequireFromString("29.99")

type ShirtColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Light bool   `json:"light"`
}

var ShirtColors = []ShirtColor{
	{Name: "White", Value: "#FFFFFF", Light: true},
	{Name: "Black", Value: "#111111"},
	{Name: "Navy", Value: "#1E3A5F"},
	{Name: "Red", Value: "#DC2626"},
	{Name: "Forest Green", Value: "#166534"},
	{Name: "Gray", Value: "#6B7280"},
	{Name: "Royal Blue", Value: "#2563EB"},
	{Name: "Maroon", Value: "#7F1D1D"},
}

var Sizes = []string{"XS", "S", "M", "L", "XL", "2XL", "3XL"}

func LookupShirtColor(name string) (ShirtColor, bool) {
	for _, c := range ShirtColors {
		if c.Name == name {
			return c, true
		}
	}
	return ShirtColor{}, false
}

func ValidSize(size string) bool {
	return slices.Contains(Sizes, size)
}

var AcceptedDesignTypes = []string{"image/png", "image/jpeg", "image/svg+xml"}

// DesignFile is an uploaded file as declared by the client.
type DesignFile struct {
	Name string
	Type string
	Size int64
	Data []byte
}

type DesignAsset struct {
	FileName  string `json:"fileName"`
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
	DataURI   string `json:"dataUri"`
	Digest    string `json:"digest"`
}

type DraftState string

const (
	DraftEmpty   DraftState = "empty"
	DraftLoading DraftState = "loading"
	DraftReady   DraftState = "ready"
)

type Draft struct {
	State       DraftState      `json:"state"`
	DesignAsset *DesignAsset    `json:"designAsset,omitempty"`
	Color       ShirtColor      `json:"color"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

type OrderIntent string

const (
	IntentAddToCart OrderIntent = "add_to_cart"
	IntentBuyNow    OrderIntent = "buy_now"
)

func (i OrderIntent) Valid() bool {
	return i == IntentAddToCart || i == IntentBuyNow
}

// Confirmation reports the confirmed line. DraftState is the draft's state at confirmation;
// DraftLoading means the line was added without the design still being decoded.
type Confirmation struct {
	Item       LineItem   `json:"item"`
	Checkout   bool       `json:"checkout"`
	Redirect   string     `json:"redirect,omitempty"`
	DraftState DraftState `json:"draftState"`
}
