package services

import (
	"sync"
	"testing"

	"github.com/printcraft/storefront/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func classicWhite(qty int) models.LineItem {
	return models.LineItem{
		ID:          "classic-white",
		ProductName: "Classic White Tee",
		Color:       "White",
		Size:        "M",
		Quantity:    qty,
		UnitPrice:   price("24.99"),
	}
}

func TestCartMergesMatchingItems(t *testing.T) {
	cart := NewCartStore()

	cart.AddItem(classicWhite(1))
	cart.AddItem(classicWhite(2))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, "74.97", cart.TotalPrice().StringFixed(2))

	cart.UpdateQuantity("classic-white", 0)

	assert.Empty(t, cart.Items())
	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCartMergeKeepsExistingFields(t *testing.T) {
	cart := NewCartStore()
	cart.AddItem(classicWhite(1))

	later := classicWhite(4)
	later.ProductName = "Renamed"
	later.UnitPrice = price("99.99")
	cart.AddItem(later)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Classic White Tee", items[0].ProductName)
	assert.True(t, items[0].UnitPrice.Equal(price("24.99")))
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartAppendsDistinctKeysInOrder(t *testing.T) {
	cart := NewCartStore()

	black := classicWhite(1)
	black.Color = "Black"
	large := classicWhite(1)
	large.Size = "L"

	cart.AddItem(classicWhite(1))
	cart.AddItem(black)
	cart.AddItem(large)
	cart.AddItem(classicWhite(1))

	items := cart.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"White", "Black", "White"}, []string{items[0].Color, items[1].Color, items[2].Color})
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 4, cart.TotalItems())
}

func TestCartTotalsMatchItems(t *testing.T) {
	cart := NewCartStore()
	adds := []models.LineItem{
		{ID: "a", Color: "White", Size: "S", Quantity: 2, UnitPrice: price("10.50")},
		{ID: "b", Color: "Black", Size: "M", Quantity: 1, UnitPrice: price("3.33")},
		{ID: "a", Color: "White", Size: "S", Quantity: 5, UnitPrice: price("10.50")},
		{ID: "a", Color: "White", Size: "L", Quantity: 1, UnitPrice: price("10.50")},
	}
	for _, item := range adds {
		cart.AddItem(item)
	}

	snap := cart.Snapshot()
	require.Len(t, snap.Items, 3)

	wantItems := 0
	wantPrice := decimal.Zero
	for _, item := range snap.Items {
		wantItems += item.Quantity
		wantPrice = wantPrice.Add(item.Subtotal())
	}
	assert.Equal(t, 9, wantItems)
	assert.Equal(t, wantItems, snap.TotalItems)
	assert.True(t, wantPrice.Equal(snap.TotalPrice))
	assert.Equal(t, "87.33", snap.TotalPrice.StringFixed(2))
}

func TestCartUpdateQuantity(t *testing.T) {
	t.Run("negative removes", func(t *testing.T) {
		cart := NewCartStore()
		cart.AddItem(classicWhite(3))

		cart.UpdateQuantity("classic-white", -5)
		assert.Empty(t, cart.Items())
	})

	t.Run("positive sets", func(t *testing.T) {
		cart := NewCartStore()
		cart.AddItem(classicWhite(3))

		cart.UpdateQuantity("classic-white", 7)
		assert.Equal(t, 7, cart.TotalItems())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		cart := NewCartStore()
		cart.AddItem(classicWhite(3))

		cart.UpdateQuantity("missing", 0)
		assert.Equal(t, 3, cart.TotalItems())
	})

	t.Run("applies to every entry with the id", func(t *testing.T) {
		cart := NewCartStore()
		black := classicWhite(1)
		black.Color = "Black"
		other := models.LineItem{ID: "other", Color: "White", Size: "M", Quantity: 2, UnitPrice: price("1")}
		cart.AddItem(classicWhite(3))
		cart.AddItem(other)
		cart.AddItem(black)

		cart.UpdateQuantity("classic-white", 0)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "other", items[0].ID)
	})
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCartStore()
	black := classicWhite(1)
	black.Color = "Black"
	cart.AddItem(classicWhite(2))
	cart.AddItem(black)

	cart.RemoveItem("classic-white")
	assert.Empty(t, cart.Items())

	cart.RemoveItem("classic-white")
	assert.Empty(t, cart.Items())

	cart.AddItem(classicWhite(1))
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartClear(t *testing.T) {
	cart := NewCartStore()
	cart.ClearCart()
	assert.Equal(t, 0, cart.TotalItems())

	cart.AddItem(classicWhite(2))
	cart.AddItem(models.LineItem{ID: "x", Color: "Red", Size: "S", Quantity: 4, UnitPrice: price("5")})
	cart.ClearCart()

	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
	assert.Empty(t, cart.Snapshot().Items)
}

func TestCartItemsReturnsCopy(t *testing.T) {
	cart := NewCartStore()
	cart.AddItem(classicWhite(1))

	items := cart.Items()
	items[0].Quantity = 100

	assert.Equal(t, 1, cart.TotalItems())
}

func TestCartConcurrentAdds(t *testing.T) {
	cart := NewCartStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart.AddItem(classicWhite(1))
		}()
	}
	wg.Wait()

	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 50, cart.TotalItems())
}
