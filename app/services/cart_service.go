package services

import (
	"sync"

	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/utils/calc"
	"github.com/shopspring/decimal"
)

// CartStore is the line-item cart of a single session. All mutators are total: they never
// fail and leave the cart consistent. Totals are recomputed from the items on every read.
type CartStore struct {
	mu    sync.Mutex
	items []models.LineItem
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddItem merges item into an existing entry with the same (id, color, size), summing
// quantities and keeping the existing entry's other fields, or appends it.
func (s *CartStore) AddItem(item models.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameKey(item) {
			s.items[i].Quantity += item.Quantity
			return
		}
	}
	s.items = append(s.items, item)
}

// RemoveItem drops every entry with the given id, whatever its color and size.
func (s *CartStore) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	clearTail(s.items, len(kept))
	s.items = kept
}

// UpdateQuantity sets the quantity of every entry with the given id to max(0, quantity),
// removing entries that end at zero.
func (s *CartStore) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity = calc.ClampMin(quantity, 0)

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			item.Quantity = quantity
		}
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	clearTail(s.items, len(kept))
	s.items = kept
}

func (s *CartStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}

func (s *CartStore) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.LineItem(nil), s.items...)
}

func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return totalItems(s.items)
}

func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return totalPrice(s.items)
}

// Snapshot returns items and totals observed under a single lock.
func (s *CartStore) Snapshot() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := append([]models.LineItem{}, s.items...)
	return models.Cart{
		Items:      items,
		TotalItems: totalItems(items),
		TotalPrice: totalPrice(items),
	}
}

func totalItems(items []models.LineItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

func totalPrice(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(calc.LineTotal(item.UnitPrice, item.Quantity))
	}
	return sum
}

// clearTail zeroes the entries left behind by in-place filtering so removed design
// payloads can be collected.
func clearTail(items []models.LineItem, from int) {
	for i := from; i < len(items); i++ {
		items[i] = models.LineItem{}
	}
}
