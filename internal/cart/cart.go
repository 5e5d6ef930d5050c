// Package cart maintains the ordered list of finalized purchases. The cart
// is in-memory only and cleared on explicit restart.
package cart

import (
	"sync"

	"github.com/google/uuid"

	"pixibai/internal/domain"
)

type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// Add appends a finalized item under a freshly generated id and returns the
// stored copy. Item identity is unique per item, so the same product can
// appear multiple times as distinct lines.
func (s *Store) Add(item domain.CartItem) domain.CartItem {
	item.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return item
}

// Remove deletes the item with the given id. Removing an unknown id is a
// no-op, not an error.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Items returns the cart contents in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalCents sums the stored item prices. Prices were fixed at finalization,
// so the total never moves with later catalog changes.
func (s *Store) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, item := range s.items {
		total += item.PriceCents
	}
	return total
}

// Count sums item quantities, the number shown on the cart badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
