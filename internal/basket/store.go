// Package basket holds the per-session basket: which products a visitor picked
// and how many of each.
package basket

import (
	"sync"

	"storefront/internal/domain"
)

// Store keeps basket lines in first-add order. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	lines []domain.BasketLine
}

func NewStore() *Store {
	return &Store{}
}

// Add puts one more unit of product into the basket.
func (s *Store) Add(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity++
		return
	}
	s.lines = append(s.lines, domain.BasketLine{
		ID:       product.ID,
		Name:     product.Name,
		Quantity: 1,
	})
}

// Remove takes one unit of product out of the basket. The line disappears when
// its last unit is removed; removing an absent product does nothing.
func (s *Store) Remove(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(product.ID)
	if i < 0 {
		return
	}
	if s.lines[i].Quantity > 1 {
		s.lines[i].Quantity--
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

func (s *Store) Snapshot() []domain.BasketLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.BasketLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the units of productID in the basket, 0 when absent.
func (s *Store) Quantity(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

func (s *Store) indexOf(productID int) int {
	for i := range s.lines {
		if s.lines[i].ID == productID {
			return i
		}
	}
	return -1
}
