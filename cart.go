package main

import "sync"

// CartStore holds the products a session intends to buy, one entry per
// product id. It knows nothing about persistence; onChange receives a full
// snapshot after every mutation and a persistence adapter takes it from
// there. Mutations are serialized internally: a session is logically
// single-writer, but nothing stops a client from firing concurrent requests
// with the same token.
type CartStore struct {
	mu       sync.Mutex
	items    []CartItem
	onChange func([]CartItem)
}

func NewCartStore(initial []CartItem, onChange func([]CartItem)) *CartStore {
	return &CartStore{
		items:    append([]CartItem(nil), initial...),
		onChange: onChange,
	}
}

// Add appends an entry with quantity 1. Adding a product that is already in
// the cart is a no-op, so two entries can never share a product id. Unknown
// product ids are accepted as-is; derived views filter dangling references.
func (s *CartStore) Add(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ProductID == productID {
			return
		}
	}
	s.items = append(s.items, CartItem{ProductID: productID, Quantity: 1})
	s.notifyLocked()
}

// Remove drops the entry for productID if present, no-op otherwise.
func (s *CartStore) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.notifyLocked()
			return
		}
	}
}

func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.notifyLocked()
}

// Items returns a copy; callers never see the backing slice.
func (s *CartStore) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CartStore) snapshotLocked() []CartItem {
	return append([]CartItem(nil), s.items...)
}

// notifyLocked runs the subscriber under the lock so persisted snapshots
// land in mutation order.
func (s *CartStore) notifyLocked() {
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
}
