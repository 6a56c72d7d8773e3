package main

import "sync"

// OrderStore holds the order list, seeded from fixture data. Orders are
// appended at checkout and never removed; only their status changes.
// Mutations are serialized internally, same as CartStore.
type OrderStore struct {
	mu       sync.Mutex
	orders   []Order
	onChange func([]Order)
}

func NewOrderStore(initial []Order, onChange func([]Order)) *OrderStore {
	return &OrderStore{
		orders:   append([]Order(nil), initial...),
		onChange: onChange,
	}
}

// Append adds a fully-formed order to the end of the list. The checkout flow
// owns validation; the store accepts whatever it is handed.
func (s *OrderStore) Append(order Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, order)
	s.notifyLocked()
}

// SetStatus replaces the status of the order with the given id. Any status
// value is accepted unconditionally; there is no transition graph. Unknown
// ids are a silent no-op.
func (s *OrderStore) SetStatus(orderID string, status OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			s.notifyLocked()
			return
		}
	}
}

// Get returns the order with the given id by value.
func (s *OrderStore) Get(orderID string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return Order{}, false
}

// Orders returns a copy of the list.
func (s *OrderStore) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *OrderStore) snapshotLocked() []Order {
	return append([]Order(nil), s.orders...)
}

func (s *OrderStore) notifyLocked() {
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
}
