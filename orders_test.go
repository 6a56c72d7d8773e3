package main

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStoreSeededFromFixture(t *testing.T) {
	store := NewOrderStore(seedOrders(), nil)
	orders := store.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD001", orders[0].ID)
	assert.Equal(t, "ORD002", orders[1].ID)
}

func TestOrderStoreAppend(t *testing.T) {
	store := NewOrderStore(seedOrders(), nil)
	store.Append(Order{ID: "ORD003", Status: StatusPending})
	orders := store.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD003", orders[2].ID)
}

func TestSetStatusHasNoTransitionGuard(t *testing.T) {
	store := NewOrderStore(seedOrders(), nil)

	store.SetStatus("ORD001", StatusDelivered)
	store.SetStatus("ORD001", StatusPending)

	order, ok := store.Get("ORD001")
	require.True(t, ok)
	assert.Equal(t, StatusPending, order.Status)
}

func TestSetStatusUnknownIDIsNoop(t *testing.T) {
	notified := 0
	store := NewOrderStore(seedOrders(), func([]Order) { notified++ })

	store.SetStatus("ORD999", StatusShipped)

	assert.Zero(t, notified)
	for _, order := range store.Orders() {
		assert.NotEqual(t, "ORD999", order.ID)
	}
}

func TestOrderStoreConcurrentAccess(t *testing.T) {
	store := NewOrderStore(seedOrders(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Append(Order{ID: fmt.Sprintf("ORD9%02d", n), Status: StatusPending})
			store.SetStatus("ORD001", StatusShipped)
			store.Orders()
			store.Get("ORD002")
		}(i)
	}
	wg.Wait()

	orders := store.Orders()
	assert.Len(t, orders, 52)
	order, ok := store.Get("ORD001")
	require.True(t, ok)
	assert.Equal(t, StatusShipped, order.Status)
}

func TestOrderStoreNotifiesFullSnapshot(t *testing.T) {
	var snapshots [][]Order
	store := NewOrderStore(seedOrders(), func(orders []Order) {
		snapshots = append(snapshots, orders)
	})

	store.SetStatus("ORD002", StatusDelivered)

	require.Len(t, snapshots, 1)
	require.Len(t, snapshots[0], 2)
	assert.Equal(t, StatusDelivered, snapshots[0][1].Status)
}
