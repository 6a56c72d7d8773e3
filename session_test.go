package main

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsEmpty(t *testing.T) {
	sess := newSession("s1", NewMemorySessionStore(), seedOrders())

	assert.Equal(t, RoleNone, sess.Role())
	assert.Empty(t, sess.Cart.Items())
	assert.Len(t, sess.Orders.Orders(), 2)
}

func TestSessionRestoresFromStorage(t *testing.T) {
	store := NewMemorySessionStore()

	sess := newSession("s1", store, seedOrders())
	sess.SetRole(RoleCustomer)
	sess.Cart.Add("1")
	sess.Orders.SetStatus("ORD001", StatusPending)

	// same session id, same storage: prior state comes back
	reborn := newSession("s1", store, seedOrders())
	assert.Equal(t, RoleCustomer, reborn.Role())
	require.Len(t, reborn.Cart.Items(), 1)
	assert.Equal(t, "1", reborn.Cart.Items()[0].ProductID)

	order, ok := reborn.Orders.Get("ORD001")
	require.True(t, ok)
	assert.Equal(t, StatusPending, order.Status)
}

func TestSessionsDoNotShareState(t *testing.T) {
	store := NewMemorySessionStore()
	a := newSession("a", store, seedOrders())
	b := newSession("b", store, seedOrders())

	a.Cart.Add("1")
	a.Orders.SetStatus("ORD002", StatusDelivered)

	assert.Empty(t, b.Cart.Items())
	order, _ := b.Orders.Get("ORD002")
	assert.Equal(t, StatusShipped, order.Status)
}

func TestLogoutClearsRoleAndCart(t *testing.T) {
	store := NewMemorySessionStore()
	sess := newSession("s1", store, seedOrders())
	sess.SetRole(RoleAdmin)
	sess.Cart.Add("1")

	sess.Logout()

	assert.Equal(t, RoleNone, sess.Role())
	assert.Empty(t, sess.Cart.Items())
	assert.Len(t, sess.Orders.Orders(), 2)

	reborn := newSession("s1", store, seedOrders())
	assert.Equal(t, RoleNone, reborn.Role())
	assert.Empty(t, reborn.Cart.Items())
}

func TestUnparsableRecordStartsFresh(t *testing.T) {
	store := NewMemorySessionStore()
	require.NoError(t, store.Set("s1", cartStorageKey, "not json at all"))

	sess := newSession("s1", store, seedOrders())
	assert.Empty(t, sess.Cart.Items())
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	sess := m.Create()
	sess.SetRole(RoleAdmin)

	token, err := m.Token(sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Same(t, sess, resolved)
}

func TestResolveRejectsBadTokens(t *testing.T) {
	m := newTestManager()

	_, err := m.Resolve("")
	assert.Error(t, err)

	_, err = m.Resolve("garbage.token.value")
	assert.Error(t, err)

	// token signed by a manager with another secret
	other := NewSessionManager(NewMemorySessionStore(), []byte("other-secret"), dummyProducts, seedOrders())
	token, err := other.Token(other.Create())
	require.NoError(t, err)
	_, err = m.Resolve(token)
	assert.Error(t, err)
}

func TestResolveRejectsUnknownSession(t *testing.T) {
	m := newTestManager()
	stray := newSession("never-registered", NewMemorySessionStore(), nil)
	token, err := m.Token(stray)
	require.NoError(t, err)

	_, err = m.Resolve(token)
	assert.EqualError(t, err, "unknown session")
}

func TestSessionConcurrentRequests(t *testing.T) {
	sess := newSession("s1", NewMemorySessionStore(), seedOrders())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sess.SetRole(RoleCustomer)
			sess.Role()
			sess.Cart.Add("1")
			sess.Orders.SetStatus("ORD001", StatusShipped)
			if n%2 == 0 {
				sess.Cart.Items()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, RoleCustomer, sess.Role())
	assert.Len(t, sess.Cart.Items(), 1)
}

func TestIdleSessionsAreEvicted(t *testing.T) {
	store := NewMemorySessionStore()
	m := NewSessionManager(store, []byte("test-secret"), dummyProducts, seedOrders())
	sess := m.Create()
	sess.Cart.Add("1")
	token, err := m.Token(sess)
	require.NoError(t, err)

	m.mu.Lock()
	m.sessions[sess.ID].lastSeen = time.Now().Add(-2 * sessionTTL)
	m.mu.Unlock()

	_, err = m.Resolve(token)
	assert.EqualError(t, err, "unknown session")

	// the persisted records went with it
	_, ok, err := store.Get(sess.ID, cartStorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateSweepsExpiredSessions(t *testing.T) {
	m := newTestManager()
	old := m.Create()

	m.mu.Lock()
	m.sessions[old.ID].lastSeen = time.Now().Add(-2 * sessionTTL)
	m.mu.Unlock()

	m.Create()

	m.mu.Lock()
	_, ok := m.sessions[old.ID]
	m.mu.Unlock()
	assert.False(t, ok)
}

var errStorageDown = errors.New("storage down")

type failingStore struct{}

func (failingStore) Get(string, string) (string, bool, error) { return "", false, errStorageDown }
func (failingStore) Set(string, string, string) error         { return errStorageDown }
func (failingStore) Delete(string, string) error              { return errStorageDown }
func (failingStore) DropSession(string) error                 { return errStorageDown }

func TestStorageFailureDegradesToMemoryOnly(t *testing.T) {
	sess := newSession("s1", failingStore{}, seedOrders())

	sess.SetRole(RoleCustomer)
	sess.Cart.Add("1")
	sess.Logout()
	sess.Cart.Add("2")

	// every write failed, but the in-memory state is intact
	require.Len(t, sess.Cart.Items(), 1)
	assert.Equal(t, "2", sess.Cart.Items()[0].ProductID)
}
