package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Serialized record shapes. A record of an incompatible shape fails to parse
// and the container starts from its initial state instead.
type cartRecord struct {
	Items []CartItem `json:"items"`
}

type orderRecord struct {
	Orders []Order `json:"orders"`
}

type appRecord struct {
	Role Role `json:"role"`
}

// Session is the per-session application context: the role plus the cart and
// order containers, each mirrored into session storage on every change. One
// instance per session, handed to the HTTP layer explicitly — there are no
// package-level containers.
type Session struct {
	ID     string
	Cart   *CartStore
	Orders *OrderStore

	mu      sync.Mutex // guards role
	role    Role
	storage SessionStorage
}

func newSession(id string, storage SessionStorage, seed []Order) *Session {
	sess := &Session{ID: id, storage: storage}

	var cart cartRecord
	sess.load(cartStorageKey, &cart)
	sess.Cart = NewCartStore(cart.Items, func(items []CartItem) {
		sess.persist(cartStorageKey, cartRecord{Items: items})
	})

	orders := orderRecord{Orders: seed}
	sess.load(orderStorageKey, &orders)
	sess.Orders = NewOrderStore(orders.Orders, func(orders []Order) {
		sess.persist(orderStorageKey, orderRecord{Orders: orders})
	})

	var app appRecord
	sess.load(appStorageKey, &app)
	sess.role = app.Role

	return sess
}

func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Session) SetRole(role Role) {
	s.mu.Lock()
	s.role = role
	s.mu.Unlock()
	s.persist(appStorageKey, appRecord{Role: role})
}

// Logout resets the session to its initial shape: role cleared, cart
// wholesale destroyed. Orders stay — they are never removed.
func (s *Session) Logout() {
	s.mu.Lock()
	s.role = RoleNone
	s.mu.Unlock()
	s.Cart.Clear()
	if err := s.storage.Delete(s.ID, appStorageKey); err != nil {
		logger.Warn("session storage delete failed",
			zap.String("session_id", s.ID), zap.Error(err))
	}
}

// load restores a persisted record into v, leaving v untouched when no
// record exists or it does not parse.
func (s *Session) load(key string, v any) {
	raw, ok, err := s.storage.Get(s.ID, key)
	if err != nil {
		logger.Warn("session storage read failed",
			zap.String("session_id", s.ID), zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.Warn("session record did not parse, starting fresh",
			zap.String("session_id", s.ID), zap.String("key", key), zap.Error(err))
	}
}

// persist writes a full-state snapshot. A failing backend only costs
// durability: the containers stay authoritative in memory.
func (s *Session) persist(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Warn("session record did not serialize",
			zap.String("session_id", s.ID), zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.storage.Set(s.ID, key, string(b)); err != nil {
		logger.Warn("session storage write failed, state kept in memory only",
			zap.String("session_id", s.ID), zap.String("key", key), zap.Error(err))
	}
}

// Sessions idle past the token lifetime are unreachable (the token has
// expired), so they are evicted and their storage records dropped.
const sessionTTL = time.Hour

type sessionEntry struct {
	sess     *Session
	lastSeen time.Time
}

// SessionManager owns the live sessions and the tokens that reference them.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	storage  SessionStorage
	secret   []byte
	catalog  []Product
	seed     []Order
}

func NewSessionManager(storage SessionStorage, secret []byte, catalog []Product, seed []Order) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*sessionEntry),
		storage:  storage,
		secret:   secret,
		catalog:  catalog,
		seed:     seed,
	}
}

// Catalog returns the read-only product fixture.
func (m *SessionManager) Catalog() []Product {
	return m.catalog
}

// Create starts a new, empty session.
func (m *SessionManager) Create() *Session {
	sess := newSession(uuid.NewString(), m.storage, append([]Order(nil), m.seed...))
	now := time.Now()
	m.mu.Lock()
	m.evictExpiredLocked(now)
	m.sessions[sess.ID] = &sessionEntry{sess: sess, lastSeen: now}
	m.mu.Unlock()
	return sess
}

// Resolve maps a token back to its session. A token for a session this
// manager does not know, or one idle past the TTL, forces the caller into a
// fresh, empty session.
func (m *SessionManager) Resolve(tokenString string) (*Session, error) {
	claims, err := m.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[claims.SessionID]
	if !ok {
		return nil, errors.New("unknown session")
	}
	if now.Sub(entry.lastSeen) > sessionTTL {
		m.dropLocked(claims.SessionID)
		return nil, errors.New("unknown session")
	}
	entry.lastSeen = now
	return entry.sess, nil
}

func (m *SessionManager) evictExpiredLocked(now time.Time) {
	for id, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > sessionTTL {
			m.dropLocked(id)
		}
	}
}

func (m *SessionManager) dropLocked(id string) {
	delete(m.sessions, id)
	if err := m.storage.DropSession(id); err != nil {
		logger.Warn("session storage drop failed", zap.String("session_id", id), zap.Error(err))
	}
}

type Claims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.StandardClaims
}

func (m *SessionManager) Token(sess *Session) (string, error) {
	claims := &Claims{
		SessionID: sess.ID,
		Role:      string(sess.Role()),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * 60).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *SessionManager) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method)
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
