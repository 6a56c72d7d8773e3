package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type APIServer struct {
	listenAddr string
	sessions   *SessionManager
}

func NewAPIServer(listenAddr string, sessions *SessionManager) *APIServer {
	return &APIServer{
		listenAddr: listenAddr,
		sessions:   sessions,
	}
}

func enableCors(w *http.ResponseWriter, req *http.Request) {
	(*w).Header().Set("Access-Control-Allow-Origin", "*")
	(*w).Header().Set("Access-Control-Allow-Methods", "DELETE, POST, GET, OPTIONS")
	(*w).Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Authorization, X-Requested-With, Authorization")
	(*w).Header().Set("Access-Control-Allow-Credentials", "true")
}

func (s *APIServer) Run() error {
	mux := s.routes()
	logger.Info("JSON API server running", zap.String("addr", s.listenAddr))
	return http.ListenAndServe(s.listenAddr, mux)
}

func (s *APIServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/role", makeHTTPHandleFunc(s.handleRole))
	mux.HandleFunc("/logout", s.withSession(makeHTTPHandleFunc(s.handleLogout)))
	mux.HandleFunc("/products", makeHTTPHandleFunc(s.handleProducts))
	mux.HandleFunc("/product/{id}", makeHTTPHandleFunc(s.handleProductByID))
	mux.HandleFunc("/cart", s.withSession(makeHTTPHandleFunc(s.handleCart)))
	mux.HandleFunc("/cart/clear", s.withSession(makeHTTPHandleFunc(s.handleCartClear)))
	mux.HandleFunc("/cart/{action}/{id}", s.withSession(makeHTTPHandleFunc(s.handleCartActions)))
	mux.HandleFunc("/checkout", s.withSession(makeHTTPHandleFunc(s.handleCheckout)))
	mux.HandleFunc("/orders", s.withAdmin(makeHTTPHandleFunc(s.handleOrders)))
	mux.HandleFunc("/order/{id}", s.withAdmin(makeHTTPHandleFunc(s.handleOrderByID)))
	mux.HandleFunc("/order/{id}/status", s.withAdmin(makeHTTPHandleFunc(s.handleOrderStatus)))
	return mux
}

// handleRole picks the session's operating mode. There is no authentication
// behind it; the role only gates which views are reachable.
func (s *APIServer) handleRole(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return WriteJSON(w, http.StatusMethodNotAllowed, ApiError{Error: "http method not supported"})
	}
	req := new(ReqRole)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return err
	}
	role := Role(req.Role)
	if role != RoleCustomer && role != RoleAdmin {
		return WriteJSON(w, http.StatusBadRequest, ApiError{Error: "role not supported"})
	}

	// reuse the caller's session when the token still resolves, otherwise
	// start a fresh one
	sess, err := s.sessions.Resolve(r.Header.Get("X-Authorization"))
	if err != nil {
		sess = s.sessions.Create()
	}
	sess.SetRole(role)

	token, err := s.sessions.Token(sess)
	if err != nil {
		return err
	}
	w.Header().Set("X-Authorization", token)
	return WriteJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
		Role  Role   `json:"role"`
	}{Token: token, Role: role})
}

func (s *APIServer) handleLogout(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return WriteJSON(w, http.StatusMethodNotAllowed, ApiError{Error: "http method not supported"})
	}
	sessionFrom(r).Logout()
	return WriteJSON(w, http.StatusOK, "logged out")
}

func (s *APIServer) handleProducts(w http.ResponseWriter, r *http.Request) error {
	filter, err := productFilterFromQuery(r)
	if err != nil {
		return err
	}
	products := FilterProducts(s.sessions.Catalog(), filter)
	return WriteJSON(w, http.StatusOK, products)
}

func productFilterFromQuery(r *http.Request) (ProductFilter, error) {
	q := r.URL.Query()
	filter := ProductFilter{
		Search:          q.Get("search"),
		Categories:      q["category"],
		MaxPrice:        math.MaxFloat64,
		BestSellersOnly: q.Get("bestsellers") == "true",
		Sort:            SortPriceAsc,
	}
	if v := q.Get("min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ProductFilter{}, err
		}
		filter.MinPrice = min
	}
	if v := q.Get("max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ProductFilter{}, err
		}
		filter.MaxPrice = max
	}
	switch key := SortKey(q.Get("sort")); key {
	case SortPriceAsc, SortPriceDesc, SortAlphaAsc, SortAlphaDesc, SortBestSellers:
		filter.Sort = key
	}
	return filter, nil
}

func (s *APIServer) handleProductByID(w http.ResponseWriter, r *http.Request) error {
	id := r.PathValue("id")
	for _, p := range s.sessions.Catalog() {
		if p.ID == id {
			return WriteJSON(w, http.StatusOK, p)
		}
	}
	return WriteJSON(w, http.StatusBadRequest, ApiError{Error: "does not exist"})
}

func (s *APIServer) handleCart(w http.ResponseWriter, r *http.Request) error {
	sess := sessionFrom(r)
	items := sess.Cart.Items()
	catalog := s.sessions.Catalog()
	return WriteJSON(w, http.StatusOK, struct {
		Items []ResolvedCartItem `json:"items"`
		CartSummary
	}{
		Items:       ResolveCart(items, catalog),
		CartSummary: CartTotals(items, catalog),
	})
}

func (s *APIServer) handleCartActions(w http.ResponseWriter, r *http.Request) error {
	sess := sessionFrom(r)
	action := r.PathValue("action")
	id := r.PathValue("id")
	switch action {
	case "add":
		sess.Cart.Add(id)
		return WriteJSON(w, http.StatusOK, "product added")
	case "delete":
		sess.Cart.Remove(id)
		return WriteJSON(w, http.StatusOK, "product removed")
	default:
		return WriteJSON(w, http.StatusBadRequest, ApiError{Error: "action not supported"})
	}
}

func (s *APIServer) handleCartClear(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return WriteJSON(w, http.StatusMethodNotAllowed, ApiError{Error: "http method not supported"})
	}
	sessionFrom(r).Cart.Clear()
	return WriteJSON(w, http.StatusOK, "cart cleared")
}

func (s *APIServer) handleCheckout(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return WriteJSON(w, http.StatusMethodNotAllowed, ApiError{Error: "http method not supported"})
	}
	info := new(ShippingInfo)
	if err := json.NewDecoder(r.Body).Decode(info); err != nil {
		return err
	}
	order, err := Checkout(sessionFrom(r), s.sessions.Catalog(), *info)
	if err != nil {
		return WriteJSON(w, http.StatusBadRequest, ApiError{Error: err.Error()})
	}
	return WriteJSON(w, http.StatusOK, order)
}

type orderRow struct {
	Order
	Total float64 `json:"total"`
}

func (s *APIServer) handleOrders(w http.ResponseWriter, r *http.Request) error {
	sess := sessionFrom(r)
	q := r.URL.Query()

	filter := OrderFilter{
		Search: q.Get("search"),
		Date:   DateWindow(q.Get("date")),
	}
	if status := q.Get("status"); status != "" && status != "all" {
		filter.Status = OrderStatus(status)
	}

	filtered := FilterOrders(sess.Orders.Orders(), filter, time.Now())
	page := 1
	if v := q.Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}

	pageOrders := PaginateOrders(filtered, page)
	rows := make([]orderRow, 0, len(pageOrders))
	for _, order := range pageOrders {
		rows = append(rows, orderRow{Order: order, Total: OrderTotal(order)})
	}
	return WriteJSON(w, http.StatusOK, struct {
		Orders     []orderRow `json:"orders"`
		Page       int        `json:"page"`
		TotalPages int        `json:"totalPages"`
		Count      int        `json:"count"`
	}{
		Orders:     rows,
		Page:       page,
		TotalPages: TotalPages(len(filtered)),
		Count:      len(filtered),
	})
}

func (s *APIServer) handleOrderByID(w http.ResponseWriter, r *http.Request) error {
	sess := sessionFrom(r)
	order, ok := sess.Orders.Get(r.PathValue("id"))
	if !ok {
		return WriteJSON(w, http.StatusBadRequest, ApiError{Error: "does not exist"})
	}
	return WriteJSON(w, http.StatusOK, orderRow{Order: order, Total: OrderTotal(order)})
}

// handleOrderStatus accepts any status value for any order. An unknown order
// id is a silent no-op, mirroring the reference-miss semantics of the stores.
func (s *APIServer) handleOrderStatus(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return WriteJSON(w, http.StatusMethodNotAllowed, ApiError{Error: "http method not supported"})
	}
	req := new(ReqStatus)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return err
	}
	sessionFrom(r).Orders.SetStatus(r.PathValue("id"), OrderStatus(req.Status))
	return WriteJSON(w, http.StatusOK, "status updated")
}

type ctxKey string

const sessionCtxKey ctxKey = "session"

func sessionFrom(r *http.Request) *Session {
	return r.Context().Value(sessionCtxKey).(*Session)
}

func (s *APIServer) withSession(handleFunc http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enableCors(&w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		sess, err := s.sessions.Resolve(r.Header.Get("X-Authorization"))
		if err != nil {
			WriteJSON(w, http.StatusUnauthorized, ApiError{Error: "forbidden"})
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
		handleFunc(w, r.WithContext(ctx))
	}
}

func (s *APIServer) withAdmin(handleFunc http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enableCors(&w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		sess, err := s.sessions.Resolve(r.Header.Get("X-Authorization"))
		if err != nil || sess.Role() != RoleAdmin {
			WriteJSON(w, http.StatusUnauthorized, ApiError{Error: "forbidden"})
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
		handleFunc(w, r.WithContext(ctx))
	}
}

func makeHTTPHandleFunc(f APIfunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enableCors(&w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if err := f(w, r); err != nil {
			logger.Warn("handler error", zap.String("path", r.URL.Path), zap.Error(err))
			WriteJSON(w, http.StatusBadRequest, ApiError{Error: err.Error()})
		}
	}
}

type APIfunc func(http.ResponseWriter, *http.Request) error

type ApiError struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
