package main

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	BestSeller  bool    `json:"bestSeller"`
}

// CartItem references a product by id. Quantity is carried in the payload but
// every entry point sets it to 1.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Email   string `json:"email"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

// Order captures the cart products by value at checkout time, so later
// catalog changes never reach past orders. Only Status mutates afterwards.
type Order struct {
	ID           string       `json:"id"`
	CustomerName string       `json:"customerName"`
	Date         string       `json:"date"` // ISO calendar date, no time part
	Status       OrderStatus  `json:"status"`
	Products     []Product    `json:"products"`
	ShippingInfo ShippingInfo `json:"shippingInfo"`
}

type Role string

const (
	RoleNone     Role = ""
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type ReqRole struct {
	Role string `json:"role"`
}

type ReqStatus struct {
	Status string `json:"status"`
}
