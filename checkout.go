package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var requiredShippingFields = []string{"name", "address", "city", "state", "zip", "email"}

func validateShippingInfo(info ShippingInfo) error {
	values := map[string]string{
		"name":    info.Name,
		"address": info.Address,
		"city":    info.City,
		"state":   info.State,
		"zip":     info.Zip,
		"email":   info.Email,
	}
	var missing []string
	for _, field := range requiredShippingFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("please fill in all required fields: %s", strings.Join(missing, ", "))
	}
	if !emailPattern.MatchString(info.Email) {
		return errors.New("please enter a valid email address")
	}
	return nil
}

// Checkout turns the session's cart into a new pending order. Rejections come
// back as a reason string and leave both the cart and the order list
// untouched. On success the order is appended and the cart cleared.
func Checkout(sess *Session, catalog []Product, info ShippingInfo) (Order, error) {
	resolved := ResolveCart(sess.Cart.Items(), catalog)
	if len(resolved) == 0 {
		return Order{}, errors.New("cart is empty")
	}
	if err := validateShippingInfo(info); err != nil {
		return Order{}, err
	}

	now := time.Now()
	products := make([]Product, 0, len(resolved))
	for _, item := range resolved {
		products = append(products, item.Product)
	}
	order := Order{
		ID:           fmt.Sprintf("ORD%d", now.UnixMilli()),
		CustomerName: info.Name,
		Date:         now.Format("2006-01-02"),
		Status:       StatusPending,
		Products:     products,
		ShippingInfo: info,
	}

	sess.Orders.Append(order)
	sess.Cart.Clear()
	return order, nil
}
