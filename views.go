package main

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Everything in this file is a pure function over value snapshots, recomputed
// on every request. Inputs are never mutated.

const (
	freeShippingAbove = 50.0
	shippingSurcharge = 5.99
	ordersPerPage     = 10
)

type ResolvedCartItem struct {
	CartItem
	Product Product `json:"product"`
}

type CartSummary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ResolveCart joins cart entries with the catalog. Entries whose product no
// longer resolves are dropped, not repaired and not reported.
func ResolveCart(items []CartItem, catalog []Product) []ResolvedCartItem {
	resolved := make([]ResolvedCartItem, 0, len(items))
	for _, item := range items {
		for _, p := range catalog {
			if p.ID == item.ProductID {
				resolved = append(resolved, ResolvedCartItem{CartItem: item, Product: p})
				break
			}
		}
	}
	return resolved
}

// CartTotals sums resolved product prices; each entry counts once regardless
// of quantity. Shipping is free strictly above the threshold.
func CartTotals(items []CartItem, catalog []Product) CartSummary {
	var subtotal float64
	for _, item := range ResolveCart(items, catalog) {
		subtotal += item.Product.Price
	}
	shipping := shippingSurcharge
	if subtotal > freeShippingAbove {
		shipping = 0
	}
	return CartSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

type SortKey string

const (
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortAlphaAsc    SortKey = "alpha-asc"
	SortAlphaDesc   SortKey = "alpha-desc"
	SortBestSellers SortKey = "best-sellers"
)

type ProductFilter struct {
	Search          string
	Categories      []string
	MinPrice        float64
	MaxPrice        float64
	BestSellersOnly bool
	Sort            SortKey
}

// FilterProducts applies search, category, inclusive price range and
// best-seller filters in that order, then sorts. The catalog slice is left
// untouched.
func FilterProducts(catalog []Product, f ProductFilter) []Product {
	products := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		if len(f.Categories) > 0 && !containsString(f.Categories, p.Category) {
			continue
		}
		if p.Price < f.MinPrice || p.Price > f.MaxPrice {
			continue
		}
		if f.BestSellersOnly && !p.BestSeller {
			continue
		}
		products = append(products, p)
	}
	sortProducts(products, f.Sort)
	return products
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortAlphaAsc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortAlphaDesc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) > 0
		})
	case SortBestSellers:
		// stable partition, best sellers first
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BestSeller && !products[j].BestSeller
		})
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

type DateWindow string

const (
	WindowAll   DateWindow = ""
	WindowToday DateWindow = "today"
	WindowWeek  DateWindow = "week"
	WindowMonth DateWindow = "month"
)

type OrderFilter struct {
	Search string
	Status OrderStatus // empty matches all
	Date   DateWindow
}

// FilterOrders matches the search term against order id, customer name and
// contained product names, case-insensitively, then applies the exact status
// match and the relative date window against now.
func FilterOrders(orders []Order, f OrderFilter, now time.Time) []Order {
	filtered := make([]Order, 0, len(orders))
	for _, order := range orders {
		if f.Search != "" && !orderMatches(order, strings.ToLower(f.Search)) {
			continue
		}
		if f.Status != "" && order.Status != f.Status {
			continue
		}
		if !inDateWindow(order.Date, f.Date, now) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}

func orderMatches(order Order, needle string) bool {
	if strings.Contains(strings.ToLower(order.ID), needle) ||
		strings.Contains(strings.ToLower(order.CustomerName), needle) {
		return true
	}
	for _, p := range order.Products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return true
		}
	}
	return false
}

func inDateWindow(date string, window DateWindow, now time.Time) bool {
	switch window {
	case WindowToday:
		return date == now.Format("2006-01-02")
	case WindowWeek:
		return orderedAfter(date, now.AddDate(0, 0, -7))
	case WindowMonth:
		return orderedAfter(date, now.AddDate(0, 0, -30))
	}
	return true
}

func orderedAfter(date string, cutoff time.Time) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return !d.Before(cutoff)
}

// PaginateOrders slices out one page of at most ordersPerPage orders. Pages
// are 1-based; out-of-range pages come back empty.
func PaginateOrders(orders []Order, page int) []Order {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * ordersPerPage
	if start >= len(orders) {
		return nil
	}
	end := start + ordersPerPage
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

func TotalPages(count int) int {
	return (count + ordersPerPage - 1) / ordersPerPage
}

// OrderTotal sums the captured product prices. There is no quantity factor:
// each product counts once, matching the cart's one-entry-per-product rule.
func OrderTotal(order Order) float64 {
	var total float64
	for _, p := range order.Products {
		total += p.Price
	}
	return total
}
