package domain

import "time"

// Customer is the checkout input contract. Name, Email and Address are
// required; the rest is optional.
type Customer struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	PostalCode     string         `json:"postalCode"`
	PaymentMethod  string         `json:"paymentMethod"`
	DeliveryOption DeliveryOption `json:"deliveryOption"`
}

// OrderItem snapshots one cart line at checkout time. Later catalog
// mutations do not affect it.
type OrderItem struct {
	ProductID      int64          `json:"productId"`
	Name           string         `json:"name"`
	UnitPrice      float64        `json:"unitPrice"`
	Quantity       int            `json:"quantity"`
	DeliveryOption DeliveryOption `json:"deliveryOption"`
	LineTotal      float64        `json:"lineTotal"`
}

// Order is the result of a successful checkout. It is a return value,
// not a persisted aggregate: once created it has no further lifecycle.
type Order struct {
	ID        string      `json:"orderId"`
	Items     []OrderItem `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Shipping  float64     `json:"shipping"`
	Total     float64     `json:"total"`
	Customer  Customer    `json:"customer"`
	CreatedAt time.Time   `json:"createdAt"`
}
