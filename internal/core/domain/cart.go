package domain

import "time"

type DeliveryOption string

const (
	DeliveryPickup   DeliveryOption = "pickup"
	DeliveryDelivery DeliveryOption = "delivery"
)

// DeliveryFee is the fixed surcharge applied per delivery-flagged cart
// line, in currency units.
const DeliveryFee = 15

// ParseDeliveryOption maps a raw string to a DeliveryOption. Anything
// other than "delivery" (including the empty string) is treated as pickup,
// the default.
func ParseDeliveryOption(s string) DeliveryOption {
	if s == string(DeliveryDelivery) {
		return DeliveryDelivery
	}
	return DeliveryPickup
}

// CartLine is one (product, delivery option) entry in the cart. A cart
// holds at most one line per (ProductID, DeliveryOption) pair; the same
// product may appear twice under different delivery options.
type CartLine struct {
	ProductID      int64          `json:"id"`
	Quantity       int            `json:"quantity"`
	DeliveryOption DeliveryOption `json:"deliveryOption"`
	AddedAt        time.Time      `json:"addedAt"`
}

// DeliveryCharge is the per-line delivery surcharge: DeliveryFee for
// delivery lines, zero for pickup.
func (l CartLine) DeliveryCharge() float64 {
	if l.DeliveryOption == DeliveryDelivery {
		return DeliveryFee
	}
	return 0
}

// CartItem is a cart line joined to its resolved catalog product.
type CartItem struct {
	Line    CartLine `json:"line"`
	Product Product  `json:"product"`
}

// Subtotal is price x quantity, without the delivery surcharge.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Line.Quantity)
}
