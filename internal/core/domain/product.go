package domain

// Product is a catalog record. Everything except Stock and InStock is
// immutable at runtime; Stock is mutated only by the checkout's
// stock-decrement step.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Discount      int      `json:"discount"` // percent, 0-100
	Rating        float64  `json:"rating"`   // 0-5
	Reviews       int      `json:"reviews"`
	Images        []string `json:"images"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Stock         int      `json:"stock"`
	InStock       bool     `json:"inStock"`
}

// Available reports whether the product can satisfy an order of qty units.
func (p Product) Available(qty int) bool {
	return p.InStock && p.Stock >= qty
}
