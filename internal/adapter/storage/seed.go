package storage

import "github.com/dparedes/techstore/internal/core/domain"

// DemoCatalog returns the built-in product dataset used by the memory
// backend and the MySQL seeder.
func DemoCatalog() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Name: "MacBook Pro 14-inch", Brand: "Apple", Category: "laptops",
			Price: 1999, OriginalPrice: 2299, Discount: 13, Rating: 4.8, Reviews: 127,
			Images:      []string{"images/macbook-pro-14.webp"},
			Description: "14-inch MacBook Pro with the M3 Pro chip, 18GB of unified memory and a 512GB SSD.",
			Features:    []string{"Apple M3 Pro chip", "18GB unified memory", "512GB SSD", "Liquid Retina XDR display"},
			Stock:       10, InStock: true,
		},
		{
			ID: 2, Name: "Dell XPS 13 Plus", Brand: "Dell", Category: "laptops",
			Price: 1299, OriginalPrice: 1499, Discount: 13, Rating: 4.6, Reviews: 95,
			Images:      []string{"images/dell-xps-13.jpg"},
			Description: "Dell XPS 13 Plus with an Intel processor and OLED display.",
			Features:    []string{"Intel Core i7", "16GB LPDDR5", "512GB SSD"},
			Stock:       6, InStock: true,
		},
		{
			ID: 3, Name: "iPhone 15 Pro Max", Brand: "Apple", Category: "smartphones",
			Price: 1199, OriginalPrice: 1299, Discount: 8, Rating: 4.9, Reviews: 243,
			Images:      []string{"images/iphone-15-front.webp"},
			Description: "iPhone 15 Pro Max with a titanium body and advanced 48MP camera.",
			Features:    []string{"A17 Pro chip", "48MP camera", "Titanium"},
			Stock:       8, InStock: true,
		},
		{
			ID: 4, Name: "Google Pixel 8 Pro", Brand: "Google", Category: "smartphones",
			Price: 999, OriginalPrice: 1099, Discount: 9, Rating: 4.7, Reviews: 134,
			Images:      []string{"images/pixel-8-pro.webp"},
			Description: "Google Pixel 8 Pro with the Tensor G3 chip and computational photography.",
			Features:    []string{"Tensor G3 chip", "Advanced camera", "Years of updates"},
			Stock:       12, InStock: true,
		},
		{
			ID: 5, Name: "iPad Pro 12.9-inch", Brand: "Apple", Category: "tablets",
			Price: 1099, OriginalPrice: 1199, Discount: 8, Rating: 4.8, Reviews: 156,
			Images:      []string{"images/ipad-pro-129.jpg"},
			Description: "12.9-inch iPad Pro with the M2 chip and Liquid Retina XDR display.",
			Features:    []string{"M2 chip", "Liquid Retina XDR display", "Apple Pencil support"},
			Stock:       14, InStock: true,
		},
		{
			ID: 6, Name: "Samsung Galaxy Tab S9+", Brand: "Samsung", Category: "tablets",
			Price: 899, OriginalPrice: 999, Discount: 10, Rating: 4.6, Reviews: 87,
			Images:      []string{"images/galaxy-tab-s9.webp"},
			Description: "Galaxy Tab S9+ with the S Pen and an AMOLED display.",
			Features:    []string{"S Pen", "AMOLED display", "Long battery life"},
			Stock:       10, InStock: true,
		},
		{
			ID: 7, Name: "Sony WH-1000XM5", Brand: "Sony", Category: "accessories",
			Price: 399, OriginalPrice: 449, Discount: 11, Rating: 4.9, Reviews: 312,
			Images:      []string{"images/sony-wh1000xm5.jpg"},
			Description: "Wireless noise-cancelling headphones.",
			Features:    []string{"Noise cancelling", "Up to 30 hours of battery"},
			Stock:       0, InStock: false,
		},
		{
			ID: 8, Name: "PlayStation 5", Brand: "Sony", Category: "gaming",
			Price: 499, OriginalPrice: 559, Discount: 11, Rating: 4.7, Reviews: 401,
			Images:      []string{"images/playstation-5.webp"},
			Description: "PlayStation 5 with an ultra-fast SSD and 3D audio.",
			Features:    []string{"Ultra-fast SSD", "3D audio", "DualSense"},
			Stock:       0, InStock: false,
		},
	}
}
