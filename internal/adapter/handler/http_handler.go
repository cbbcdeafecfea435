package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dparedes/techstore/internal/core/domain"
	"github.com/dparedes/techstore/internal/core/service"
)

type HTTPHandler struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	checkout *service.CheckoutService
}

func NewHTTPHandler(catalog *service.CatalogService, cart *service.CartService, checkout *service.CheckoutService) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, cart: cart, checkout: checkout}
}

// Register mounts every route on the mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/featured", h.FeaturedProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/products/{id}/related", h.RelatedProducts)

	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddCartItem)
	mux.HandleFunc("PUT /api/cart/items", h.UpdateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveCartItem)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)

	mux.HandleFunc("GET /api/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /api/wishlist", h.AddWishlistItem)
	mux.HandleFunc("DELETE /api/wishlist/{id}", h.RemoveWishlistItem)

	mux.HandleFunc("POST /api/checkout", h.Checkout)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type cartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

type addItemRequest struct {
	ProductID      int64  `json:"productId"`
	Quantity       int    `json:"quantity"`
	DeliveryOption string `json:"deliveryOption"`
}

type wishlistRequest struct {
	ProductID int64 `json:"productId"`
}

type checkoutResponse struct {
	Success  bool               `json:"success"`
	OrderID  string             `json:"orderId"`
	Subtotal float64            `json:"subtotal"`
	Shipping float64            `json:"shipping"`
	Total    float64            `json:"total"`
	Items    []domain.OrderItem `json:"items"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProducts applies the catalog filters in sequence: search, category,
// brand, price range, then sort.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	products, err := h.catalog.Search(ctx, q.Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}

	if category := q.Get("category"); category != "" && category != "all" {
		products = filterInPlace(products, func(p domain.Product) bool { return p.Category == category })
	}
	if brand := q.Get("brand"); brand != "" && brand != "all" {
		products = filterInPlace(products, func(p domain.Product) bool { return strings.EqualFold(p.Brand, brand) })
	}
	minPrice, _ := strconv.ParseFloat(q.Get("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(q.Get("max_price"), 64)
	if minPrice > 0 || maxPrice > 0 {
		products = filterInPlace(products, func(p domain.Product) bool {
			if p.Price < minPrice {
				return false
			}
			return maxPrice <= 0 || p.Price <= maxPrice
		})
	}

	products = h.catalog.Sort(products, q.Get("sort"))
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid product id"})
		return
	}
	product, err := h.catalog.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "product not found"})
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid product id"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	related, err := h.catalog.Related(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, related)
}

func (h *HTTPHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	featured, err := h.catalog.Featured(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, featured)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r)
}

func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	if req.ProductID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "missing product id"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	opt := domain.ParseDeliveryOption(req.DeliveryOption)
	if err := h.cart.AddItem(r.Context(), req.ProductID, req.Quantity, opt); err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, r)
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	opt := domain.ParseDeliveryOption(req.DeliveryOption)
	if err := h.cart.UpdateQuantity(r.Context(), req.ProductID, opt, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, r)
}

func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid product id"})
		return
	}
	if err := h.cart.RemoveItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, r)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w, r)
}

func (h *HTTPHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.cart.WishlistItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	if err := h.cart.AddToWishlist(r.Context(), req.ProductID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, errorResponse{Success: true, Message: "added to wishlist"})
}

func (h *HTTPHandler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid product id"})
		return
	}
	if err := h.cart.RemoveFromWishlist(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, errorResponse{Success: true, Message: "removed from wishlist"})
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var customer domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	customer.DeliveryOption = domain.ParseDeliveryOption(string(customer.DeliveryOption))

	order, err := h.checkout.Submit(r.Context(), customer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		Success:  true,
		OrderID:  order.ID,
		Subtotal: order.Subtotal,
		Shipping: order.Shipping,
		Total:    order.Total,
		Items:    order.Items,
	})
}

func (h *HTTPHandler) writeCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.cart.Items(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := h.cart.Total(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{
		Items:     items,
		Total:     total,
		ItemCount: h.cart.ItemCount(),
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		status = http.StatusNotFound
		message = "product not found"
	case errors.Is(err, service.ErrInsufficientStock):
		status = http.StatusGone
		message = "insufficient stock"
	case errors.Is(err, service.ErrAlreadyInWishlist):
		status = http.StatusConflict
		message = "already in wishlist"
	case errors.Is(err, service.ErrEmptyCart):
		status = http.StatusBadRequest
		message = "cart is empty"
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		message = "missing required fields"
	case errors.Is(err, service.ErrCheckoutInProgress):
		status = http.StatusConflict
		message = "checkout in progress"
	}

	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func filterInPlace(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := products[:0]
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
