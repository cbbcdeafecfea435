package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dparedes/techstore/internal/core/domain"
	"github.com/dparedes/techstore/internal/pkg/logger"
	"github.com/dparedes/techstore/internal/port"
)

// Storage keys for the two independently persisted documents.
const (
	cartStorageKey     = "techstore_cart"
	wishlistStorageKey = "techstore_wishlist"
)

// CartService owns the cart lines and the wishlist for one session. All
// operations are safe for concurrent use; persisted state is rewritten in
// full after every mutation. While a checkout is in flight the cart is
// locked and every mutating operation fails with ErrCheckoutInProgress.
type CartService struct {
	catalog  port.CatalogRepository
	store    port.StateStore
	notifier port.Notifier
	log      *logger.Logger
	now      func() time.Time
	onChange func()

	mu          sync.Mutex
	lines       []domain.CartLine
	wishlist    []int64
	checkingOut bool
}

type CartOption func(*CartService)

// WithNotifier attaches a toast-style message sink.
func WithNotifier(n port.Notifier) CartOption {
	return func(s *CartService) { s.notifier = n }
}

// WithCartLogger attaches a logger; the default discards everything.
func WithCartLogger(log *logger.Logger) CartOption {
	return func(s *CartService) { s.log = log }
}

// WithClock overrides the time source used for line timestamps.
func WithClock(now func() time.Time) CartOption {
	return func(s *CartService) { s.now = now }
}

// WithOnChange registers a callback fired after every successful mutation,
// the subscription seam for a presentation layer.
func WithOnChange(fn func()) CartOption {
	return func(s *CartService) { s.onChange = fn }
}

// NewCartService builds the aggregate and restores any persisted state.
// Missing or malformed stored documents reset to empty and are never
// surfaced to the caller.
func NewCartService(ctx context.Context, catalog port.CatalogRepository, store port.StateStore, opts ...CartOption) *CartService {
	s := &CartService{
		catalog: catalog,
		store:   store,
		log:     logger.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lines = loadDocument[[]domain.CartLine](ctx, s, cartStorageKey)
	s.wishlist = loadDocument[[]int64](ctx, s, wishlistStorageKey)
	return s
}

func loadDocument[T any](ctx context.Context, s *CartService, key string) T {
	var out T
	data, err := s.store.Load(ctx, key)
	if err != nil {
		s.log.Warn("failed to load persisted state, starting empty", "key", key, "error", err)
		return out
	}
	if data == nil {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Warn("malformed persisted state, starting empty", "key", key, "error", err)
		var empty T
		return empty
	}
	return out
}

// AddItem puts qty units of a product into the cart under the given
// delivery option. An existing (product, option) line is merged in place;
// the merged quantity is re-validated against current stock.
func (s *CartService) AddItem(ctx context.Context, productID int64, qty int, opt domain.DeliveryOption) error {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCheckoutInProgress
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product %d: %w", productID, err)
	}
	if product == nil {
		s.notify(port.NotifyError, "product not found")
		return ErrProductNotFound
	}
	if !product.Available(qty) {
		s.notify(port.NotifyError, fmt.Sprintf("%s is out of stock", product.Name))
		return ErrInsufficientStock
	}

	if i := s.lineIndex(productID, opt); i >= 0 {
		if s.lines[i].Quantity+qty > product.Stock {
			s.notify(port.NotifyWarning, fmt.Sprintf("only %d units of %s available", product.Stock, product.Name))
			return ErrInsufficientStock
		}
		s.lines[i].Quantity += qty
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ProductID:      productID,
			Quantity:       qty,
			DeliveryOption: opt,
			AddedAt:        s.now(),
		})
	}

	s.persistLines(ctx)
	s.notify(port.NotifySuccess, fmt.Sprintf("%s added to cart", product.Name))
	s.changed()
	return nil
}

// RemoveItem drops every line for the product, regardless of delivery
// option. Removing an absent product is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCheckoutInProgress
	}

	kept := s.lines[:0]
	removed := false
	for _, l := range s.lines {
		if l.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	s.lines = kept

	s.persistLines(ctx)
	if removed {
		if product, err := s.catalog.FindByID(ctx, productID); err == nil && product != nil {
			s.notify(port.NotifySuccess, fmt.Sprintf("%s removed from cart", product.Name))
		}
	}
	s.changed()
	return nil
}

// UpdateQuantity sets the quantity of the (product, option) line. A
// quantity of zero or less removes the line; a quantity above current
// stock fails with ErrInsufficientStock and leaves the line unchanged.
// Updating an absent line is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, productID int64, opt domain.DeliveryOption, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCheckoutInProgress
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product %d: %w", productID, err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	i := s.lineIndex(productID, opt)
	if qty <= 0 {
		if i >= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLines(ctx)
			s.changed()
		}
		return nil
	}
	if qty > product.Stock {
		s.notify(port.NotifyWarning, fmt.Sprintf("only %d units of %s available", product.Stock, product.Name))
		return ErrInsufficientStock
	}
	if i < 0 {
		return nil
	}

	s.lines[i].Quantity = qty
	s.persistLines(ctx)
	s.changed()
	return nil
}

// Clear empties the cart unconditionally.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCheckoutInProgress
	}
	s.clearLocked(ctx)
	s.notify(port.NotifySuccess, "cart emptied")
	return nil
}

func (s *CartService) clearLocked(ctx context.Context) {
	s.lines = nil
	s.persistLines(ctx)
	s.changed()
}

// Lines returns a copy of the raw cart lines, dangling references
// included.
func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Items joins each line to its current catalog product. Lines whose
// product no longer resolves are dropped from the result, not from
// storage.
func (s *CartService) Items(ctx context.Context) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked(ctx)
}

func (s *CartService) itemsLocked(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	for _, l := range s.lines {
		product, err := s.catalog.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("find product %d: %w", l.ProductID, err)
		}
		if product == nil {
			continue
		}
		items = append(items, domain.CartItem{Line: l, Product: *product})
	}
	return items, nil
}

// Total is the sum over resolved lines of price x quantity plus the fixed
// per-line surcharge for delivery lines.
func (s *CartService) Total(ctx context.Context) (float64, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, it := range items {
		total += it.Subtotal() + it.Line.DeliveryCharge()
	}
	return total, nil
}

// ItemCount is the sum of quantities across all lines, resolved or not.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// AddToWishlist saves a product for later. Fails with ErrProductNotFound
// for unknown products and ErrAlreadyInWishlist for duplicates.
func (s *CartService) AddToWishlist(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product %d: %w", productID, err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	for _, id := range s.wishlist {
		if id == productID {
			s.notify(port.NotifyWarning, fmt.Sprintf("%s is already in your wishlist", product.Name))
			return ErrAlreadyInWishlist
		}
	}

	s.wishlist = append(s.wishlist, productID)
	s.persistWishlist(ctx)
	s.notify(port.NotifySuccess, fmt.Sprintf("%s added to wishlist", product.Name))
	s.changed()
	return nil
}

// RemoveFromWishlist is idempotent.
func (s *CartService) RemoveFromWishlist(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.wishlist[:0]
	removed := false
	for _, id := range s.wishlist {
		if id == productID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	s.wishlist = kept

	s.persistWishlist(ctx)
	if removed {
		if product, err := s.catalog.FindByID(ctx, productID); err == nil && product != nil {
			s.notify(port.NotifySuccess, fmt.Sprintf("%s removed from wishlist", product.Name))
		}
	}
	s.changed()
	return nil
}

func (s *CartService) IsInWishlist(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// WishlistItems resolves the wishlist to products, dropping ids that no
// longer exist in the catalog.
func (s *CartService) WishlistItems(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []domain.Product
	for _, id := range s.wishlist {
		product, err := s.catalog.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find product %d: %w", id, err)
		}
		if product == nil {
			continue
		}
		products = append(products, *product)
	}
	return products, nil
}

// beginCheckout snapshots the resolved cart and locks the aggregate
// against mutation until endCheckout. Fails with ErrEmptyCart when
// nothing resolves and ErrCheckoutInProgress when already locked.
func (s *CartService) beginCheckout(ctx context.Context) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return nil, ErrCheckoutInProgress
	}

	items, err := s.itemsLocked(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	s.checkingOut = true
	return items, nil
}

// endCheckout unlocks the aggregate, clearing the cart when the checkout
// completed.
func (s *CartService) endCheckout(ctx context.Context, completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkingOut = false
	if completed {
		s.clearLocked(ctx)
	}
}

func (s *CartService) lineIndex(productID int64, opt domain.DeliveryOption) int {
	for i, l := range s.lines {
		if l.ProductID == productID && l.DeliveryOption == opt {
			return i
		}
	}
	return -1
}

func (s *CartService) persistLines(ctx context.Context) {
	s.persist(ctx, cartStorageKey, s.lines)
}

func (s *CartService) persistWishlist(ctx context.Context) {
	s.persist(ctx, wishlistStorageKey, s.wishlist)
}

func (s *CartService) persist(ctx context.Context, key string, doc interface{}) {
	data, err := json.Marshal(doc)
	if err != nil {
		s.log.Error("failed to encode state", "key", key, "error", err)
		return
	}
	if err := s.store.Save(ctx, key, data); err != nil {
		s.log.Error("failed to persist state", "key", key, "error", err)
	}
}

func (s *CartService) notify(level port.NotifyLevel, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}

func (s *CartService) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
