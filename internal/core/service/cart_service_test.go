package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dparedes/techstore/internal/core/domain"
)

func newTestCart(t *testing.T) (*CartService, *mockCatalog, *mockStore) {
	t.Helper()
	catalog := newMockCatalog(testProducts()...)
	store := newMockStore()
	cart := NewCartService(context.Background(), catalog, store)
	return cart, catalog, store
}

func TestAddItem_MergesSameProductAndOption(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	if err := cart.AddItem(ctx, 1, 2, domain.DeliveryPickup); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := cart.AddItem(ctx, 1, 1, domain.DeliveryPickup); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddItem_DifferentOptionsMakeDistinctLines(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	if err := cart.AddItem(ctx, 1, 1, domain.DeliveryPickup); err != nil {
		t.Fatalf("pickup add failed: %v", err)
	}
	if err := cart.AddItem(ctx, 1, 1, domain.DeliveryDelivery); err != nil {
		t.Fatalf("delivery add failed: %v", err)
	}

	if got := len(cart.Lines()); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	cart, _, _ := newTestCart(t)

	err := cart.AddItem(context.Background(), 999, 1, domain.DeliveryPickup)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if got := len(cart.Lines()); got != 0 {
		t.Errorf("expected empty cart, got %d lines", got)
	}
}

func TestAddItem_OutOfStock(t *testing.T) {
	cart, _, _ := newTestCart(t)

	err := cart.AddItem(context.Background(), 3, 1, domain.DeliveryPickup)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestAddItem_MergeCappedAtStock(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	// product 1 has stock 5
	if err := cart.AddItem(ctx, 1, 4, domain.DeliveryPickup); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := cart.AddItem(ctx, 1, 2, domain.DeliveryPickup)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock on over-stock merge, got %v", err)
	}
	if got := cart.Lines()[0].Quantity; got != 4 {
		t.Errorf("expected quantity unchanged at 4, got %d", got)
	}
}

func TestRemoveItem_DropsAllOptions(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, 1, 1, domain.DeliveryPickup)
	cart.AddItem(ctx, 1, 1, domain.DeliveryDelivery)
	cart.AddItem(ctx, 2, 1, domain.DeliveryPickup)

	if err := cart.RemoveItem(ctx, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line left, got %d", len(lines))
	}
	if lines[0].ProductID != 2 {
		t.Errorf("expected product 2 left, got %d", lines[0].ProductID)
	}
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, 1, 1, domain.DeliveryPickup)
	if err := cart.RemoveItem(ctx, 999); err != nil {
		t.Fatalf("remove of absent product errored: %v", err)
	}
	if got := len(cart.Lines()); got != 1 {
		t.Errorf("expected cart unchanged with 1 line, got %d", got)
	}
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, 1, 2, domain.DeliveryPickup)
	if err := cart.UpdateQuantity(ctx, 1, domain.DeliveryPickup, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if got := len(cart.Lines()); got != 0 {
		t.Errorf("expected empty cart, got %d lines", got)
	}
}

func TestUpdateQuantity_AboveStockFails(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, 1, 2, domain.DeliveryPickup)
	err := cart.UpdateQuantity(ctx, 1, domain.DeliveryPickup, 6)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if got := cart.Lines()[0].Quantity; got != 2 {
		t.Errorf("expected quantity unchanged at 2, got %d", got)
	}
}

func TestUpdateQuantity_KeyedByDeliveryOption(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, 1, 1, domain.DeliveryPickup)
	cart.AddItem(ctx, 1, 1, domain.DeliveryDelivery)

	if err := cart.UpdateQuantity(ctx, 1, domain.DeliveryDelivery, 3); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	for _, l := range cart.Lines() {
		want := 1
		if l.DeliveryOption == domain.DeliveryDelivery {
			want = 3
		}
		if l.Quantity != want {
			t.Errorf("line %s: expected quantity %d, got %d", l.DeliveryOption, want, l.Quantity)
		}
	}
}

func TestTotal_DeliveryFeePerLine(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	// pickup: 100 x 2, delivery: 50 x 1 + 15 fee
	cart.AddItem(ctx, 1, 2, domain.DeliveryPickup)
	cart.AddItem(ctx, 2, 1, domain.DeliveryDelivery)

	total, err := cart.Total(ctx)
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if total != 265 {
		t.Errorf("expected total 265, got %v", total)
	}
}

func TestItemCount(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddItem(ctx, 1, 2, domain.DeliveryPickup)
	cart.AddItem(ctx, 2, 3, domain.DeliveryDelivery)

	if got := cart.ItemCount(); got != 5 {
		t.Errorf("expected item count 5, got %d", got)
	}
}

func TestItems_DropsDanglingLines(t *testing.T) {
	catalog := newMockCatalog(testProducts()...)
	store := newMockStore()
	cart := NewCartService(context.Background(), catalog, store)
	ctx := context.Background()

	cart.AddItem(ctx, 1, 1, domain.DeliveryPickup)
	cart.AddItem(ctx, 2, 1, domain.DeliveryPickup)

	// Product removed from the catalog behind the cart's back.
	catalog.mu.Lock()
	delete(catalog.products, 2)
	catalog.mu.Unlock()

	items, err := cart.Items(ctx)
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 resolved item, got %d", len(items))
	}
	// The dangling line stays in storage.
	if got := len(cart.Lines()); got != 2 {
		t.Errorf("expected 2 stored lines, got %d", got)
	}
}

func TestWishlist_DuplicateFails(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	if err := cart.AddToWishlist(ctx, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := cart.AddToWishlist(ctx, 1)
	if !errors.Is(err, ErrAlreadyInWishlist) {
		t.Errorf("expected ErrAlreadyInWishlist, got %v", err)
	}

	products, err := cart.WishlistItems(ctx)
	if err != nil {
		t.Fatalf("wishlist items failed: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected wishlist size 1, got %d", len(products))
	}
}

func TestWishlist_UnknownProduct(t *testing.T) {
	cart, _, _ := newTestCart(t)

	err := cart.AddToWishlist(context.Background(), 999)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestWishlist_RemoveIsIdempotent(t *testing.T) {
	cart, _, _ := newTestCart(t)
	ctx := context.Background()

	cart.AddToWishlist(ctx, 1)
	if err := cart.RemoveFromWishlist(ctx, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := cart.RemoveFromWishlist(ctx, 1); err != nil {
		t.Fatalf("second remove errored: %v", err)
	}
	if cart.IsInWishlist(1) {
		t.Error("expected product 1 out of wishlist")
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	catalog := newMockCatalog(testProducts()...)
	store := newMockStore()
	ctx := context.Background()

	cart := NewCartService(ctx, catalog, store)
	cart.AddItem(ctx, 1, 2, domain.DeliveryPickup)
	cart.AddItem(ctx, 2, 1, domain.DeliveryDelivery)
	cart.AddToWishlist(ctx, 3)

	// A fresh instance over the same store sees the same state.
	restored := NewCartService(ctx, catalog, store)

	type lineKey struct {
		productID int64
		option    domain.DeliveryOption
	}
	want := map[lineKey]int{}
	for _, l := range cart.Lines() {
		want[lineKey{l.ProductID, l.DeliveryOption}] = l.Quantity
	}
	got := map[lineKey]int{}
	for _, l := range restored.Lines() {
		got[lineKey{l.ProductID, l.DeliveryOption}] = l.Quantity
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d restored lines, got %d", len(want), len(got))
	}
	for k, qty := range want {
		if got[k] != qty {
			t.Errorf("line %v: expected quantity %d, got %d", k, qty, got[k])
		}
	}
	if !restored.IsInWishlist(3) {
		t.Error("expected wishlist restored")
	}
}

func TestPersistence_MalformedStateResetsToEmpty(t *testing.T) {
	catalog := newMockCatalog(testProducts()...)
	store := newMockStore()
	ctx := context.Background()

	store.Save(ctx, cartStorageKey, []byte("{not json"))
	store.Save(ctx, wishlistStorageKey, []byte("also not json"))

	cart := NewCartService(ctx, catalog, store)
	if got := len(cart.Lines()); got != 0 {
		t.Errorf("expected empty cart after malformed state, got %d lines", got)
	}
	if cart.ItemCount() != 0 {
		t.Errorf("expected item count 0, got %d", cart.ItemCount())
	}
	if cart.IsInWishlist(1) {
		t.Error("expected empty wishlist after malformed state")
	}
}

func TestNotifier_ReceivesMessages(t *testing.T) {
	catalog := newMockCatalog(testProducts()...)
	store := newMockStore()
	notifier := &mockNotifier{}
	ctx := context.Background()

	cart := NewCartService(ctx, catalog, store, WithNotifier(notifier))
	cart.AddItem(ctx, 1, 1, domain.DeliveryPickup)
	cart.AddItem(ctx, 999, 1, domain.DeliveryPickup)

	if notifier.count() != 2 {
		t.Errorf("expected 2 notifications, got %d", notifier.count())
	}
}

func TestOnChange_FiresAfterMutations(t *testing.T) {
	catalog := newMockCatalog(testProducts()...)
	store := newMockStore()
	ctx := context.Background()

	changes := 0
	cart := NewCartService(ctx, catalog, store, WithOnChange(func() { changes++ }))

	cart.AddItem(ctx, 1, 1, domain.DeliveryPickup)
	cart.UpdateQuantity(ctx, 1, domain.DeliveryPickup, 3)
	cart.Clear(ctx)

	if changes != 3 {
		t.Errorf("expected 3 change callbacks, got %d", changes)
	}
}
