package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dparedes/techstore/internal/core/domain"
	"github.com/dparedes/techstore/internal/pkg/logger"
	"github.com/dparedes/techstore/internal/port"
)

type CheckoutState string

const (
	StateIdle       CheckoutState = "idle"
	StateSubmitted  CheckoutState = "submitted"
	StateProcessing CheckoutState = "processing"
	StateCompleted  CheckoutState = "completed"
	StateRejected   CheckoutState = "rejected"
)

// CheckoutService runs the one-shot checkout flow: validate customer
// data, snapshot and lock the cart, wait out the simulated payment
// latency, decrement catalog stock, and produce an Order. One checkout
// at a time; a second Submit while one is in flight fails with
// ErrCheckoutInProgress.
type CheckoutService struct {
	catalog  port.CatalogRepository
	cart     *CartService
	notifier port.Notifier
	log      *logger.Logger

	delay time.Duration
	// sleep is the injectable wait for the simulated processing latency;
	// tests replace it to run the machine synchronously.
	sleep func(ctx context.Context, d time.Duration) error

	maxConcurrent int

	mu    sync.Mutex
	state CheckoutState
}

type CheckoutOption func(*CheckoutService)

// WithDelay sets the simulated payment-processing latency.
func WithDelay(d time.Duration) CheckoutOption {
	return func(s *CheckoutService) { s.delay = d }
}

// WithSleeper overrides the wait function used for the simulated latency.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) CheckoutOption {
	return func(s *CheckoutService) { s.sleep = sleep }
}

// WithCheckoutNotifier attaches a toast-style message sink.
func WithCheckoutNotifier(n port.Notifier) CheckoutOption {
	return func(s *CheckoutService) { s.notifier = n }
}

// WithCheckoutLogger attaches a logger; the default discards everything.
func WithCheckoutLogger(log *logger.Logger) CheckoutOption {
	return func(s *CheckoutService) { s.log = log }
}

func NewCheckoutService(catalog port.CatalogRepository, cart *CartService, opts ...CheckoutOption) *CheckoutService {
	s := &CheckoutService{
		catalog:       catalog,
		cart:          cart,
		log:           logger.NewNop(),
		delay:         2 * time.Second,
		sleep:         sleepContext,
		maxConcurrent: 10,
		state:         StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// State reports the current position of the checkout machine.
func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutService) setState(st CheckoutState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Submit drives one checkout to a terminal state and returns the Order on
// completion. Validation failures and an empty cart reject before any
// mutation; once processing has begun the stock decrements are
// best-effort and are not rolled back.
func (s *CheckoutService) Submit(ctx context.Context, customer domain.Customer) (domain.Order, error) {
	if err := validateCustomer(customer); err != nil {
		s.notify(port.NotifyError, "please fill in all required fields")
		return domain.Order{}, err
	}

	items, err := s.cart.beginCheckout(ctx)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			s.notify(port.NotifyError, "cart is empty")
		}
		return domain.Order{}, err
	}
	s.setState(StateSubmitted)

	order, err := s.process(ctx, customer, items)
	if err != nil {
		s.cart.endCheckout(ctx, false)
		s.setState(StateRejected)
		return domain.Order{}, err
	}

	s.cart.endCheckout(ctx, true)
	s.setState(StateCompleted)
	s.notify(port.NotifySuccess, "order placed successfully")
	return order, nil
}

func (s *CheckoutService) process(ctx context.Context, customer domain.Customer, items []domain.CartItem) (domain.Order, error) {
	s.setState(StateProcessing)

	// Simulated network/payment latency. Always succeeds at the transport
	// level; only ctx cancellation aborts it.
	if err := s.sleep(ctx, s.delay); err != nil {
		return domain.Order{}, fmt.Errorf("checkout interrupted: %w", err)
	}

	// Re-resolve prices against the catalog before charging.
	resolved := make([]domain.CartItem, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			product, err := s.catalog.FindByID(gctx, it.Line.ProductID)
			if err != nil {
				return fmt.Errorf("find product %d: %w", it.Line.ProductID, err)
			}
			if product != nil {
				it.Product = *product
			}
			resolved[idx] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Order{}, err
	}

	// Best-effort inventory consumption: a line that can no longer be
	// satisfied is logged and skipped, not rolled back.
	for _, it := range resolved {
		ok, err := s.catalog.DecrementStock(ctx, it.Line.ProductID, it.Line.Quantity)
		if err != nil {
			s.log.Error("stock decrement failed", "product_id", it.Line.ProductID, "error", err)
			continue
		}
		if !ok {
			s.log.Warn("stock shortfall at checkout", "product_id", it.Line.ProductID, "quantity", it.Line.Quantity)
		}
	}

	var subtotal float64
	deliveryLines := 0
	orderItems := make([]domain.OrderItem, 0, len(resolved))
	for _, it := range resolved {
		lineTotal := it.Subtotal()
		subtotal += lineTotal
		if it.Line.DeliveryOption == domain.DeliveryDelivery {
			deliveryLines++
		}
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:      it.Line.ProductID,
			Name:           it.Product.Name,
			UnitPrice:      it.Product.Price,
			Quantity:       it.Line.Quantity,
			DeliveryOption: it.Line.DeliveryOption,
			LineTotal:      lineTotal,
		})
	}
	shipping := float64(domain.DeliveryFee * deliveryLines)
	total := subtotal + shipping

	order := domain.Order{
		ID:        "ORD-" + uuid.New().String(),
		Items:     orderItems,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     total,
		Customer:  customer,
		CreatedAt: time.Now(),
	}
	s.log.Info("order completed",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total,
	)
	return order, nil
}

func validateCustomer(c domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Email) == "" ||
		strings.TrimSpace(c.Address) == "" {
		return ErrValidation
	}
	return nil
}

func (s *CheckoutService) notify(level port.NotifyLevel, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}
