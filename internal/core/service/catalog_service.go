package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dparedes/techstore/internal/core/domain"
	"github.com/dparedes/techstore/internal/port"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrAlreadyInWishlist  = errors.New("product already in wishlist")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrValidation         = errors.New("missing required fields")
	ErrCheckoutInProgress = errors.New("checkout in progress")
)

// Sort keys accepted by CatalogService.Sort. Anything else falls back to
// the name sort.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortName      = "name"
)

// CatalogService layers pure read operations (filtering, search, sorting)
// over a CatalogRepository.
type CatalogService struct {
	repo     port.CatalogRepository
	collator *collate.Collator
}

func NewCatalogService(repo port.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo:     repo,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

func (s *CatalogService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) All(ctx context.Context) ([]domain.Product, error) {
	return s.repo.All(ctx)
}

func (s *CatalogService) DecrementStock(ctx context.Context, id int64, qty int) (bool, error) {
	return s.repo.DecrementStock(ctx, id, qty)
}

// FilterByCategory returns products in the given category; "all" or the
// empty string passes everything through.
func (s *CatalogService) FilterByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if category == "" || category == "all" {
		return products, nil
	}
	var out []domain.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// FilterByBrand matches the brand case-insensitively; "all" or the empty
// string passes everything through.
func (s *CatalogService) FilterByBrand(ctx context.Context, brand string) ([]domain.Product, error) {
	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if brand == "" || brand == "all" {
		return products, nil
	}
	var out []domain.Product
	for _, p := range products {
		if strings.EqualFold(p.Brand, brand) {
			out = append(out, p)
		}
	}
	return out, nil
}

// FilterByPriceRange keeps products with min <= price <= max. A max of 0
// means unbounded above.
func (s *CatalogService) FilterByPriceRange(ctx context.Context, min, max float64) ([]domain.Product, error) {
	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var out []domain.Product
	for _, p := range products {
		if p.Price < min {
			continue
		}
		if max > 0 && p.Price > max {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Search performs a case-insensitive substring match over name, brand and
// description.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return products, nil
	}
	var out []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Brand), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Sort returns a sorted copy of products. The sort is stable; name
// comparison is locale-aware.
func (s *CatalogService) Sort(products []domain.Product, key string) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case SortRating:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return s.collator.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	}
	return sorted
}

// Related returns up to limit products related to the given one: same
// category first, padded with products from other categories when the
// category is too small.
func (s *CatalogService) Related(ctx context.Context, productID int64, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", productID, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var related []domain.Product
	for _, p := range products {
		if p.ID != productID && p.Category == product.Category && len(related) < limit {
			related = append(related, p)
		}
	}
	for _, p := range products {
		if len(related) >= limit {
			break
		}
		if p.ID != productID && p.Category != product.Category {
			related = append(related, p)
		}
	}
	return related, nil
}

// Featured returns up to limit discounted products, highest discount first.
func (s *CatalogService) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 6
	}
	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var featured []domain.Product
	for _, p := range products {
		if p.Discount > 0 {
			featured = append(featured, p)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool { return featured[i].Discount > featured[j].Discount })
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}
