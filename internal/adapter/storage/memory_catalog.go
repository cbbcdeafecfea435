package storage

import (
	"context"
	"sync"

	"github.com/dparedes/techstore/internal/core/domain"
)

// MemoryCatalog is an in-process catalog. Product records are fixed at
// construction; only stock is mutated, under a mutex.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]int
}

func NewMemoryCatalog(products []domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

func (c *MemoryCatalog) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return nil, nil
	}
	p := c.products[i]
	return &p, nil
}

func (c *MemoryCatalog) All(ctx context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *MemoryCatalog) DecrementStock(ctx context.Context, id int64, qty int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.byID[id]
	if !ok {
		return false, nil
	}
	if c.products[i].Stock < qty {
		return false, nil
	}
	c.products[i].Stock -= qty
	c.products[i].InStock = c.products[i].Stock > 0
	return true, nil
}
