package service

import (
	"context"
	"sync"

	"github.com/dparedes/techstore/internal/core/domain"
	"github.com/dparedes/techstore/internal/port"
)

// Mock CatalogRepository
type mockCatalog struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
}

func newMockCatalog(products ...domain.Product) *mockCatalog {
	m := &mockCatalog{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		cp := p
		m.products[p.ID] = &cp
	}
	return m
}

func (m *mockCatalog) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockCatalog) All(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockCatalog) DecrementStock(ctx context.Context, id int64, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	p.InStock = p.Stock > 0
	return true, nil
}

func (m *mockCatalog) stock(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		return p.Stock
	}
	return -1
}

// Mock StateStore
type mockStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{docs: make(map[string][]byte)}
}

func (m *mockStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *mockStore) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = data
	return nil
}

// Recording Notifier
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	levels   []port.NotifyLevel
}

func (m *mockNotifier) Notify(level port.NotifyLevel, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = append(m.levels, level)
	m.messages = append(m.messages, message)
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Laptop", Brand: "Acme", Category: "laptops", Price: 100, Stock: 5, InStock: true},
		{ID: 2, Name: "Phone", Brand: "Acme", Category: "smartphones", Price: 50, Stock: 10, InStock: true},
		{ID: 3, Name: "Headphones", Brand: "Audio Co", Category: "accessories", Price: 30, Stock: 0, InStock: false},
	}
}
