package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repository for tests and the degraded
// catalog-unavailable mode.
type MemoryRepo struct {
	mu         sync.RWMutex
	products   map[string]Product // by slug
	categories map[string]Category
	nextID     int
}

func NewMemoryRepo(products ...Product) *MemoryRepo {
	r := &MemoryRepo{
		products:   make(map[string]Product),
		categories: make(map[string]Category),
	}
	for _, p := range products {
		if p.ID == "" {
			r.nextID++
			p.ID = fmt.Sprintf("p-%d", r.nextID)
		}
		r.products[p.Slug] = p
	}
	return r
}

func (r *MemoryRepo) ListProducts(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Availability == Discontinued {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (r *MemoryRepo) GetProductBySlug(_ context.Context, slug string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.products[slug]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *MemoryRepo) GetProductByID(_ context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepo) UpsertProduct(_ context.Context, p Product) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ex, ok := r.products[p.Slug]; ok {
		p.ID = ex.ID
		p.CreatedAt = ex.CreatedAt
	} else {
		r.nextID++
		p.ID = fmt.Sprintf("p-%d", r.nextID)
		p.CreatedAt = time.Now()
	}
	r.products[p.Slug] = p
	return &p, nil
}

func (r *MemoryRepo) ListCategories(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) EnsureCategory(_ context.Context, name string, family Family) (*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[name]; ok {
		return &c, nil
	}
	r.nextID++
	c := Category{ID: fmt.Sprintf("c-%d", r.nextID), Name: name, Family: family, CreatedAt: time.Now()}
	r.categories[name] = c
	return &c, nil
}
