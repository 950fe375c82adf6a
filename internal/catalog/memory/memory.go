// Package memory is an in-process catalog used for offline mode, the
// development stub server and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"maxgear/internal/domain"
)

// Catalog is an in-memory implementation of catalog.Searcher. Matching is a
// case-insensitive substring test on code, brand and name; results keep
// insertion order. Thread-safe via sync.RWMutex.
type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
	latency  time.Duration
}

// Option configures a Catalog
type Option func(*Catalog)

// WithLatency delays every search, honouring context cancellation
func WithLatency(d time.Duration) Option {
	return func(c *Catalog) { c.latency = d }
}

// New creates a catalog holding products
func New(products []domain.Product, opts ...Option) *Catalog {
	c := &Catalog{products: append([]domain.Product(nil), products...)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends products to the catalog
func (c *Catalog) Add(products ...domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, products...)
}

// Len returns the number of products held
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// SearchProducts returns every product whose code, brand or name contains query
func (c *Catalog) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	normalized := normalizeCode(needle)

	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := make([]domain.Product, 0)
	for _, p := range c.products {
		if matches(p, needle, normalized) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Health always succeeds
func (c *Catalog) Health(ctx context.Context) error {
	return ctx.Err()
}

func matches(p domain.Product, needle, normalized string) bool {
	if needle == "" {
		return false
	}
	if strings.Contains(strings.ToLower(p.Brand), needle) ||
		strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Code), needle) {
		return true
	}
	// part numbers are often typed without separators
	return normalized != "" && strings.Contains(normalizeCode(strings.ToLower(p.Code)), normalized)
}

func normalizeCode(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '.', '/':
			return -1
		}
		return r
	}, s)
}
