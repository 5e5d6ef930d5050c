// Package catalog holds the static product catalog. Products are immutable
// and loaded once at startup, either from the built-in defaults or from an
// optional JSON catalog file.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"pixibai/internal/domain"
)

// Catalog is an ordered, read-only collection of products.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New validates the product list and builds a catalog preserving declaration
// order. IDs must be unique and types must be known.
func New(products []domain.Product) (*Catalog, error) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has empty id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		switch p.Type {
		case domain.TypeAlbum, domain.TypeMagnets, domain.TypeFrame, domain.TypeOrnaments, domain.TypeGiftCard:
		default:
			return nil, fmt.Errorf("product %q has unknown type %q", p.ID, p.Type)
		}
		if p.Options != nil && len(p.Options.Tiers) > 0 {
			tiers := p.Options.Tiers
			if !sort.SliceIsSorted(tiers, func(a, b int) bool { return tiers[a].Qty < tiers[b].Qty }) {
				return nil, fmt.Errorf("product %q tiers must be sorted by quantity", p.ID)
			}
		}
		byID[p.ID] = i
	}
	return &Catalog{products: products, byID: byID}, nil
}

// Load reads a JSON catalog file, the override for the built-in defaults.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	cat, err := New(products)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return cat, nil
}

// All returns the products in declaration order. The returned slice is a
// copy; catalog contents never change after construction.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the product with the given id or domain.ErrNotFound.
func (c *Catalog) ByID(id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := c.products[i]
	return &p, nil
}
