// Package catalog holds the product grid shown next to the cart.
package catalog

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

// Lister is satisfied by *storefront.Client.
type Lister interface {
	ListProducts(ctx context.Context) ([]storefront.Product, error)
}

// Group is one category section of the grid.
type Group struct {
	Category string
	Products []storefront.Product
}

// Catalog caches the last loaded product list.
type Catalog struct {
	source Lister
	logg   *logger.Logger

	mu       sync.RWMutex
	products []storefront.Product
}

func New(source Lister, logg *logger.Logger) *Catalog {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Catalog{source: source, logg: logg, products: []storefront.Product{}}
}

// Load replaces the grid with the backend's list. On failure the grid is
// emptied and the error is returned for the caller to report.
func (c *Catalog) Load(ctx context.Context) ([]storefront.Product, error) {
	products, err := c.source.ListProducts(ctx)
	if err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "catalog.load.failed")
		products = []storefront.Product{}
	}
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	return c.Products(), err
}

func (c *Catalog) Products() []storefront.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]storefront.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find looks a product up by id in the loaded grid.
func (c *Catalog) Find(id types.ProductID) (storefront.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return storefront.Product{}, false
}

// Groups splits the grid by category, keeping first-seen order of both
// categories and products. Uncategorized products are grouped under "other".
func (c *Catalog) Groups() []Group {
	products := c.Products()
	index := map[string]int{}
	groups := []Group{}
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "other"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, Group{Category: category})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}
