package service

import (
	"context"
	"fmt"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/types"
)

type Catalog struct {
	products store.ProductStore
}

func NewCatalog(ps store.ProductStore) *Catalog {
	return &Catalog{products: ps}
}

func (c *Catalog) Products(ctx context.Context) ([]types.Product, error) {
	ps, err := c.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]types.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, types.Product{ID: p.ID, Nome: p.Description})
	}
	return out, nil
}
