package memory

import (
	"context"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
)

type ProductStore struct {
	products []store.Product
}

// NewProductStore assigns ids 1..n in the order descriptions are given.
func NewProductStore(descriptions ...string) *ProductStore {
	ps := make([]store.Product, 0, len(descriptions))
	for i, d := range descriptions {
		ps = append(ps, store.Product{ID: int64(i + 1), Description: d})
	}
	return &ProductStore{products: ps}
}

func (s *ProductStore) ListProducts(_ context.Context) ([]store.Product, error) {
	out := make([]store.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}
