package store

import "context"

type Product struct {
	ID          int64
	Description string
}

type ProductStore interface {
	ListProducts(ctx context.Context) ([]Product, error)
}
