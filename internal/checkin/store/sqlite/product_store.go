package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrandonDHaskell/checkin-gate/internal/checkin/store"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) ListProducts(ctx context.Context) ([]store.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT product_id, description FROM products ORDER BY product_id;`)
	if err != nil {
		return nil, fmt.Errorf("ListProducts query: %w", err)
	}
	defer rows.Close()

	var out []store.Product
	for rows.Next() {
		var p store.Product
		if err := rows.Scan(&p.ID, &p.Description); err != nil {
			return nil, fmt.Errorf("ListProducts scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
