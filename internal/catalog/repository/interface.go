package repository

import "context"

// ProductRow is one row of the products reference table.
type ProductRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Repository reads catalog reference data.
type Repository interface {
	// ListProducts returns all product rows ordered by id.
	ListProducts(ctx context.Context) ([]ProductRow, error)
}
