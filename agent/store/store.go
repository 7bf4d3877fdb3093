// Package store holds the read-only collaborators the tool handlers query:
// the product catalog, the order ledger, and the discount code table. The
// handlers own no data; everything here is injected.
package store

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrCodeNotFound  = errors.New("discount code not found")
)

// Product is one catalog item. Price is in minor currency units (kobo-free
// naira in the seed data) and never negative.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
}

// OrderRecord is one ledger entry. Status is one of "processing", "shipped",
// "delivered".
type OrderRecord struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Tracking     string `json:"tracking,omitempty"`
	DeliveryDate string `json:"delivery_date"`
}

// Catalog is the product catalog collaborator. Products with category ""
// returns the whole catalog; an unknown category returns an empty slice, not
// an error. Categories preserves declaration order so "first declared
// category" is a stable fallback.
type Catalog interface {
	Products(ctx context.Context, category string) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderLedger resolves order ids case-insensitively. Unknown ids yield
// ErrOrderNotFound.
type OrderLedger interface {
	Order(ctx context.Context, orderID string) (OrderRecord, error)
}

// DiscountTable resolves discount codes case-insensitively to a rate in
// (0, 1]. Unknown or expired codes yield ErrCodeNotFound.
type DiscountTable interface {
	Rate(ctx context.Context, code string) (float64, error)
}

// Store bundles the three collaborators; both the in-memory seed and the
// Postgres-backed implementation satisfy it.
type Store interface {
	Catalog
	OrderLedger
	DiscountTable
}
