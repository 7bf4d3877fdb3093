package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// BunConfig configures the Postgres-backed store.
type BunConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

// BunStore reads the catalog, order ledger, and discount table from Postgres
// through bun. All queries are read-only.
type BunStore struct {
	db *bun.DB
}

type productRow struct {
	bun.BaseModel `bun:"table:products"`

	ID       string `bun:"id,pk"`
	Name     string `bun:"name"`
	Category string `bun:"category"`
	Price    int64  `bun:"price"`
	Stock    int    `bun:"stock"`
}

type categoryRow struct {
	bun.BaseModel `bun:"table:categories"`

	Name     string `bun:"name,pk"`
	Position int    `bun:"position"`
}

type orderRow struct {
	bun.BaseModel `bun:"table:orders"`

	ID           string `bun:"id,pk"`
	Status       string `bun:"status"`
	Tracking     string `bun:"tracking"`
	DeliveryDate string `bun:"delivery_date"`
}

type discountRow struct {
	bun.BaseModel `bun:"table:discount_codes"`

	Code string  `bun:"code,pk"`
	Rate float64 `bun:"rate"`
}

func NewBunStore(cfg BunConfig) (*BunStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	return &BunStore{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

func (s *BunStore) Products(ctx context.Context, category string) ([]Product, error) {
	var rows []productRow
	q := s.db.NewSelect().Model(&rows).Order("category", "id")
	if category != "" {
		q = q.Where("lower(category) = lower(?)", category)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, Product{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Price:    row.Price,
			Stock:    row.Stock,
		})
	}
	return products, nil
}

func (s *BunStore) Categories(ctx context.Context) ([]string, error) {
	var rows []categoryRow
	if err := s.db.NewSelect().Model(&rows).Order("position").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

func (s *BunStore) Order(ctx context.Context, orderID string) (OrderRecord, error) {
	var row orderRow
	err := s.db.NewSelect().Model(&row).Where("upper(id) = upper(?)", orderID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderRecord{}, ErrOrderNotFound
	}
	if err != nil {
		return OrderRecord{}, fmt.Errorf("select order: %w", err)
	}

	return OrderRecord{
		ID:           strings.ToUpper(row.ID),
		Status:       row.Status,
		Tracking:     row.Tracking,
		DeliveryDate: row.DeliveryDate,
	}, nil
}

func (s *BunStore) Rate(ctx context.Context, code string) (float64, error) {
	var row discountRow
	err := s.db.NewSelect().Model(&row).Where("upper(code) = upper(?)", code).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCodeNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("select discount code: %w", err)
	}
	return row.Rate, nil
}
