package store

import (
	"context"
	"strings"
)

// MemoryStore is the fixture-backed Store used by tests and the default
// wiring. It is immutable after construction and therefore safe for
// concurrent reads without locking.
type MemoryStore struct {
	categories []string
	products   map[string][]Product
	orders     map[string]OrderRecord
	discounts  map[string]float64
}

// NewMemoryStore builds a store over explicit fixtures. Category order in
// categories drives the "first declared category" fallback and the iteration
// order of Products(ctx, ""); a product whose category is not declared is
// only reachable by naming its category explicitly.
func NewMemoryStore(categories []string, products []Product, orders []OrderRecord, discounts map[string]float64) *MemoryStore {
	byCategory := make(map[string][]Product, len(categories))
	for _, p := range products {
		key := strings.ToLower(p.Category)
		byCategory[key] = append(byCategory[key], p)
	}

	orderIndex := make(map[string]OrderRecord, len(orders))
	for _, o := range orders {
		orderIndex[strings.ToUpper(o.ID)] = o
	}

	codeIndex := make(map[string]float64, len(discounts))
	for code, rate := range discounts {
		codeIndex[strings.ToUpper(code)] = rate
	}

	return &MemoryStore{
		categories: append([]string(nil), categories...),
		products:   byCategory,
		orders:     orderIndex,
		discounts:  codeIndex,
	}
}

// NewSeededStore returns a MemoryStore loaded with the sample shop data a
// production deployment would read from Postgres.
func NewSeededStore() *MemoryStore {
	return NewMemoryStore(
		[]string{"haircare", "skincare", "clothing"},
		[]Product{
			{ID: "h1", Name: "Brazilian Hair Bundle", Category: "haircare", Price: 25000, Stock: 15},
			{ID: "h2", Name: "Peruvian Wig", Category: "haircare", Price: 35000, Stock: 8},
			{ID: "h3", Name: "Hair Growth Oil", Category: "haircare", Price: 5000, Stock: 0},
			{ID: "s1", Name: "Facial Cleanser", Category: "skincare", Price: 8500, Stock: 20},
			{ID: "s2", Name: "Vitamin C Serum", Category: "skincare", Price: 12000, Stock: 5},
			{ID: "s3", Name: "Moisturizer", Category: "skincare", Price: 7500, Stock: 0},
			{ID: "c1", Name: "Designer Jeans", Category: "clothing", Price: 15000, Stock: 10},
			{ID: "c2", Name: "Cotton T-shirt", Category: "clothing", Price: 5000, Stock: 25},
			{ID: "c3", Name: "Summer Dress", Category: "clothing", Price: 18000, Stock: 0},
		},
		[]OrderRecord{
			{ID: "ORD123", Status: "shipped", Tracking: "NGP78923X", DeliveryDate: "May 20, 2025"},
			{ID: "ORD456", Status: "processing", DeliveryDate: "May 25, 2025"},
			{ID: "ORD789", Status: "delivered", Tracking: "NGP12345X", DeliveryDate: "May 15, 2025"},
		},
		map[string]float64{
			"WELCOME10": 0.10,
			"SUMMER25":  0.25,
			"SALE50":    0.50,
		},
	)
}

func (s *MemoryStore) Products(ctx context.Context, category string) ([]Product, error) {
	if category != "" {
		return append([]Product(nil), s.products[strings.ToLower(category)]...), nil
	}

	var all []Product
	for _, cat := range s.categories {
		all = append(all, s.products[strings.ToLower(cat)]...)
	}
	return all, nil
}

func (s *MemoryStore) Categories(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.categories...), nil
}

func (s *MemoryStore) Order(ctx context.Context, orderID string) (OrderRecord, error) {
	if o, ok := s.orders[strings.ToUpper(orderID)]; ok {
		return o, nil
	}
	return OrderRecord{}, ErrOrderNotFound
}

func (s *MemoryStore) Rate(ctx context.Context, code string) (float64, error) {
	if rate, ok := s.discounts[strings.ToUpper(code)]; ok {
		return rate, nil
	}
	return 0, ErrCodeNotFound
}
