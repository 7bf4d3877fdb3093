package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	storex "github.com/Samilincoln/ai-customer-chat/agent/store"
)

// CheckAvailability looks a product up by case-insensitive substring match
// against item names, scoped to the category when one is supplied and known,
// otherwise scanning the whole catalog. First match wins.
func (s *Suite) CheckAvailability(ctx context.Context, p contractx.CheckAvailabilityParams) (contractx.AvailabilityResult, error) {
	query := strings.ToLower(strings.TrimSpace(p.ProductName))

	products, err := s.scopedProducts(ctx, p.Category)
	if err != nil {
		return contractx.AvailabilityResult{}, err
	}

	for _, product := range products {
		if !strings.Contains(strings.ToLower(product.Name), query) {
			continue
		}
		available := product.Stock > 0
		status := "Out of stock"
		if available {
			status = "In stock"
		}
		return contractx.AvailabilityResult{
			Found:     true,
			Product:   product.Name,
			Category:  product.Category,
			Price:     product.Price,
			Stock:     product.Stock,
			Available: available,
			Message:   fmt.Sprintf("Found %s - %s. %s", product.Name, nairaInt(product.Price), status),
		}, nil
	}

	return contractx.AvailabilityResult{
		Found:   false,
		Message: fmt.Sprintf("Sorry, I couldn't find %s in our inventory.", query),
	}, nil
}

// scopedProducts returns the category's items when the category is known and
// non-empty, falling back to the full catalog otherwise.
func (s *Suite) scopedProducts(ctx context.Context, category string) ([]storex.Product, error) {
	if strings.TrimSpace(category) != "" {
		products, err := s.store.Products(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup: %w", err)
		}
		if len(products) > 0 {
			return products, nil
		}
	}

	products, err := s.store.Products(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	return products, nil
}

// RecommendAlternatives suggests in-stock substitutes for a product. Category
// inference, in order: the exact product's own category, a category whose
// name shares a keyword with the query, the category with the most
// per-product keyword overlaps, and finally the first declared category.
// The last tier can surface unrelated items; kept for parity.
func (s *Suite) RecommendAlternatives(ctx context.Context, p contractx.RecommendAlternativesParams) (contractx.AlternativesResult, error) {
	availability, err := s.CheckAvailability(ctx, contractx.CheckAvailabilityParams{ProductName: p.ProductName})
	if err != nil {
		return contractx.AlternativesResult{}, err
	}

	if availability.Found && availability.Available {
		return contractx.AlternativesResult{
			Success: false,
			Message: fmt.Sprintf("%s is available in stock, no alternatives needed.", availability.Product),
		}, nil
	}

	query := strings.ToLower(strings.TrimSpace(p.ProductName))
	keywords := strings.Fields(query)

	category := availability.Category
	if category == "" {
		category, err = s.inferCategory(ctx, keywords)
		if err != nil {
			return contractx.AlternativesResult{}, err
		}
	}

	items, err := s.store.Products(ctx, category)
	if err != nil {
		return contractx.AlternativesResult{}, fmt.Errorf("catalog lookup: %w", err)
	}

	var alternatives []contractx.Alternative
	var parts []string
	for _, item := range items {
		if item.Stock <= 0 {
			continue
		}
		if availability.Found && strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		alternatives = append(alternatives, contractx.Alternative{
			Name:  item.Name,
			Price: item.Price,
			Stock: item.Stock,
		})
		parts = append(parts, fmt.Sprintf("%s (%s)", item.Name, nairaInt(item.Price)))
	}

	if len(alternatives) == 0 {
		return contractx.AlternativesResult{
			Success: false,
			Message: fmt.Sprintf("Sorry, we couldn't find '%s' or any suitable alternatives in our inventory.", p.ProductName),
		}, nil
	}

	listing := strings.Join(parts, ", ")
	if availability.Found {
		return contractx.AlternativesResult{
			Success:      true,
			Product:      availability.Product,
			Alternatives: alternatives,
			Message:      fmt.Sprintf("%s is out of stock. Here are some alternatives: %s.", availability.Product, listing),
		}, nil
	}
	return contractx.AlternativesResult{
		Success:      true,
		Product:      p.ProductName,
		Alternatives: alternatives,
		Message:      fmt.Sprintf("We couldn't find '%s' in our inventory. Here are some similar products you might like: %s.", p.ProductName, listing),
	}, nil
}

func (s *Suite) inferCategory(ctx context.Context, keywords []string) (string, error) {
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return "", fmt.Errorf("catalog categories: %w", err)
	}
	if len(categories) == 0 {
		return "", nil
	}

	for _, category := range categories {
		lower := strings.ToLower(category)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return category, nil
			}
		}
	}

	// Count keyword overlaps per category; declaration order breaks ties.
	best := ""
	bestMatches := 0
	for _, category := range categories {
		items, err := s.store.Products(ctx, category)
		if err != nil {
			return "", fmt.Errorf("catalog lookup: %w", err)
		}
		matches := 0
		for _, item := range items {
			lower := strings.ToLower(item.Name)
			for _, keyword := range keywords {
				if strings.Contains(lower, keyword) {
					matches++
				}
			}
		}
		if matches > bestMatches {
			best = category
			bestMatches = matches
		}
	}
	if best != "" {
		return best, nil
	}

	return categories[0], nil
}

// ApplyDiscount resolves the product, then the code, and reports both the
// original and the reduced price.
func (s *Suite) ApplyDiscount(ctx context.Context, p contractx.ApplyDiscountParams) (contractx.DiscountResult, error) {
	availability, err := s.CheckAvailability(ctx, contractx.CheckAvailabilityParams{ProductName: p.ProductName})
	if err != nil {
		return contractx.DiscountResult{}, err
	}
	if !availability.Found {
		return contractx.DiscountResult{
			Success: false,
			Message: availability.Message,
		}, nil
	}

	rate, err := s.store.Rate(ctx, p.DiscountCode)
	if err != nil {
		if errors.Is(err, storex.ErrCodeNotFound) {
			return contractx.DiscountResult{
				Success: false,
				Message: fmt.Sprintf("Sorry, the discount code %s is invalid or expired.", p.DiscountCode),
			}, nil
		}
		return contractx.DiscountResult{}, fmt.Errorf("discount lookup: %w", err)
	}

	discounted := float64(availability.Price) * (1 - rate)
	return contractx.DiscountResult{
		Success:         true,
		Product:         availability.Product,
		OriginalPrice:   availability.Price,
		DiscountRate:    rate * 100,
		DiscountedPrice: discounted,
		Message: fmt.Sprintf("Discount code %s applied! %s price reduced from %s to %s.",
			p.DiscountCode, availability.Product, nairaInt(availability.Price), naira(discounted)),
	}, nil
}
