package tool

import (
	"context"
	"fmt"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
)

// Negotiation tuning. The 0.8 position threshold and the 0.7-0.5x counter
// curve are product-chosen constants; changing them changes deal outcomes.
const (
	defaultMinPriceRatio = 0.8
	acceptPosition       = 0.8
	counterBase          = 0.7
	counterSlope         = 0.5
	counterFloor         = 0.1
	counterCeiling       = 0.9
)

// NegotiationContext is the clamped input to the pure resolver. Construct
// with NewNegotiationContext so the minPrice <= maxPrice <= originalPrice
// defaults and clamps hold.
type NegotiationContext struct {
	OriginalPrice float64
	OfferedPrice  float64
	MaxPrice      float64
	MinPrice      float64
}

// NewNegotiationContext applies the defaulting rules: maxPrice falls back to
// the original price, minPrice to 80% of it, and minPrice is clamped down to
// maxPrice when a caller supplies an inverted pair.
func NewNegotiationContext(originalPrice, offeredPrice float64, maxPrice, minPrice *float64) NegotiationContext {
	max := originalPrice
	if maxPrice != nil {
		max = *maxPrice
	}
	min := originalPrice * defaultMinPriceRatio
	if minPrice != nil {
		min = *minPrice
	}
	if min > max {
		min = max
	}
	return NegotiationContext{
		OriginalPrice: originalPrice,
		OfferedPrice:  offeredPrice,
		MaxPrice:      max,
		MinPrice:      min,
	}
}

// ResolveNegotiation computes the accept/counter/reject outcome for an offer.
// Pure and stateless: no I/O, safe for concurrent use.
//
// Offers at or above max close at max. Offers in [min, max) close as given
// when they sit in the top 20% of the range; below that the counter lands at
// min + clamp(0.7 - 0.5*position, 0.1, 0.9) * range, so low offers are pushed
// back harder while the counter stays strictly inside the range. Offers below
// min are rejected. DiscountPercent is reported only when the closing price
// equals the raw offer.
func ResolveNegotiation(nc NegotiationContext) contractx.NegotiationOutcome {
	var outcome contractx.NegotiationOutcome

	switch {
	case nc.OfferedPrice >= nc.MaxPrice:
		outcome.Success = true
		final := nc.MaxPrice
		outcome.FinalPrice = &final

	case nc.OfferedPrice >= nc.MinPrice:
		outcome.Success = true
		position := 1.0
		if priceRange := nc.MaxPrice - nc.MinPrice; priceRange > 0 {
			position = (nc.OfferedPrice - nc.MinPrice) / priceRange
		}
		if position >= acceptPosition {
			final := nc.OfferedPrice
			outcome.FinalPrice = &final
		} else {
			counterPosition := counterBase - counterSlope*position
			if counterPosition < counterFloor {
				counterPosition = counterFloor
			}
			if counterPosition > counterCeiling {
				counterPosition = counterCeiling
			}
			final := nc.MinPrice + counterPosition*(nc.MaxPrice-nc.MinPrice)
			outcome.FinalPrice = &final
		}

	default:
		outcome.Success = false
	}

	if outcome.FinalPrice != nil {
		if *outcome.FinalPrice != nc.OfferedPrice {
			counter := *outcome.FinalPrice
			outcome.CounterOffer = &counter
		} else if nc.OriginalPrice > 0 {
			percent := (nc.OriginalPrice - nc.OfferedPrice) / nc.OriginalPrice * 100
			outcome.DiscountPercent = &percent
		}
	}

	return outcome
}

// HandleNegotiation resolves a customer's price offer for a product. The
// catalog is consulted first: unknown products propagate the lookup message
// and out-of-stock products cannot be negotiated.
func (s *Suite) HandleNegotiation(ctx context.Context, p contractx.NegotiationParams) (contractx.NegotiationResult, error) {
	availability, err := s.CheckAvailability(ctx, contractx.CheckAvailabilityParams{ProductName: p.ProductName})
	if err != nil {
		return contractx.NegotiationResult{}, err
	}
	if !availability.Found {
		return contractx.NegotiationResult{
			Success: false,
			Message: availability.Message,
		}, nil
	}
	if !availability.Available {
		return contractx.NegotiationResult{
			Success: false,
			Product: availability.Product,
			Message: fmt.Sprintf("Sorry, %s is currently out of stock. Would you like to see some alternatives?", availability.Product),
		}, nil
	}

	nc := NewNegotiationContext(float64(availability.Price), *p.OfferedPrice, p.MaxPrice, p.MinPrice)
	outcome := ResolveNegotiation(nc)

	result := contractx.NegotiationResult{
		Success:         outcome.Success,
		Product:         availability.Product,
		OriginalPrice:   nc.OriginalPrice,
		MaxPrice:        nc.MaxPrice,
		MinPrice:        nc.MinPrice,
		OfferedPrice:    nc.OfferedPrice,
		FinalPrice:      outcome.FinalPrice,
		CounterOffer:    outcome.CounterOffer,
		DiscountPercent: outcome.DiscountPercent,
	}

	switch {
	case !outcome.Success:
		result.Message = fmt.Sprintf(
			"Thank you for your interest in %s. Your offer of %s is below what we can accept. The current price is %s, but we could consider an offer of at least %s. Would you like to make another offer?",
			availability.Product, naira(nc.OfferedPrice), naira(nc.OriginalPrice), naira(nc.MinPrice))
	case nc.OfferedPrice >= nc.MaxPrice:
		result.Message = fmt.Sprintf(
			"Thank you for your interest in %s! We can accept your offer of %s.",
			availability.Product, naira(nc.MaxPrice))
	case outcome.CounterOffer != nil:
		result.Message = fmt.Sprintf(
			"Thank you for your offer of %s for the %s. The best we can do is %s. Would that work for you?",
			naira(nc.OfferedPrice), availability.Product, naira(*outcome.CounterOffer))
	case outcome.DiscountPercent != nil:
		result.Message = fmt.Sprintf(
			"Great news! We can accept your offer of %s for the %s. That's a %.1f%% discount!",
			naira(nc.OfferedPrice), availability.Product, *outcome.DiscountPercent)
	default:
		// Accepted at the offer with no list price to discount against.
		result.Message = fmt.Sprintf(
			"Thank you for your interest in %s! We can accept your offer of %s.",
			availability.Product, naira(nc.OfferedPrice))
	}

	return result, nil
}
