package tool

import (
	"context"
	"fmt"
	"math"
	"testing"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	storex "github.com/Samilincoln/ai-customer-chat/agent/store"
)

func floatPtr(v float64) *float64 { return &v }

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestNewNegotiationContextDefaults(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(10000, 9000, nil, nil)
	if nc.MaxPrice != 10000 {
		t.Fatalf("expected max to default to original price, got %v", nc.MaxPrice)
	}
	if nc.MinPrice != 8000 {
		t.Fatalf("expected min to default to 80%% of original, got %v", nc.MinPrice)
	}
}

func TestNewNegotiationContextClampsInvertedBounds(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(25000, 24000, floatPtr(22000), floatPtr(30000))
	if nc.MinPrice != 22000 {
		t.Fatalf("expected min clamped down to max, got %v", nc.MinPrice)
	}
	if nc.MaxPrice != 22000 {
		t.Fatalf("unexpected max: %v", nc.MaxPrice)
	}
}

func TestResolveNegotiationOfferAtOrAboveMax(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(25000, 26000, nil, nil)
	outcome := ResolveNegotiation(nc)
	if !outcome.Success {
		t.Fatal("expected success")
	}
	if outcome.FinalPrice == nil || *outcome.FinalPrice != 25000 {
		t.Fatalf("expected close at max, got %+v", outcome.FinalPrice)
	}
	if outcome.CounterOffer == nil || *outcome.CounterOffer != 25000 {
		t.Fatalf("expected counter at max for an above-max offer, got %+v", outcome.CounterOffer)
	}
	if outcome.DiscountPercent != nil {
		t.Fatalf("expected no discount percent when closing off the offer, got %v", *outcome.DiscountPercent)
	}
}

func TestResolveNegotiationOfferExactlyMax(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(25000, 25000, nil, nil)
	outcome := ResolveNegotiation(nc)
	if !outcome.Success {
		t.Fatal("expected success")
	}
	if outcome.FinalPrice == nil || *outcome.FinalPrice != 25000 {
		t.Fatalf("unexpected final price: %+v", outcome.FinalPrice)
	}
	if outcome.CounterOffer != nil {
		t.Fatalf("expected no counter when the offer is accepted as given, got %v", *outcome.CounterOffer)
	}
	if outcome.DiscountPercent == nil || *outcome.DiscountPercent != 0 {
		t.Fatalf("expected a 0%% discount at full max price, got %+v", outcome.DiscountPercent)
	}
}

func TestResolveNegotiationHighOfferAcceptedAsGiven(t *testing.T) {
	t.Parallel()

	// Position (24000-20000)/5000 = 0.8, the acceptance threshold.
	nc := NewNegotiationContext(25000, 24000, nil, nil)
	outcome := ResolveNegotiation(nc)
	if !outcome.Success {
		t.Fatal("expected success")
	}
	if outcome.FinalPrice == nil || *outcome.FinalPrice != 24000 {
		t.Fatalf("expected acceptance at the offer, got %+v", outcome.FinalPrice)
	}
	if outcome.CounterOffer != nil {
		t.Fatalf("expected no counter, got %v", *outcome.CounterOffer)
	}
	if outcome.DiscountPercent == nil || !closeTo(*outcome.DiscountPercent, 4.0) {
		t.Fatalf("expected a 4%% discount, got %+v", outcome.DiscountPercent)
	}
}

func TestResolveNegotiationLowOfferCountered(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(25000, 21000, nil, nil)
	outcome := ResolveNegotiation(nc)
	if !outcome.Success {
		t.Fatal("expected success with a counter")
	}

	position := (21000.0 - nc.MinPrice) / (nc.MaxPrice - nc.MinPrice)
	want := nc.MinPrice + (counterBase-counterSlope*position)*(nc.MaxPrice-nc.MinPrice)
	if outcome.FinalPrice == nil || !closeTo(*outcome.FinalPrice, want) {
		t.Fatalf("expected counter near %v, got %+v", want, outcome.FinalPrice)
	}
	if outcome.CounterOffer == nil || *outcome.CounterOffer != *outcome.FinalPrice {
		t.Fatalf("expected counter to mirror the final price, got %+v", outcome.CounterOffer)
	}
	if outcome.DiscountPercent != nil {
		t.Fatal("expected no discount percent on a countered offer")
	}
}

func TestResolveNegotiationOfferExactlyMinCountered(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(25000, 20000, nil, nil)
	outcome := ResolveNegotiation(nc)
	if !outcome.Success {
		t.Fatal("expected success at the minimum")
	}
	// Position 0 counters at min + 0.7*range.
	if outcome.FinalPrice == nil || !closeTo(*outcome.FinalPrice, 23500) {
		t.Fatalf("expected counter at 23500, got %+v", outcome.FinalPrice)
	}
}

func TestResolveNegotiationOfferBelowMinRejected(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(25000, 19999, nil, nil)
	outcome := ResolveNegotiation(nc)
	if outcome.Success {
		t.Fatal("expected rejection below the minimum")
	}
	if outcome.FinalPrice != nil || outcome.CounterOffer != nil || outcome.DiscountPercent != nil {
		t.Fatalf("expected empty outcome, got %+v", outcome)
	}
}

func TestResolveNegotiationZeroRange(t *testing.T) {
	t.Parallel()

	nc := NewNegotiationContext(25000, 25000, floatPtr(25000), floatPtr(25000))
	outcome := ResolveNegotiation(nc)
	if !outcome.Success {
		t.Fatal("expected success at the single acceptable price")
	}
	if outcome.FinalPrice == nil || *outcome.FinalPrice != 25000 {
		t.Fatalf("unexpected final price: %+v", outcome.FinalPrice)
	}
}

func TestResolveNegotiationAcceptedPriceNeverDecreasesWithOffer(t *testing.T) {
	t.Parallel()

	// Across the accepted band the closing price tracks the offer, so a
	// higher offer never closes lower.
	prev := -1.0
	for offer := 24000.0; offer <= 26000.0; offer += 100 {
		outcome := ResolveNegotiation(NewNegotiationContext(25000, offer, nil, nil))
		if !outcome.Success || outcome.FinalPrice == nil {
			t.Fatalf("expected acceptance at offer %v", offer)
		}
		if *outcome.FinalPrice < prev {
			t.Fatalf("final price regressed at offer %v: %v < %v", offer, *outcome.FinalPrice, prev)
		}
		prev = *outcome.FinalPrice
	}
}

func newTestSuite(t *testing.T) *Suite {
	t.Helper()
	suite, err := NewSuite(storex.NewSeededStore(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return suite
}

func TestHandleNegotiationAcceptsHighOffer(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "brazilian hair",
		OfferedPrice: floatPtr(24000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.FinalPrice == nil || *result.FinalPrice != 24000 {
		t.Fatalf("unexpected final price: %+v", result.FinalPrice)
	}
	want := fmt.Sprintf(
		"Great news! We can accept your offer of %s for the %s. That's a %.1f%% discount!",
		naira(24000), "Brazilian Hair Bundle", *result.DiscountPercent)
	if result.Message != want {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestHandleNegotiationCountersLowOffer(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "brazilian hair",
		OfferedPrice: floatPtr(20000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.CounterOffer == nil {
		t.Fatalf("expected a counter offer, got %+v", result)
	}
	want := fmt.Sprintf(
		"Thank you for your offer of %s for the %s. The best we can do is %s. Would that work for you?",
		naira(20000), "Brazilian Hair Bundle", naira(*result.CounterOffer))
	if result.Message != want {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestHandleNegotiationAboveMaxClosesAtMax(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "brazilian hair",
		OfferedPrice: floatPtr(30000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.FinalPrice == nil || *result.FinalPrice != 25000 {
		t.Fatalf("expected close at the list price, got %+v", result)
	}
	want := fmt.Sprintf(
		"Thank you for your interest in %s! We can accept your offer of %s.",
		"Brazilian Hair Bundle", naira(25000))
	if result.Message != want {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestHandleNegotiationRejectsLowballOffer(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "brazilian hair",
		OfferedPrice: floatPtr(15000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected rejection, got %+v", result)
	}
	want := fmt.Sprintf(
		"Thank you for your interest in %s. Your offer of %s is below what we can accept. The current price is %s, but we could consider an offer of at least %s. Would you like to make another offer?",
		"Brazilian Hair Bundle", naira(15000), naira(25000), naira(20000))
	if result.Message != want {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestHandleNegotiationUnknownProduct(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "spaceship",
		OfferedPrice: floatPtr(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure for an unknown product")
	}
	if result.Message != "Sorry, I couldn't find spaceship in our inventory." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestHandleNegotiationOutOfStockProduct(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "hair growth oil",
		OfferedPrice: floatPtr(4500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure for an out-of-stock product")
	}
	want := "Sorry, Hair Growth Oil is currently out of stock. Would you like to see some alternatives?"
	if result.Message != want {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestHandleNegotiationZeroListPriceAcceptsWithoutDiscount(t *testing.T) {
	t.Parallel()

	st := storex.NewMemoryStore(
		[]string{"promos"},
		[]storex.Product{{ID: "p1", Name: "Free Sample", Category: "promos", Price: 0, Stock: 5}},
		nil, nil,
	)
	suite, err := NewSuite(st, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "free sample",
		OfferedPrice: floatPtr(900),
		MaxPrice:     floatPtr(1000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.FinalPrice == nil || *result.FinalPrice != 900 {
		t.Fatalf("expected acceptance at the offer, got %+v", result)
	}
	if result.DiscountPercent != nil {
		t.Fatalf("expected no discount percent without a list price, got %v", *result.DiscountPercent)
	}
	want := "Thank you for your interest in Free Sample! We can accept your offer of ₦900."
	if result.Message != want {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestHandleNegotiationExplicitBounds(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.HandleNegotiation(context.Background(), contractx.NegotiationParams{
		ProductName:  "designer jeans",
		OfferedPrice: floatPtr(13000),
		MaxPrice:     floatPtr(14000),
		MinPrice:     floatPtr(12000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.MinPrice != 12000 || result.MaxPrice != 14000 {
		t.Fatalf("expected explicit bounds to be honored, got min=%v max=%v", result.MinPrice, result.MaxPrice)
	}
	// Position 0.5 counters at 12000 + 0.45*2000.
	if result.CounterOffer == nil || !closeTo(*result.CounterOffer, 12900) {
		t.Fatalf("expected counter near 12900, got %+v", result.CounterOffer)
	}
}
