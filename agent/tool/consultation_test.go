package tool

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	storex "github.com/Samilincoln/ai-customer-chat/agent/store"
)

type fakeSearcher struct {
	text    string
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newSearchSuite(t *testing.T, search contractx.Searcher) *Suite {
	t.Helper()
	suite, err := NewSuite(storex.NewSeededStore(), search)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return suite
}

func TestConsultationSuccess(t *testing.T) {
	t.Parallel()

	search := &fakeSearcher{text: "Lagos has several reputable suppliers."}
	suite := newSearchSuite(t, search)

	result, err := suite.Consultation(context.Background(), contractx.ConsultationParams{
		ConsultationType: "business",
		Subject:          "hair suppliers",
		Location:         "Lagos",
		Purpose:          "wholesale",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	want := "Here's what I found about hair suppliers in Lagos for wholesale:\n\nLagos has several reputable suppliers."
	if result.Response != want {
		t.Fatalf("unexpected response: %q", result.Response)
	}
	if result.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}
}

func TestConsultationQueryAssemblyOrder(t *testing.T) {
	t.Parallel()

	search := &fakeSearcher{text: "ok"}
	suite := newSearchSuite(t, search)

	_, err := suite.Consultation(context.Background(), contractx.ConsultationParams{
		ConsultationType: "business",
		Subject:          "hair import",
		BusinessType:     "beauty supply",
		Purpose:          "resale",
		Location:         "Abuja",
		Description:      "small shop",
		Budget:           500000,
		Currency:         "NGN",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "business hair import beauty supply resale Abuja small shop 500000 NGN"
	if len(search.queries) != 1 || search.queries[0] != want {
		t.Fatalf("unexpected query: %v", search.queries)
	}
}

func TestConsultationSkipsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	search := &fakeSearcher{text: "ok"}
	suite := newSearchSuite(t, search)

	result, err := suite.Consultation(context.Background(), contractx.ConsultationParams{
		ConsultationType: "general",
		Subject:          "return policy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SearchQueryUsed != "general return policy" {
		t.Fatalf("unexpected query: %q", result.SearchQueryUsed)
	}
	if result.Response != "Here's what I found about return policy:\n\nok" {
		t.Fatalf("unexpected response: %q", result.Response)
	}
}

func TestConsultationSearchFailure(t *testing.T) {
	t.Parallel()

	search := &fakeSearcher{err: errors.New("search api: status 500")}
	suite := newSearchSuite(t, search)

	result, err := suite.Consultation(context.Background(), contractx.ConsultationParams{
		ConsultationType: "business",
		Subject:          "wig pricing",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure result, got %+v", result)
	}
	if result.ErrorDetail != "search api: status 500" {
		t.Fatalf("unexpected error detail: %q", result.ErrorDetail)
	}
	want := "I couldn't find information about wig pricing. Please try again or contact support."
	if result.Response != want {
		t.Fatalf("unexpected response: %q", result.Response)
	}
}

func TestConsultationWithoutSearcher(t *testing.T) {
	t.Parallel()

	suite := newTestSuite(t)
	result, err := suite.Consultation(context.Background(), contractx.ConsultationParams{
		ConsultationType: "business",
		Subject:          "logistics",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure without a searcher, got %+v", result)
	}
	if result.ErrorDetail != "search collaborator is not configured" {
		t.Fatalf("unexpected error detail: %q", result.ErrorDetail)
	}
}
