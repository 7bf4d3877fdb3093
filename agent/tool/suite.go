// Package tool implements the deterministic handlers bound to each intent:
// catalog lookup, alternative recommendation, order tracking, discounting,
// price negotiation, and consultation lookup. Handlers are read-only against
// their collaborators and safe to call concurrently.
package tool

import (
	"errors"
	"time"

	"github.com/dustin/go-humanize"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	storex "github.com/Samilincoln/ai-customer-chat/agent/store"
)

// Suite bundles the handlers with their injected collaborators. The zero
// value is not usable; construct with NewSuite.
type Suite struct {
	store  storex.Store
	search contractx.Searcher

	now func() time.Time
}

func NewSuite(st storex.Store, search contractx.Searcher) (*Suite, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	return &Suite{
		store:  st,
		search: search,
		now:    time.Now,
	}, nil
}

func naira(amount float64) string {
	return "₦" + humanize.Commaf(amount)
}

func nairaInt(amount int64) string {
	return "₦" + humanize.Comma(amount)
}
