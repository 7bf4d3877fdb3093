package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	storex "github.com/Samilincoln/ai-customer-chat/agent/store"
)

// TrackOrder resolves an order id case-insensitively against the ledger and
// templates a status message for the three known states.
func (s *Suite) TrackOrder(ctx context.Context, p contractx.TrackOrderParams) (contractx.OrderResult, error) {
	orderID := strings.ToUpper(strings.TrimSpace(p.OrderID))

	order, err := s.store.Order(ctx, orderID)
	if err != nil {
		if errors.Is(err, storex.ErrOrderNotFound) {
			return contractx.OrderResult{
				Found:   false,
				Message: fmt.Sprintf("I couldn't find order %s. Please check the order number and try again.", orderID),
			}, nil
		}
		return contractx.OrderResult{}, fmt.Errorf("ledger lookup: %w", err)
	}

	var message string
	switch order.Status {
	case "delivered":
		message = fmt.Sprintf("Order %s was delivered on %s.", orderID, order.DeliveryDate)
	case "shipped":
		message = fmt.Sprintf("Order %s has been shipped with tracking number %s. Expected delivery: %s.", orderID, order.Tracking, order.DeliveryDate)
	default:
		message = fmt.Sprintf("Order %s is being processed. Expected delivery: %s.", orderID, order.DeliveryDate)
	}

	return contractx.OrderResult{
		Found:        true,
		OrderID:      orderID,
		Status:       order.Status,
		Tracking:     order.Tracking,
		DeliveryDate: order.DeliveryDate,
		Message:      message,
	}, nil
}
