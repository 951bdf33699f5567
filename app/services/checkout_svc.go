package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/printcraft/storefront/app/models"
)

// OrderSubmitter hands a confirmed cart to fulfilment.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, cart models.Cart) (*models.OrderReceipt, error)
}

// SimulatedSubmitter acknowledges every order after Delay without contacting anything.
type SimulatedSubmitter struct {
	Delay time.Duration
	Now   func() time.Time
}

func (s SimulatedSubmitter) SubmitOrder(ctx context.Context, cart models.Cart) (*models.OrderReceipt, error) {
	if err := sleepCtx(ctx, s.Delay); err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return &models.OrderReceipt{
		OrderNumber: "PC-" + uuid.NewString()[:8],
		Items:       cart.Items,
		TotalItems:  cart.TotalItems,
		TotalPrice:  cart.TotalPrice,
		PlacedAt:    now().UTC(),
	}, nil
}

type CheckoutService struct {
	submitter OrderSubmitter
}

func NewCheckoutService(submitter OrderSubmitter) *CheckoutService {
	return &CheckoutService{submitter: submitter}
}

// Checkout submits the cart and clears it once the submission is acknowledged.
func (s *CheckoutService) Checkout(ctx context.Context, cart *CartStore) (*models.OrderReceipt, error) {
	snapshot := cart.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, models.ErrEmptyCart
	}

	receipt, err := s.submitter.SubmitOrder(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	cart.ClearCart()
	log.Printf("CheckoutService.Checkout: order %s placed with %d items, total %s", receipt.OrderNumber, receipt.TotalItems, receipt.TotalPrice.StringFixed(2))
	return receipt, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
