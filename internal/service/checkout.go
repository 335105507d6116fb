package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/logging"
	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/payment"
	"github.com/kindmarket/kindmarket/internal/repo"
	"github.com/kindmarket/kindmarket/internal/transport"
)

type CheckoutService struct {
	Repo     *repo.GormRepo
	Payments payment.Client
}

// Checkout converts the user's cart into an order. Order creation, price
// snapshots, stock decrements and cart clearing run in one transaction;
// the payment intent is requested only after commit and its failure leaves
// the order pending.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, req transport.CheckoutRequest) (*transport.CheckoutResponse, error) {
	if err := validateShipping(req); err != nil {
		return nil, err
	}

	var (
		order models.Order
		items []models.OrderItem
	)

	txErr := s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		cart, err := r.GetCart(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrEmptyCart
		}

		lines, err := r.GetCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total int64
		items = make([]models.OrderItem, 0, len(lines))
		snapshots := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			p, err := r.GetProduct(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
				}
				return err
			}

			ok, err := r.DecrementStock(ctx, p.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, p.ID)
			}

			total += line.Quantity * p.PriceCents
			snapshots = append(snapshots, models.OrderItem{
				ProductID:  p.ID,
				PriceCents: p.PriceCents,
				Quantity:   line.Quantity,
			})
		}

		order = models.Order{
			PublicID:   uuid.New(),
			UserID:     userID,
			FullName:   req.FullName,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
			TotalCents: total,
			Status:     models.OrderStatusPending,
		}
		if err := r.CreateOrder(ctx, &order); err != nil {
			return err
		}

		for _, snap := range snapshots {
			snap.OrderID = order.ID
			if err := r.CreateOrderItem(ctx, &snap); err != nil {
				return err
			}
			items = append(items, snap)
		}

		return r.ClearCart(ctx, cart.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &transport.CheckoutResponse{Order: &order, Items: items}

	intent, err := s.Payments.CreateIntent(ctx, order.PublicID, order.TotalCents)
	if err != nil {
		logging.FromContext(ctx).Warn("payment_intent_failed",
			"order_id", order.ID, "error", err)
		resp.PaymentPending = true
		return resp, nil
	}
	resp.Payment = intent
	return resp, nil
}

func validateShipping(req transport.CheckoutRequest) error {
	fields := map[string]string{
		"full_name":   req.FullName,
		"phone":       req.Phone,
		"address":     req.Address,
		"city":        req.City,
		"postal_code": req.PostalCode,
	}
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s required", ErrValidation, name)
		}
	}
	return nil
}
