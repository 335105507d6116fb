package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/repo"
	"github.com/kindmarket/kindmarket/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

// AddItem upserts the (cart, product) line: a repeated add increments the
// existing quantity instead of creating a second row. Stock is not checked
// here, only at checkout.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, qty int64) (*models.CartItem, error) {
	if qty < 1 {
		qty = 1
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.FindCartItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		item.Quantity += qty
		if err := s.Repo.SaveCartItem(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	item = &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: qty}
	if err := s.Repo.CreateCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity applies an increase/decrease action or an explicit quantity.
// A quantity that would drop below one deletes the line; the returned item is
// nil in that case.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, req transport.UpdateCartItemRequest) (*models.CartItem, error) {
	item, err := s.Repo.GetUserCartItem(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, err
	}

	var newQty int64
	switch {
	case req.Action == transport.CartActionIncrease:
		newQty = item.Quantity + 1
	case req.Action == transport.CartActionDecrease:
		newQty = item.Quantity - 1
	case req.Quantity != nil:
		newQty = *req.Quantity
	default:
		return nil, fmt.Errorf("%w: action or quantity required", ErrValidation)
	}

	if newQty < 1 {
		if err := s.Repo.DeleteCartItem(ctx, item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = newQty
	if err := s.Repo.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.Repo.GetUserCartItem(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return err
	}
	return s.Repo.DeleteCartItem(ctx, item.ID)
}

// GetCart joins lines with live product data and computes totals. A missing
// cart is an empty view, not an error.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*transport.CartView, error) {
	view := &transport.CartView{Lines: []transport.CartLine{}}

	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return view, nil
	}

	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		p, err := s.Repo.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // product withdrawn since it was added
			}
			return nil, err
		}
		line := transport.CartLine{
			ItemID:        it.ID,
			ProductID:     p.ID,
			Name:          p.Name,
			PriceCents:    p.PriceCents,
			Quantity:      it.Quantity,
			SubtotalCents: it.Quantity * p.PriceCents,
		}
		view.TotalCents += line.SubtotalCents
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}

// ItemCount backs the navbar badge; computed on demand, never cached.
func (s *CartService) ItemCount(ctx context.Context, userID uint) (int64, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil || cart == nil {
		return 0, err
	}
	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}
