package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/transport"
)

func TestAddItemAggregatesSameProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	_, err := svc.AddItem(ctx, user.ID, prod.ID, 1)
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, user.ID, prod.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), item.Quantity)

	view, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, int64(1000), view.TotalCents)
}

func TestAddItemUnknownProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}

	user := seedUser(t, r, "buyer@example.com")

	_, err := svc.AddItem(context.Background(), user.ID, 12345, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemCoercesQuantity(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(context.Background(), user.ID, prod.ID, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), item.Quantity)
}

func TestDecreaseToZeroDeletesLine(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(ctx, user.ID, prod.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, user.ID, item.ID, transport.UpdateCartItemRequest{
		Action: transport.CartActionDecrease,
	})
	require.NoError(t, err)
	require.Nil(t, updated)

	view, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.Equal(t, int64(0), view.TotalCents)
}

func TestExplicitZeroQuantityDeletesLine(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(ctx, user.ID, prod.ID, 3)
	require.NoError(t, err)

	zero := int64(0)
	updated, err := svc.UpdateQuantity(ctx, user.ID, item.ID, transport.UpdateCartItemRequest{Quantity: &zero})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestIncreaseBumpsQuantity(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(ctx, user.ID, prod.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, user.ID, item.ID, transport.UpdateCartItemRequest{
		Action: transport.CartActionIncrease,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), updated.Quantity)
}

func TestCartOwnershipEnforced(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	owner := seedUser(t, r, "owner@example.com")
	intruder := seedUser(t, r, "intruder@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(ctx, owner.ID, prod.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, intruder.ID, item.ID, transport.UpdateCartItemRequest{
		Action: transport.CartActionIncrease,
	})
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.RemoveItem(ctx, intruder.ID, item.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetCartWithoutCartIsEmpty(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}

	user := seedUser(t, r, "buyer@example.com")

	view, err := svc.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.Equal(t, int64(0), view.TotalCents)

	count, err := svc.ItemCount(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestRemoveItemDeletesUnconditionally(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(ctx, user.ID, prod.ID, 5)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveItem(ctx, user.ID, item.ID))

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}
