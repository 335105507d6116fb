package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/transport"
)

func seedOrder(t *testing.T, svc *AdminService, userID uint, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		PublicID:   uuid.New(),
		UserID:     userID,
		FullName:   "Test Buyer",
		Phone:      "+31600000000",
		Address:    "Main St 1",
		City:       "Amsterdam",
		PostalCode: "1011AB",
		TotalCents: 1000,
		Status:     status,
	}
	require.NoError(t, svc.Repo.CreateOrder(context.Background(), order))
	return order
}

func TestDonorApprovalFlagsAreMutuallyExclusive(t *testing.T) {
	r := newTestRepo(t)
	charity := &CharityService{Repo: r}
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "donor@example.com")
	app, err := charity.ApplyDonor(ctx, user.ID, transport.DonorApplicationRequest{
		Name: "Jan Donor", Email: "donor@example.com",
	})
	require.NoError(t, err)

	rejected, err := svc.RejectDonor(ctx, app.ID)
	require.NoError(t, err)
	require.True(t, rejected.Rejected)
	require.False(t, rejected.Approved)

	approved, err := svc.ApproveDonor(ctx, app.ID)
	require.NoError(t, err)
	require.True(t, approved.Approved)
	require.False(t, approved.Rejected)
}

func TestCharityApprovalFlagsAreMutuallyExclusive(t *testing.T) {
	r := newTestRepo(t)
	charity := &CharityService{Repo: r}
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	app, err := charity.ApplyCharity(ctx, transport.CharityApplicationRequest{
		Name: "Food Bank", Email: "fb@example.com", Description: "weekly food parcels",
	})
	require.NoError(t, err)

	approved, err := svc.ApproveCharity(ctx, app.ID)
	require.NoError(t, err)
	require.True(t, approved.Approved)

	rejected, err := svc.RejectCharity(ctx, app.ID)
	require.NoError(t, err)
	require.True(t, rejected.Rejected)
	require.False(t, rejected.Approved)
}

func TestApproveUnknownApplications(t *testing.T) {
	r := newTestRepo(t)
	svc := &AdminService{Repo: r}

	_, err := svc.ApproveDonor(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ApproveCharity(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardCounts(t *testing.T) {
	r := newTestRepo(t)
	charity := &CharityService{Repo: r}
	sellers := &SellerService{Repo: r}
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	donor := seedUser(t, r, "donor@example.com")
	app, err := charity.ApplyDonor(ctx, donor.ID, transport.DonorApplicationRequest{
		Name: "Jan Donor", Email: "donor@example.com",
	})
	require.NoError(t, err)
	_, err = svc.ApproveDonor(ctx, app.ID)
	require.NoError(t, err)

	seller := seedUser(t, r, "seller@example.com")
	_, err = sellers.RegisterSeller(ctx, seller.ID, "Fair Goods", "NL001", "crafts")
	require.NoError(t, err)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.Donors.Approved)
	require.Equal(t, int64(0), stats.Donors.Pending)
	require.Equal(t, int64(1), stats.Sellers.Pending)
	require.Equal(t, int64(0), stats.Charities.Pending)
}

func TestOrderStatusTransitions(t *testing.T) {
	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@example.com")
	order := seedOrder(t, svc, user.ID, models.OrderStatusPending)

	// pending cannot jump straight to fulfilled.
	_, err := svc.SetOrderStatus(ctx, order.ID, models.OrderStatusFulfilled)
	require.ErrorIs(t, err, ErrConflict)

	paid, err := svc.SetOrderStatus(ctx, order.ID, models.OrderStatusPaid)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPaid, paid.Status)

	_, err = svc.SetOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrConflict)

	done, err := svc.SetOrderStatus(ctx, order.ID, models.OrderStatusFulfilled)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusFulfilled, done.Status)

	// Fulfilled is terminal.
	_, err = svc.SetOrderStatus(ctx, order.ID, models.OrderStatusPending)
	require.ErrorIs(t, err, ErrConflict)
}

func TestCancelPendingOrder(t *testing.T) {
	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "buyer@example.com")
	order := seedOrder(t, svc, user.ID, models.OrderStatusPending)

	cancelled, err := svc.SetOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, cancelled.Status)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	r := newTestRepo(t)
	svc := &AdminService{Repo: r}

	_, err := svc.SetOrderStatus(context.Background(), 404, models.OrderStatusPaid)
	require.ErrorIs(t, err, ErrNotFound)
}
