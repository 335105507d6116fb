package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/repo"
)

// AdminService is the approval gateway for donor and charity applications
// plus order status management. Seller approvals live on SellerService.
type AdminService struct {
	Repo *repo.GormRepo
}

type DashboardStats struct {
	Donors    repo.ApprovalCounts `json:"donors"`
	Charities repo.ApprovalCounts `json:"charities"`
	Sellers   repo.ApprovalCounts `json:"sellers"`
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	donors, err := s.Repo.DonorApplicationCounts(ctx)
	if err != nil {
		return nil, err
	}
	charities, err := s.Repo.CharityApplicationCounts(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.Repo.SellerProfileCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{Donors: donors, Charities: charities, Sellers: sellers}, nil
}

// Approve/reject below are idempotent flag flips; records stay for the
// dashboard and re-application.

func (s *AdminService) ApproveDonor(ctx context.Context, id uint) (*models.DonorApplication, error) {
	app, err := s.Repo.GetDonorApplication(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: donor application %d", ErrNotFound, id)
		}
		return nil, err
	}
	app.Approved = true
	app.Rejected = false
	if err := s.Repo.SaveDonorApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *AdminService) RejectDonor(ctx context.Context, id uint) (*models.DonorApplication, error) {
	app, err := s.Repo.GetDonorApplication(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: donor application %d", ErrNotFound, id)
		}
		return nil, err
	}
	app.Rejected = true
	app.Approved = false
	if err := s.Repo.SaveDonorApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *AdminService) ApproveCharity(ctx context.Context, id uint) (*models.CharityApplication, error) {
	app, err := s.Repo.GetCharityApplication(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: charity application %d", ErrNotFound, id)
		}
		return nil, err
	}
	app.Approved = true
	app.Rejected = false
	if err := s.Repo.SaveCharityApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *AdminService) RejectCharity(ctx context.Context, id uint) (*models.CharityApplication, error) {
	app, err := s.Repo.GetCharityApplication(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: charity application %d", ErrNotFound, id)
		}
		return nil, err
	}
	app.Rejected = true
	app.Approved = false
	if err := s.Repo.SaveCharityApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// allowedTransitions: pending → paid|cancelled, paid → fulfilled. Orders are
// otherwise immutable.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:    {models.OrderStatusFulfilled},
}

func (s *AdminService) SetOrderStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	ok := false
	for _, next := range allowedTransitions[order.Status] {
		if next == status {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrConflict, order.Status, status)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
