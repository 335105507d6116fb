package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/repo"
)

// SellerEntry is where a seller lands after login: register when no profile
// exists, then pending/rejected/dashboard by profile state.
type SellerEntry string

const (
	EntryRegister  SellerEntry = "register"
	EntryPending   SellerEntry = "pending"
	EntryRejected  SellerEntry = "rejected"
	EntryDashboard SellerEntry = "dashboard"
)

type SellerService struct {
	Repo *repo.GormRepo
}

// RegisterSeller is idempotent: an existing pending or approved profile is
// returned untouched. A rejected profile re-enters pending with the newly
// submitted details.
func (s *SellerService) RegisterSeller(ctx context.Context, userID uint, businessName, taxID, category string) (*models.SellerProfile, error) {
	if strings.TrimSpace(businessName) == "" {
		return nil, fmt.Errorf("%w: business_name required", ErrValidation)
	}
	if strings.TrimSpace(taxID) == "" {
		return nil, fmt.Errorf("%w: tax_id required", ErrValidation)
	}

	profile, err := s.Repo.GetSellerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if !profile.IsRejected {
			return profile, nil
		}
		profile.BusinessName = businessName
		profile.TaxID = taxID
		profile.Category = category
		profile.IsRejected = false
		profile.RejectionReason = ""
		if err := s.Repo.SaveSellerProfile(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	profile = &models.SellerProfile{
		UserID:       userID,
		BusinessName: businessName,
		TaxID:        taxID,
		Category:     category,
	}
	if err := s.Repo.CreateSellerProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ApproveSeller clears any rejection state and promotes the linked user.
// Approving an already approved profile is a no-op.
func (s *SellerService) ApproveSeller(ctx context.Context, profileID uint) (*models.SellerProfile, error) {
	profile, err := s.Repo.GetSellerProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seller profile %d", ErrNotFound, profileID)
		}
		return nil, err
	}

	profile.IsApproved = true
	profile.IsRejected = false
	profile.RejectionReason = ""
	if err := s.Repo.SaveSellerProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.Repo.SetRole(ctx, profile.UserID, models.RoleSeller); err != nil {
		return nil, err
	}
	return profile, nil
}

// RejectSeller flags the profile and demotes the user; the row is kept so the
// user can re-apply and admins retain the audit trail.
func (s *SellerService) RejectSeller(ctx context.Context, profileID uint, reason string) (*models.SellerProfile, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reason required", ErrValidation)
	}

	profile, err := s.Repo.GetSellerProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seller profile %d", ErrNotFound, profileID)
		}
		return nil, err
	}

	profile.IsRejected = true
	profile.IsApproved = false
	profile.RejectionReason = reason
	if err := s.Repo.SaveSellerProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.Repo.SetRole(ctx, profile.UserID, models.RoleUser); err != nil {
		return nil, err
	}
	return profile, nil
}

// ResolveEntry re-reads the profile on every call; approvals happen
// out-of-band through the admin gateway, so cached state is never trusted.
func (s *SellerService) ResolveEntry(ctx context.Context, userID uint) (SellerEntry, *models.SellerProfile, error) {
	profile, err := s.Repo.GetSellerProfile(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	switch {
	case profile == nil:
		return EntryRegister, nil, nil
	case profile.IsRejected:
		return EntryRejected, profile, nil
	case !profile.IsApproved:
		return EntryPending, profile, nil
	default:
		return EntryDashboard, profile, nil
	}
}

// IsSellerAndApproved is the catalog write guard: the role row must say
// seller and the profile must be approved.
func (s *SellerService) IsSellerAndApproved(ctx context.Context, userID uint) (bool, error) {
	role, err := s.Repo.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	if role != models.RoleSeller {
		return false, nil
	}
	profile, err := s.Repo.GetSellerProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile != nil && profile.IsApproved, nil
}
