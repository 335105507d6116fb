package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/repo"
	"github.com/kindmarket/kindmarket/internal/transport"
)

type CharityService struct {
	Repo *repo.GormRepo
}

// ListCauses returns every cause with its funding progress percent.
func (s *CharityService) ListCauses(ctx context.Context) ([]transport.CauseProgress, error) {
	causes, err := s.Repo.ListCauses(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CauseProgress, 0, len(causes))
	for _, cause := range causes {
		progress := 0.0
		if cause.TargetCents > 0 {
			progress = float64(cause.RaisedCents) / float64(cause.TargetCents) * 100
		}
		out = append(out, transport.CauseProgress{Cause: cause, Progress: progress})
	}
	return out, nil
}

// Donate records the donation and bumps the cause's raised amount in one
// transaction.
func (s *CharityService) Donate(ctx context.Context, userID, causeID uint, amountCents int64) (*models.Donation, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}

	var donation models.Donation
	txErr := s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		r := s.Repo.WithTx(tx)

		if _, err := r.GetCause(ctx, causeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cause %d", ErrNotFound, causeID)
			}
			return err
		}

		donation = models.Donation{UserID: userID, CauseID: causeID, AmountCents: amountCents}
		if err := r.CreateDonation(ctx, &donation); err != nil {
			return err
		}
		return r.AddToRaised(ctx, causeID, amountCents)
	})
	if txErr != nil {
		return nil, txErr
	}
	return &donation, nil
}

func (s *CharityService) ApplyDonor(ctx context.Context, userID uint, req transport.DonorApplicationRequest) (*models.DonorApplication, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	donorType := req.DonorType
	if donorType == "" {
		donorType = models.DonorTypeIndividual
	}
	if donorType != models.DonorTypeIndividual && donorType != models.DonorTypeOrganization {
		return nil, fmt.Errorf("%w: unknown donor_type %q", ErrValidation, req.DonorType)
	}

	app := &models.DonorApplication{
		UserID:    userID,
		DonorType: donorType,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Reason:    req.Reason,
		PhotoPath: req.PhotoPath,
	}
	if err := s.Repo.CreateDonorApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *CharityService) ApplyCharity(ctx context.Context, req transport.CharityApplicationRequest) (*models.CharityApplication, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description required", ErrValidation)
	}

	app := &models.CharityApplication{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Description:  req.Description,
		PhotoPath:    req.PhotoPath,
		DocumentPath: req.DocumentPath,
	}
	if err := s.Repo.CreateCharityApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}
