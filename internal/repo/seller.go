package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/models"
)

// GetSellerProfile returns nil without error when the user never applied.
func (r *GormRepo) GetSellerProfile(ctx context.Context, userID uint) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) GetSellerProfileByID(ctx context.Context, id uint) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.DB.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) CreateSellerProfile(ctx context.Context, profile *models.SellerProfile) error {
	return r.DB.WithContext(ctx).Create(profile).Error
}

func (r *GormRepo) SaveSellerProfile(ctx context.Context, profile *models.SellerProfile) error {
	return r.DB.WithContext(ctx).Save(profile).Error
}

func (r *GormRepo) ListSellerProfiles(ctx context.Context, pendingOnly bool) ([]models.SellerProfile, error) {
	q := r.DB.WithContext(ctx).Model(&models.SellerProfile{})
	if pendingOnly {
		q = q.Where("is_approved = ? AND is_rejected = ?", false, false)
	}

	var profiles []models.SellerProfile
	if err := q.Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
