package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/models"
)

func (r *GormRepo) ListCauses(ctx context.Context) ([]models.CharityCause, error) {
	var causes []models.CharityCause
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&causes).Error; err != nil {
		return nil, err
	}
	return causes, nil
}

func (r *GormRepo) GetCause(ctx context.Context, id uint) (*models.CharityCause, error) {
	var cause models.CharityCause
	if err := r.DB.WithContext(ctx).First(&cause, id).Error; err != nil {
		return nil, err
	}
	return &cause, nil
}

func (r *GormRepo) CreateCause(ctx context.Context, cause *models.CharityCause) error {
	return r.DB.WithContext(ctx).Create(cause).Error
}

func (r *GormRepo) CreateDonation(ctx context.Context, donation *models.Donation) error {
	return r.DB.WithContext(ctx).Create(donation).Error
}

func (r *GormRepo) AddToRaised(ctx context.Context, causeID uint, amountCents int64) error {
	return r.DB.WithContext(ctx).Model(&models.CharityCause{}).
		Where("id = ?", causeID).
		Update("raised_cents", gorm.Expr("raised_cents + ?", amountCents)).Error
}

func (r *GormRepo) CreateDonorApplication(ctx context.Context, app *models.DonorApplication) error {
	return r.DB.WithContext(ctx).Create(app).Error
}

func (r *GormRepo) GetDonorApplication(ctx context.Context, id uint) (*models.DonorApplication, error) {
	var app models.DonorApplication
	if err := r.DB.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormRepo) SaveDonorApplication(ctx context.Context, app *models.DonorApplication) error {
	return r.DB.WithContext(ctx).Save(app).Error
}

func (r *GormRepo) ListDonorApplications(ctx context.Context) ([]models.DonorApplication, error) {
	var apps []models.DonorApplication
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *GormRepo) CreateCharityApplication(ctx context.Context, app *models.CharityApplication) error {
	return r.DB.WithContext(ctx).Create(app).Error
}

func (r *GormRepo) GetCharityApplication(ctx context.Context, id uint) (*models.CharityApplication, error) {
	var app models.CharityApplication
	if err := r.DB.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormRepo) SaveCharityApplication(ctx context.Context, app *models.CharityApplication) error {
	return r.DB.WithContext(ctx).Save(app).Error
}

func (r *GormRepo) ListCharityApplications(ctx context.Context) ([]models.CharityApplication, error) {
	var apps []models.CharityApplication
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

type ApprovalCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

func (r *GormRepo) countFlags(ctx context.Context, model any) (ApprovalCounts, error) {
	var counts ApprovalCounts
	db := r.DB.WithContext(ctx).Model(model)
	if err := db.Where("approved = ? AND rejected = ?", false, false).Count(&counts.Pending).Error; err != nil {
		return counts, err
	}
	db = r.DB.WithContext(ctx).Model(model)
	if err := db.Where("approved = ?", true).Count(&counts.Approved).Error; err != nil {
		return counts, err
	}
	db = r.DB.WithContext(ctx).Model(model)
	if err := db.Where("rejected = ?", true).Count(&counts.Rejected).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

func (r *GormRepo) DonorApplicationCounts(ctx context.Context) (ApprovalCounts, error) {
	return r.countFlags(ctx, &models.DonorApplication{})
}

func (r *GormRepo) CharityApplicationCounts(ctx context.Context) (ApprovalCounts, error) {
	return r.countFlags(ctx, &models.CharityApplication{})
}

func (r *GormRepo) SellerProfileCounts(ctx context.Context) (ApprovalCounts, error) {
	var counts ApprovalCounts
	db := r.DB.WithContext(ctx).Model(&models.SellerProfile{})
	if err := db.Where("is_approved = ? AND is_rejected = ?", false, false).Count(&counts.Pending).Error; err != nil {
		return counts, err
	}
	db = r.DB.WithContext(ctx).Model(&models.SellerProfile{})
	if err := db.Where("is_approved = ?", true).Count(&counts.Approved).Error; err != nil {
		return counts, err
	}
	db = r.DB.WithContext(ctx).Model(&models.SellerProfile{})
	if err := db.Where("is_rejected = ?", true).Count(&counts.Rejected).Error; err != nil {
		return counts, err
	}
	return counts, nil
}
