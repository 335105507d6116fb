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

type CatalogService struct {
	Repo   *repo.GormRepo
	Seller *SellerService
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) ListSellerProducts(ctx context.Context, sellerID uint) ([]models.Product, error) {
	return s.Repo.ListSellerProducts(ctx, sellerID)
}

func (s *CatalogService) guard(ctx context.Context, userID uint) error {
	ok, err := s.Seller.IsSellerAndApproved(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: seller approval required", ErrForbidden)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, sellerID uint, req transport.CreateProductRequest) (*models.Product, error) {
	if err := s.guard(ctx, sellerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	prod := &models.Product{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		ImagePath:   req.ImagePath,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, sellerID, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	if err := s.guard(ctx, sellerID); err != nil {
		return nil, err
	}

	prod, err := s.Repo.GetSellerProduct(ctx, id, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		prod.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
		}
		prod.Stock = *req.Stock
	}
	if req.ImagePath != nil {
		prod.ImagePath = *req.ImagePath
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sellerID, id uint) error {
	if err := s.guard(ctx, sellerID); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id, sellerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
