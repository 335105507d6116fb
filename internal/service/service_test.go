package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/config"
	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return repo.New(db)
}

func seedUser(t *testing.T, r *repo.GormRepo, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
	}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, sellerID uint, name string, priceCents, stock int64) *models.Product {
	t.Helper()
	p := &models.Product{
		SellerID:   sellerID,
		Name:       name,
		PriceCents: priceCents,
		Stock:      stock,
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}
