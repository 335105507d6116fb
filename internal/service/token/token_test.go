package token

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/models"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &TokenService{
		DB:            db,
		JWTSecret:     []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("access-secret")

	raw, err := SignAccessToken(42, models.RoleSeller, secret)
	require.NoError(t, err)

	claims, err := parseHMAC(raw, secret)
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, models.RoleSeller, claims["role"])

	_, err = parseHMAC(raw, []byte("wrong-secret"))
	require.Error(t, err)
}

func TestValidateRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService(t)

	access, err := SignAccessToken(42, models.RoleUser, svc.RefreshSecret)
	require.NoError(t, err)

	_, err = svc.ValidateRefresh(access)
	require.Error(t, err)
}

func TestValidateRefreshRequiresStoredRow(t *testing.T) {
	svc := newTestService(t)

	raw, err := SignRefreshToken(42, models.RoleUser, svc.RefreshSecret)
	require.NoError(t, err)

	// Signed but never persisted.
	_, err = svc.ValidateRefresh(raw)
	require.Error(t, err)

	require.NoError(t, SaveRefreshToken(svc.DB, raw, 42, models.RoleUser))
	claims, err := svc.ValidateRefresh(raw)
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
}

func TestRotateRevokesOldRefresh(t *testing.T) {
	svc := newTestService(t)

	old, err := SignRefreshToken(42, models.RoleUser, svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, old, 42, models.RoleUser))

	access, refreshed, claims, err := svc.RotateToken(old)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refreshed)
	require.Equal(t, float64(42), claims["sub"])

	// The old refresh token is burned.
	_, err = svc.ValidateRefresh(old)
	require.Error(t, err)

	// The new one works.
	_, err = svc.ValidateRefresh(refreshed)
	require.NoError(t, err)
}

func TestRevokeRefresh(t *testing.T) {
	svc := newTestService(t)

	raw, err := SignRefreshToken(7, models.RoleAdmin, svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(svc.DB, raw, 7, models.RoleAdmin))
	require.NoError(t, svc.RevokeRefresh(raw))

	_, err = svc.ValidateRefresh(raw)
	require.Error(t, err)
}
