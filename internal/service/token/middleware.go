package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kindmarket/kindmarket/internal/models"
)

// checkCookie validates the access cookie and falls back to refresh rotation
// when it has expired. Returns the claims plus the rotated pair when one was
// issued.
func (t *TokenService) checkCookie(c echo.Context) (jwt.MapClaims, string, string, error) {
	asCookie, err := c.Cookie("accessToken")
	if err == nil && asCookie.Value != "" {
		claims, parseErr := parseHMAC(asCookie.Value, t.JWTSecret)
		if parseErr == nil {
			return claims, "", "", nil
		}
		if !errors.Is(parseErr, jwt.ErrTokenExpired) {
			return nil, "", "", echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
	}

	rfCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return nil, "", "", echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}
	newAccess, newRefresh, claims, err := t.RotateToken(rfCookie.Value)
	if err != nil {
		return nil, "", "", echo.NewHTTPError(http.StatusUnauthorized, "cannot rotate token: "+err.Error())
	}
	return claims, newAccess, newRefresh, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) error {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	role, _ := claims["role"].(string)
	c.Set("userID", uint(sub))
	c.Set("role", role)
	return nil
}

func (t *TokenService) authenticate(c echo.Context) (jwt.MapClaims, error) {
	claims, newAccess, newRefresh, err := t.checkCookie(c)
	if err != nil {
		return nil, err
	}
	if newRefresh != "" {
		c.SetCookie(CreateCookie("accessToken", newAccess, "/", time.Now().Add(AccessTTL)))
		c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(RefreshTTL)))
	}
	if err := setUserContext(c, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// RequireUser authenticates the request, refreshing cookies when needed.
func (t *TokenService) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := t.authenticate(c); err != nil {
			return err
		}
		return next(c)
	}
}

// RequireAdmin additionally demands the admin role claim.
func (t *TokenService) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.authenticate(c)
		if err != nil {
			return err
		}
		if role, _ := claims["role"].(string); role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}

// UserID reads the authenticated user from the echo context.
func UserID(c echo.Context) (uint, error) {
	v, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return v, nil
}
