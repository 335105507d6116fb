package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/hash"
	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/repo"
	"github.com/kindmarket/kindmarket/internal/service/token"
	"github.com/kindmarket/kindmarket/internal/transport"
)

type AuthHandler struct {
	Repo          *repo.GormRepo
	Tokens        *token.TokenService
	Producer      events.Publisher
	JWTSecret     []byte
	RefreshSecret []byte
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	role := models.RoleUser
	if req.AccountType == models.RoleCharity {
		role = models.RoleCharity
	}

	if _, err := h.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return httpError(err)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return httpError(err)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: pwHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := h.Repo.CreateUser(ctx, &user); err != nil {
		return httpError(err)
	}
	if err := h.Repo.SetRole(ctx, user.ID, role); err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
		"role":   role,
	})

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	// Role comes from the role row, not the identity record.
	role, err := h.Repo.GetRole(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	accessToken, err := token.SignAccessToken(user.ID, role, h.JWTSecret)
	if err != nil {
		return httpError(err)
	}
	refreshToken, err := token.SignRefreshToken(user.ID, role, h.RefreshSecret)
	if err != nil {
		return httpError(err)
	}
	if err := token.SaveRefreshToken(h.Repo.DB, refreshToken, user.ID, role); err != nil {
		return httpError(err)
	}

	c.SetCookie(token.CreateCookie("accessToken", accessToken, "/", time.Now().Add(token.AccessTTL)))
	c.SetCookie(token.CreateCookie("refreshToken", refreshToken, "/", time.Now().Add(token.RefreshTTL)))

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return c.JSON(http.StatusOK, map[string]any{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"role":          role,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie("refreshToken"); err == nil && ck.Value != "" {
		if err := h.Tokens.RevokeRefresh(ck.Value); err != nil {
			return httpError(err)
		}
	}
	expired := time.Now().Add(-time.Hour)
	c.SetCookie(token.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(token.CreateCookie("refreshToken", "", "/", expired))
	return c.NoContent(http.StatusNoContent)
}
