package httpserver

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/service/token"
	"github.com/kindmarket/kindmarket/internal/transport"
)

func TestRegisterLoginLogout(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	tokens := &token.TokenService{DB: r.DB, JWTSecret: []byte("access-secret"), RefreshSecret: []byte("refresh-secret")}
	h := &AuthHandler{
		Repo: r, Tokens: tokens, Producer: events.NopPublisher{},
		JWTSecret: []byte("access-secret"), RefreshSecret: []byte("refresh-secret"),
	}

	c, rec := newJSONContext(t, e, http.MethodPost, "/api/v1/register", transport.RegisterRequest{
		Email: "new@example.com", Password: "hunter22", FirstName: "New", LastName: "User",
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate email conflicts.
	c, _ = newJSONContext(t, e, http.MethodPost, "/api/v1/register", transport.RegisterRequest{
		Email: "new@example.com", Password: "hunter22",
	})
	require.Equal(t, http.StatusConflict, httpStatus(t, h.Register(c)))

	// Wrong password is unauthorized.
	c, _ = newJSONContext(t, e, http.MethodPost, "/api/v1/login", transport.LoginRequest{
		Email: "new@example.com", Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, httpStatus(t, h.Login(c)))

	c, rec = newJSONContext(t, e, http.MethodPost, "/api/v1/login", transport.LoginRequest{
		Email: "new@example.com", Password: "hunter22",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body["access_token"])
	require.NotEmpty(t, body["refresh_token"])
	require.Equal(t, models.RoleUser, body["role"])

	cookies := rec.Result().Cookies()
	names := map[string]bool{}
	for _, ck := range cookies {
		names[ck.Name] = true
	}
	require.True(t, names["accessToken"])
	require.True(t, names["refreshToken"])
}

func TestRegisterCharityAccount(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	tokens := &token.TokenService{DB: r.DB, JWTSecret: []byte("access-secret"), RefreshSecret: []byte("refresh-secret")}
	h := &AuthHandler{
		Repo: r, Tokens: tokens, Producer: events.NopPublisher{},
		JWTSecret: []byte("access-secret"), RefreshSecret: []byte("refresh-secret"),
	}

	c, rec := newJSONContext(t, e, http.MethodPost, "/api/v1/register", transport.RegisterRequest{
		Email: "charity@example.com", Password: "hunter22", AccountType: models.RoleCharity,
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	decodeBody(t, rec, &user)
	role, err := r.GetRole(c.Request().Context(), user.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleCharity, role)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	h := &AuthHandler{Repo: r, Producer: events.NopPublisher{}}

	c, _ := newJSONContext(t, e, http.MethodPost, "/api/v1/register", transport.RegisterRequest{Email: "x@example.com"})
	require.Equal(t, http.StatusBadRequest, httpStatus(t, h.Register(c)))
}
