package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/service"
	"github.com/kindmarket/kindmarket/internal/transport"
)

func TestAddToCartHandler(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	h := &CartHandler{Svc: &service.CartService{Repo: r}, Producer: events.NopPublisher{}}

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	c, rec := newJSONContext(t, e, http.MethodPost, "/api/v1/cart", transport.AddToCartRequest{
		ProductID: prod.ID, Quantity: 1,
	})
	c.Set("userID", user.ID)
	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Same product again aggregates into the existing line.
	c, rec = newJSONContext(t, e, http.MethodPost, "/api/v1/cart", transport.AddToCartRequest{
		ProductID: prod.ID, Quantity: 1,
	})
	c.Set("userID", user.ID)
	require.NoError(t, h.AddToCart(c))

	var item models.CartItem
	decodeBody(t, rec, &item)
	require.Equal(t, int64(2), item.Quantity)
}

func TestAddToCartRequiresProduct(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	h := &CartHandler{Svc: &service.CartService{Repo: r}, Producer: events.NopPublisher{}}

	user := seedUser(t, r, "buyer@example.com")

	c, _ := newJSONContext(t, e, http.MethodPost, "/api/v1/cart", transport.AddToCartRequest{})
	c.Set("userID", user.ID)
	require.Equal(t, http.StatusBadRequest, httpStatus(t, h.AddToCart(c)))

	c, _ = newJSONContext(t, e, http.MethodPost, "/api/v1/cart", transport.AddToCartRequest{ProductID: 404})
	c.Set("userID", user.ID)
	require.Equal(t, http.StatusNotFound, httpStatus(t, h.AddToCart(c)))
}

func TestAddToCartUnauthenticated(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	h := &CartHandler{Svc: &service.CartService{Repo: r}, Producer: events.NopPublisher{}}

	c, _ := newJSONContext(t, e, http.MethodPost, "/api/v1/cart", transport.AddToCartRequest{ProductID: 1})
	require.Equal(t, http.StatusUnauthorized, httpStatus(t, h.AddToCart(c)))
}

func TestUpdateItemDeletesOnDecrease(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	h := &CartHandler{Svc: svc, Producer: events.NopPublisher{}}

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(context.Background(), user.ID, prod.ID, 1)
	require.NoError(t, err)

	c, rec := newJSONContext(t, e, http.MethodPatch, "/api/v1/cart/1", transport.UpdateCartItemRequest{
		Action: transport.CartActionDecrease,
	})
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(item.ID)))
	c.Set("userID", user.ID)

	require.NoError(t, h.UpdateItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Contains(t, body, "deleted_item")
}

func TestRemoveItemHandler(t *testing.T) {
	e := echo.New()
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	h := &CartHandler{Svc: svc, Producer: events.NopPublisher{}}

	user := seedUser(t, r, "buyer@example.com")
	prod := seedProduct(t, r, 99, "mug", 500, 10)

	item, err := svc.AddItem(context.Background(), user.ID, prod.ID, 2)
	require.NoError(t, err)

	c, rec := newJSONContext(t, e, http.MethodDelete, "/api/v1/cart/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(item.ID)))
	c.Set("userID", user.ID)

	require.NoError(t, h.RemoveItem(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newJSONContext(t, e, http.MethodGet, "/api/v1/cart/count", nil)
	c.Set("userID", user.ID)
	require.NoError(t, h.Count(c))

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Equal(t, float64(0), body["count"])
}
