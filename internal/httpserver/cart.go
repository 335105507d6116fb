package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/service"
	"github.com/kindmarket/kindmarket/internal/service/token"
	"github.com/kindmarket/kindmarket/internal/transport"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer events.Publisher
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	item, err := h.Svc.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateQuantity(c.Request().Context(), userID, itemID, req)
	if err != nil {
		return httpError(err)
	}
	if item == nil {
		publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
			"type":   "cart_item_deleted",
			"userID": userID,
			"itemID": itemID,
		})
		return c.JSON(http.StatusOK, map[string]any{"deleted_item": itemID})
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":     "cart_item_updated",
		"userID":   userID,
		"itemID":   itemID,
		"quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), userID, itemID); err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":   "cart_item_deleted",
		"userID": userID,
		"itemID": itemID,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Count(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}
	count, err := h.Svc.ItemCount(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"count": count})
}
