package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/logging"
	"github.com/kindmarket/kindmarket/internal/service"
	"github.com/kindmarket/kindmarket/internal/service/token"
	"github.com/kindmarket/kindmarket/internal/transport"
)

type CheckoutHandler struct {
	Svc      *service.CheckoutService
	Producer events.Publisher
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.Checkout(ctx, userID, req)
	if err != nil {
		// Checking out an empty cart is a no-op back to the cart view.
		if errors.Is(err, service.ErrEmptyCart) {
			return c.Redirect(http.StatusSeeOther, "/api/v1/cart")
		}
		l.Warn("checkout_failed", "userID", userID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(userID), map[string]any{
		"type":        "order_created",
		"userID":      userID,
		"orderID":     resp.Order.ID,
		"total_cents": resp.Order.TotalCents,
	})

	l.Info("checkout_success", "userID", userID, "orderID", resp.Order.ID)
	return c.JSON(http.StatusCreated, resp)
}
