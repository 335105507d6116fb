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

type SellerHandler struct {
	Svc      *service.SellerService
	Producer events.Publisher
}

func (h *SellerHandler) Register(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.SellerRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Svc.RegisterSeller(c.Request().Context(), userID, req.BusinessName, req.TaxID, req.Category)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(userID), map[string]any{
		"type":      "seller_applied",
		"userID":    userID,
		"profileID": profile.ID,
	})
	return c.JSON(http.StatusOK, profile)
}

// Entry routes the seller to the right view after login; profile state is
// always re-read because approvals happen out-of-band.
func (h *SellerHandler) Entry(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	entry, profile, err := h.Svc.ResolveEntry(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"entry":   entry,
		"profile": profile,
	})
}
