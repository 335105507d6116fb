package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/service"
	"github.com/kindmarket/kindmarket/internal/transport"
)

type AdminHandler struct {
	Svc      *service.AdminService
	Sellers  *service.SellerService
	Producer events.Publisher
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.Svc.Dashboard(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListSellers(c echo.Context) error {
	pendingOnly := c.QueryParam("pending") == "true"
	profiles, err := h.Svc.Repo.ListSellerProfiles(c.Request().Context(), pendingOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

func (h *AdminHandler) ApproveSeller(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.Sellers.ApproveSeller(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(profile.UserID), map[string]any{
		"type":      "seller_approved",
		"userID":    profile.UserID,
		"profileID": profile.ID,
	})
	return c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) RejectSeller(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req transport.RejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	profile, err := h.Sellers.RejectSeller(c.Request().Context(), id, req.Reason)
	if err != nil {
		return httpError(err)
	}
	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(profile.UserID), map[string]any{
		"type":      "seller_rejected",
		"userID":    profile.UserID,
		"profileID": profile.ID,
		"reason":    req.Reason,
	})
	return c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) ListDonorApplications(c echo.Context) error {
	apps, err := h.Svc.Repo.ListDonorApplications(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, apps)
}

func (h *AdminHandler) ApproveDonor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.Svc.ApproveDonor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	publish(c, h.Producer, events.TopicCharityEvents, fmt.Sprint(app.ID), map[string]any{
		"type":          "donor_approved",
		"applicationID": app.ID,
	})
	return c.JSON(http.StatusOK, app)
}

func (h *AdminHandler) RejectDonor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.Svc.RejectDonor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	publish(c, h.Producer, events.TopicCharityEvents, fmt.Sprint(app.ID), map[string]any{
		"type":          "donor_rejected",
		"applicationID": app.ID,
	})
	return c.JSON(http.StatusOK, app)
}

func (h *AdminHandler) ListCharityApplications(c echo.Context) error {
	apps, err := h.Svc.Repo.ListCharityApplications(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, apps)
}

func (h *AdminHandler) ApproveCharity(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.Svc.ApproveCharity(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	publish(c, h.Producer, events.TopicCharityEvents, fmt.Sprint(app.ID), map[string]any{
		"type":          "charity_approved",
		"applicationID": app.ID,
	})
	return c.JSON(http.StatusOK, app)
}

func (h *AdminHandler) RejectCharity(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.Svc.RejectCharity(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	publish(c, h.Producer, events.TopicCharityEvents, fmt.Sprint(app.ID), map[string]any{
		"type":          "charity_rejected",
		"applicationID": app.ID,
	})
	return c.JSON(http.StatusOK, app)
}

func (h *AdminHandler) SetOrderStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req transport.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	order, err := h.Svc.SetOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return httpError(err)
	}
	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.UserID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return c.JSON(http.StatusOK, order)
}
