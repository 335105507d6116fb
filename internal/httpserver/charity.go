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

type CharityHandler struct {
	Svc      *service.CharityService
	Producer events.Publisher
}

func (h *CharityHandler) ListCauses(c echo.Context) error {
	causes, err := h.Svc.ListCauses(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, causes)
}

func (h *CharityHandler) Donate(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.DonateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	donation, err := h.Svc.Donate(c.Request().Context(), userID, req.CauseID, req.AmountCents)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCharityEvents, fmt.Sprint(userID), map[string]any{
		"type":         "donation_made",
		"userID":       userID,
		"causeID":      req.CauseID,
		"amount_cents": req.AmountCents,
	})
	return c.JSON(http.StatusCreated, donation)
}

func (h *CharityHandler) ApplyDonor(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.DonorApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	app, err := h.Svc.ApplyDonor(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCharityEvents, fmt.Sprint(userID), map[string]any{
		"type":          "donor_application_submitted",
		"userID":        userID,
		"applicationID": app.ID,
	})
	return c.JSON(http.StatusCreated, app)
}

func (h *CharityHandler) ApplyCharity(c echo.Context) error {
	var req transport.CharityApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	app, err := h.Svc.ApplyCharity(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCharityEvents, fmt.Sprint(app.ID), map[string]any{
		"type":          "charity_application_submitted",
		"applicationID": app.ID,
	})
	return c.JSON(http.StatusCreated, app)
}
