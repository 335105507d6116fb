package httpserver

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/kindmarket/kindmarket/internal/events"
	"github.com/kindmarket/kindmarket/internal/logging"
	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/service"
	"github.com/kindmarket/kindmarket/internal/service/search"
	"github.com/kindmarket/kindmarket/internal/service/token"
	"github.com/kindmarket/kindmarket/internal/transport"
	"github.com/kindmarket/kindmarket/internal/util"
)

type ProductHandler struct {
	Svc      *service.CatalogService
	ES       *elasticsearch.Client
	Producer events.Publisher
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) MyProducts(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.ListSellerProducts(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}

	h.indexProduct(c, prod)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(userID), map[string]any{
		"type":      "product_created",
		"userID":    userID,
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(c.Request().Context(), userID, id, req)
	if err != nil {
		return httpError(err)
	}

	h.indexProduct(c, prod)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(userID), map[string]any{
		"type":      "product_updated",
		"userID":    userID,
		"productID": prod.ID,
	})
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	userID, err := token.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), userID, id); err != nil {
		return httpError(err)
	}

	if h.ES != nil {
		if err := search.DeleteProduct(c.Request().Context(), h.ES, search.ProductIndex, id); err != nil {
			logging.FromContext(c.Request().Context()).Error("es delete failed", "productID", id, "error", err)
		}
	}
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(userID), map[string]any{
		"type":      "product_deleted",
		"userID":    userID,
		"productID": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) indexProduct(c echo.Context, prod *models.Product) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.IndexProduct(ctx, h.ES, search.ProductIndex, prod); err != nil {
		logging.FromContext(ctx).Error("es index failed", "productID", prod.ID, "error", err)
	}
}
