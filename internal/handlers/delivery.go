package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foodhub75/Food-App/internal/insights"
)

type DeliveryHandler struct {
	AI *insights.Client
}

// CheckArea answers the footer "do you deliver here?" widget.
func (h *DeliveryHandler) CheckArea(c echo.Context) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	result := h.AI.CheckDeliveryArea(c.Request().Context(), req.Query)
	return c.JSON(http.StatusOK, result)
}
