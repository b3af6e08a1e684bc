package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/models"
	"github.com/foodhub75/Food-App/internal/token"
	"github.com/foodhub75/Food-App/internal/util"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *OrderHandler) listOwn(c echo.Context, scope func(*gorm.DB) *gorm.DB) error {
	q := h.DB.Preload("Items").
		Where("user_id = ?", token.UserID(c)).
		Order("created_at DESC")

	var orders []models.Order
	if err := scope(q).Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	return h.listOwn(c, func(q *gorm.DB) *gorm.DB { return q })
}

// ActiveOrders feeds the tracking view: everything not yet delivered.
func (h *OrderHandler) ActiveOrders(c echo.Context) error {
	return h.listOwn(c, func(q *gorm.DB) *gorm.DB {
		return q.Where("status <> ?", models.StatusDelivered)
	})
}

// DeliveredOrders feeds the review prompt.
func (h *OrderHandler) DeliveredOrders(c echo.Context) error {
	return h.listOwn(c, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", models.StatusDelivered)
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *OrderHandler) AdminListOrders(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":     page,
			"size":     limit,
			"total":    total,
			"has_prev": page > 1,
			"has_next": int64(offset+limit) < total,
		},
	})
}

// UpdateStatus sets an order's status unconditionally: any of the four values
// in any direction. An unknown order id leaves the ledger untouched.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !models.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var order models.Order
	err := h.DB.Where("id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, echo.Map{"updated": false})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	order.Status = req.Status
	if err := h.DB.Save(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.UserID, map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return c.JSON(http.StatusOK, echo.Map{"updated": true, "order": order})
}

// Stats powers the admin dashboard cards.
func (h *OrderHandler) Stats(c echo.Context) error {
	var (
		revenue   int64
		total     int64
		pending   int64
		delivered int64
	)

	if err := h.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").Scan(&revenue).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusPending).Count(&pending).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusDelivered).Count(&delivered).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"revenue":      revenue,
		"total_orders": total,
		"pending":      pending,
		"delivered":    delivered,
	})
}
