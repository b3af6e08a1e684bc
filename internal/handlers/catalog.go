package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/insights"
	"github.com/foodhub75/Food-App/internal/models"
	"github.com/foodhub75/Food-App/internal/token"
)

type CatalogHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	AI       *insights.Client
}

// ListMenu filters by category and case-insensitive name substring, keeping
// catalog order. "All" (or no category) matches everything.
func (h *CatalogHandler) ListMenu(c echo.Context) error {
	category := c.QueryParam("category")
	search := c.QueryParam("q")

	q := h.DB.Model(&models.MenuItem{}).Order("id ASC")
	if category != "" && category != models.CategoryAll {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		q = q.Where("lower(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetMenuItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var item models.MenuItem
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

// GetInsight returns AI display copy for an item. The text service is best
// effort; a fixed fallback comes back when it is unavailable.
func (h *CatalogHandler) GetInsight(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var item models.MenuItem
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	insight := h.AI.DescribeFood(c.Request().Context(), item.Name)
	return c.JSON(http.StatusOK, insight)
}

const defaultRating = 5.0

func (h *CatalogHandler) CreateMenuItem(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Price       int64  `json:"price"`
		Category    string `json:"category"`
		Image       string `json:"image"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" || req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and positive price are required")
	}
	if !models.ValidCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category")
	}

	item := models.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
		Rating:      defaultRating,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicMenuEvents, token.UserID(c), map[string]any{
		"type":   "menu_item_added",
		"itemID": item.ID,
		"name":   item.Name,
	})
	return c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a catalog entry. An absent id is a no-op. Carts and
// past orders keep their own copies and are unaffected.
func (h *CatalogHandler) DeleteMenuItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.DB.Delete(&models.MenuItem{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicMenuEvents, token.UserID(c), map[string]any{
		"type":   "menu_item_deleted",
		"itemID": id,
	})
	return c.JSON(http.StatusOK, echo.Map{"deleted_item": id})
}
