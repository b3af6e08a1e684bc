package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/insights"
	"github.com/foodhub75/Food-App/internal/models"
	"github.com/foodhub75/Food-App/internal/token"
)

type CartHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	AI       *insights.Client
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total int64             `json:"total"`
}

func (h *CartHandler) cart(userID string) (cartResponse, error) {
	var items []models.CartItem
	if err := h.DB.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return cartResponse{}, err
	}
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return cartResponse{Items: items, Total: total}, nil
}

func (h *CartHandler) GetCart(c echo.Context) error {
	resp, err := h.cart(token.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// AddToCart adds one unit of a menu item: an existing line is incremented,
// otherwise a new line is created with the item's current catalog snapshot.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID := token.UserID(c)

	var req struct {
		MenuItemID uint `json:"menu_item_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var item models.CartItem
	tx := h.DB.Where("user_id = ? AND menu_item_id = ?", userID, req.MenuItemID).First(&item)
	if tx.Error == nil {
		item.Quantity += 1
		if err := h.DB.Save(&item).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
			"type":     "cart_item_added",
			"userID":   userID,
			"itemID":   req.MenuItemID,
			"quantity": item.Quantity,
		})
		return c.JSON(http.StatusOK, item)
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, tx.Error.Error())
	}

	var menuItem models.MenuItem
	if err := h.DB.First(&menuItem, req.MenuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	newItem := models.CartItem{
		UserID:      userID,
		MenuItemID:  menuItem.ID,
		Name:        menuItem.Name,
		Price:       menuItem.Price,
		Category:    menuItem.Category,
		Image:       menuItem.Image,
		Description: menuItem.Description,
		Rating:      menuItem.Rating,
		Quantity:    1,
	}
	if err := h.DB.Create(&newItem).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
		"type":     "cart_item_added",
		"userID":   userID,
		"itemID":   req.MenuItemID,
		"quantity": newItem.Quantity,
	})
	return c.JSON(http.StatusOK, newItem)
}

// AdjustQuantity applies a signed delta to a line's quantity, clamped at 1.
// Removal is a separate action; an unknown item id is silently ignored.
func (h *CartHandler) AdjustQuantity(c echo.Context) error {
	userID := token.UserID(c)

	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil || itemID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var item models.CartItem
	findErr := h.DB.Where("user_id = ? AND menu_item_id = ?", userID, itemID).First(&item).Error
	if errors.Is(findErr, gorm.ErrRecordNotFound) {
		resp, err := h.cart(userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, resp)
	}
	if findErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, findErr.Error())
	}

	newQuantity := int(item.Quantity) + req.Delta
	if newQuantity < 1 {
		newQuantity = 1
	}
	item.Quantity = uint(newQuantity)
	if err := h.DB.Save(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
		"type":     "cart_quantity_adjusted",
		"userID":   userID,
		"itemID":   itemID,
		"quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

// RemoveFromCart deletes a line entirely. Absent ids are a no-op.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID := token.UserID(c)

	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil || itemID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.DB.
		Where("user_id = ? AND menu_item_id = ?", userID, itemID).
		Delete(&models.CartItem{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"itemID": itemID,
	})

	resp, err := h.cart(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID := token.UserID(c)

	if err := h.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})
	return c.JSON(http.StatusOK, cartResponse{Items: []models.CartItem{}, Total: 0})
}

// Suggestion asks the text service for one item that pairs with the cart.
func (h *CartHandler) Suggestion(c echo.Context) error {
	userID := token.UserID(c)

	var items []models.CartItem
	if err := h.DB.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(items) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"suggestion": insights.FallbackSuggestion})
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	suggestion := h.AI.SuggestPairing(c.Request().Context(), names)
	return c.JSON(http.StatusOK, echo.Map{"suggestion": suggestion})
}
