package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/checkout"
	"github.com/foodhub75/Food-App/internal/models"
	"github.com/foodhub75/Food-App/internal/token"
)

type CheckoutHandler struct {
	DB      *gorm.DB
	Manager *checkout.Manager
}

// Quote prices the current cart without starting payment.
func (h *CheckoutHandler) Quote(c echo.Context) error {
	userID := token.UserID(c)

	var items []models.CartItem
	if err := h.DB.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}
	return c.JSON(http.StatusOK, checkout.Price(subtotal))
}

// StartPayment kicks off settlement. Guarded calls (empty cart, already
// processing) return the current state unchanged instead of failing.
func (h *CheckoutHandler) StartPayment(c echo.Context) error {
	var req struct {
		Method string `json:"method"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !models.ValidPaymentMethod(req.Method) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	state, err := h.Manager.Start(c.Request().Context(), token.UserID(c), token.UserName(c), req.Method)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"state": state})
}

// Status reports the payment state, with the order id once settled.
func (h *CheckoutHandler) Status(c echo.Context) error {
	state, orderID := h.Manager.State(token.UserID(c))
	resp := echo.Map{"state": state}
	if orderID != "" {
		resp["order_id"] = orderID
	}
	return c.JSON(http.StatusOK, resp)
}

// Reset returns a settled checkout to idle, for when the user leaves the
// checkout view.
func (h *CheckoutHandler) Reset(c echo.Context) error {
	h.Manager.Reset(token.UserID(c))
	state, _ := h.Manager.State(token.UserID(c))
	return c.JSON(http.StatusOK, echo.Map{"state": state})
}
