package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/insights"
	"github.com/foodhub75/Food-App/internal/models"
)

type ReviewHandler struct {
	DB *gorm.DB
	AI *insights.Client
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	var reviews []models.Review
	if err := h.DB.Order("id DESC").Find(&reviews).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}

// CreateReview accepts guest reviews too; an order context, when given,
// prefixes the comment.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
		Context string `json:"context"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name == "" {
		req.Name = "Guest User"
	}
	if req.Rating < 1 || req.Rating > 5 {
		req.Rating = 5
	}
	comment := req.Comment
	if req.Context != "" {
		comment = fmt.Sprintf("[%s] %s", req.Context, comment)
	}

	review := models.Review{
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   comment,
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", req.Name),
		Location:  "Just Now",
		CreatedAt: time.Now(),
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, review)
}

// PolishReview runs draft text through the text service. A failure returns
// the draft untouched, never an error.
func (h *ReviewHandler) PolishReview(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	polished := h.AI.PolishText(c.Request().Context(), req.Text)
	return c.JSON(http.StatusOK, echo.Map{"text": polished})
}
