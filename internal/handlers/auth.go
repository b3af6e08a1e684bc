package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/hash"
	"github.com/foodhub75/Food-App/internal/models"
	"github.com/foodhub75/Food-App/internal/seed"
	"github.com/foodhub75/Food-App/internal/token"
)

type AuthHandler struct {
	DB            *gorm.DB
	Tokens        *token.Service
	Producer      *events.Producer
	AdminPassword string
}

// Register always succeeds: there is no email uniqueness check and the
// password hash stored here is never verified again for regular accounts.
// Matching sign-in goes by email alone.
func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name == "" {
		req.Name = "New User"
	}
	if req.Role != models.RoleAdmin {
		req.Role = models.RoleUser
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", req.Email),
		Role:         req.Role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.Tokens.IssueSession(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
		"role":   user.Role,
	})
	return c.JSON(http.StatusOK, user)
}

// Login resolves the admin sentinel first, then falls back to exact-email
// lookup. Regular account passwords are intentionally not checked.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var user models.User
	if h.isAdminSentinel(req.Email, req.Password) {
		if err := h.DB.Where("role = ?", models.RoleAdmin).
			Order("created_at ASC").First(&user).Error; err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
	} else {
		err := h.DB.Where("email = ?", req.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err := h.Tokens.IssueSession(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"user":     user,
		"is_admin": user.Role == models.RoleAdmin,
	})
}

func (h *AuthHandler) isAdminSentinel(identifier, password string) bool {
	matched := strings.ToLower(identifier) == "admin" || identifier == seed.AdminEmail
	return matched && password == h.AdminPassword
}

// Logout revokes the session and empties the cart: a logged-out session
// always starts from a clean cart.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := token.UserID(c)

	if err := h.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.Tokens.ClearSession(c)

	publish(c, h.Producer, events.TopicUserEvents, userID, map[string]any{
		"type":   "user_logged_out",
		"userID": userID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
