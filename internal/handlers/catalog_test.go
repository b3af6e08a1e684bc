package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/foodhub75/Food-App/internal/models"
)

func TestListMenuReturnsAllInOrder(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/menu?category=All&q=", nil)
	require.NoError(t, env.Catalog.ListMenu(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 8)
	require.Equal(t, "Supreme Beef Burger", items[0].Name)
	require.Equal(t, "Prawn Pad Thai", items[7].Name)
	for i := 1; i < len(items); i++ {
		require.Greater(t, items[i].ID, items[i-1].ID)
	}
}

func TestListMenuFiltersByCategoryAndText(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/menu?category=Pizza&q=MARGH", nil)
	require.NoError(t, env.Catalog.ListMenu(c))

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Classic Margherita", items[0].Name)
}

func TestListMenuCategoryOnly(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/menu?category=Burger", nil)
	require.NoError(t, env.Catalog.ListMenu(c))

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	for _, item := range items {
		require.Equal(t, models.CategoryBurger, item.Category)
	}
}

func TestCreateMenuItemDefaultsRating(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"name":     "Seekh Kebab Roll",
		"price":    280,
		"category": "Asian",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/menu", payload)
	require.NoError(t, env.Catalog.CreateMenuItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var item models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.Equal(t, 5.0, item.Rating)
	require.NotZero(t, item.ID)
}

func TestCreateMenuItemValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []map[string]any{
		{"price": 100, "category": "Pizza"},                       // missing name
		{"name": "Thing", "category": "Pizza"},                    // missing price
		{"name": "Thing", "price": 100, "category": "Shawarma"},   // unknown category
		{"name": "Thing", "price": -10, "category": "Pizza"},      // negative price
	}
	for _, payload := range cases {
		_, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/menu", payload)
		err := env.Catalog.CreateMenuItem(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestDeleteMenuItemAbsentIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/menu/9999", nil)
	c.SetParamNames("id")
	c.SetParamValues("9999")
	require.NoError(t, env.Catalog.DeleteMenuItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.MenuItem{}).Count(&count).Error)
	require.Equal(t, int64(8), count)
}

func TestDeleteMenuItemLeavesCartIntact(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("u-1", "Test User", "test@example.com")
	env.addToCart(user, 1)

	_, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/menu/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Catalog.DeleteMenuItem(c))

	var rows []models.CartItem
	require.NoError(t, env.DB.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "Supreme Beef Burger", rows[0].Name)
	require.Equal(t, int64(450), rows[0].Price)
}

func TestGetMenuItemNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/menu/404", nil)
	c.SetParamNames("id")
	c.SetParamValues("404")
	err := env.Catalog.GetMenuItem(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, he.Code)
}
