package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/checkout"
	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/insights"
	"github.com/foodhub75/Food-App/internal/models"
	"github.com/foodhub75/Food-App/internal/seed"
	"github.com/foodhub75/Food-App/internal/token"
)

const testAdminPassword = "123"

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Tokens   *token.Service
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Reviews  *ReviewHandler
	Manager  *checkout.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.MenuItem{},
		&models.User{},
		&models.RefreshToken{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	require.NoError(t, seed.Run(db, testAdminPassword))

	tokens := &token.Service{
		DB:            db,
		JWTSecret:     []byte("test_jwt_secret"),
		RefreshSecret: []byte("test_refresh_secret"),
	}
	prod := events.NewProducer("")
	ai := insights.NewClient("", "")
	manager := checkout.NewManager(db, checkout.SyncSettler{}, prod)

	return &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Tokens:   tokens,
		Auth:     &AuthHandler{DB: db, Tokens: tokens, Producer: prod, AdminPassword: testAdminPassword},
		Catalog:  &CatalogHandler{DB: db, Producer: prod, AI: ai},
		Cart:     &CartHandler{DB: db, Producer: prod, AI: ai},
		Checkout: &CheckoutHandler{DB: db, Manager: manager},
		Orders:   &OrderHandler{DB: db, Producer: prod},
		Reviews:  &ReviewHandler{DB: db, AI: ai},
		Manager:  manager,
	}
}

// doJSONRequest builds an echo context for calling a handler directly.
func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser marks the context authenticated, the way the session middleware would.
func asUser(c echo.Context, u models.User) {
	c.Set("userID", u.ID)
	c.Set("role", u.Role)
	c.Set("userName", u.Name)
}

func (env *testEnv) createUser(id, name, email string) models.User {
	env.T.Helper()
	u := models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: "unused",
	}
	require.NoError(env.T, env.DB.Create(&u).Error)
	return u
}

func (env *testEnv) addToCart(u models.User, menuItemID uint) models.CartItem {
	env.T.Helper()
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", map[string]uint{"menu_item_id": menuItemID})
	asUser(c, u)
	require.NoError(env.T, env.Cart.AddToCart(c))
	require.Equal(env.T, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &item))
	return item
}
