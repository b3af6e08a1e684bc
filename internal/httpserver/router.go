package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/foodhub75/Food-App/internal/handlers"
	"github.com/foodhub75/Food-App/internal/token"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	CatalogHandler  *handlers.CatalogHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	OrderHandler    *handlers.OrderHandler
	ReviewHandler   *handlers.ReviewHandler
	DeliveryHandler *handlers.DeliveryHandler
	Tokens          *token.Service
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout, d.Tokens.RequireUser)

	menu := v1.Group("/menu")
	menu.GET("", d.CatalogHandler.ListMenu)
	menu.GET("/:id", d.CatalogHandler.GetMenuItem)
	menu.GET("/:id/insight", d.CatalogHandler.GetInsight)

	v1.GET("/reviews", d.ReviewHandler.ListReviews)
	v1.POST("/reviews", d.ReviewHandler.CreateReview)
	v1.POST("/reviews/polish", d.ReviewHandler.PolishReview)

	v1.POST("/delivery/check", d.DeliveryHandler.CheckArea)

	cart := v1.Group("/cart", d.Tokens.RequireUser)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.GET("/suggestion", d.CartHandler.Suggestion)
	cart.PATCH("/:itemID", d.CartHandler.AdjustQuantity)
	cart.DELETE("/:itemID", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	co := v1.Group("/checkout", d.Tokens.RequireUser)
	co.GET("/quote", d.CheckoutHandler.Quote)
	co.GET("", d.CheckoutHandler.Status)
	co.POST("", d.CheckoutHandler.StartPayment)
	co.POST("/reset", d.CheckoutHandler.Reset)

	orders := v1.Group("/orders", d.Tokens.RequireUser)
	orders.GET("", d.OrderHandler.MyOrders)
	orders.GET("/active", d.OrderHandler.ActiveOrders)
	orders.GET("/delivered", d.OrderHandler.DeliveredOrders)

	admin := v1.Group("/admin", d.Tokens.RequireAdmin)
	admin.POST("/menu", d.CatalogHandler.CreateMenuItem)
	admin.DELETE("/menu/:id", d.CatalogHandler.DeleteMenuItem)
	admin.GET("/orders", d.OrderHandler.AdminListOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.GET("/stats", d.OrderHandler.Stats)
}
