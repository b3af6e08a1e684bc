package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/foodhub75/Food-App/internal/checkout"
	"github.com/foodhub75/Food-App/internal/config"
	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/handlers"
	"github.com/foodhub75/Food-App/internal/httpserver"
	"github.com/foodhub75/Food-App/internal/insights"
	"github.com/foodhub75/Food-App/internal/logging"
	loggingmw "github.com/foodhub75/Food-App/internal/middleware/logging"
	"github.com/foodhub75/Food-App/internal/seed"
	"github.com/foodhub75/Food-App/internal/token"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)
	slog.SetDefault(logger)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := seed.Run(db, configuration.AdminPassword); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	prod := events.NewProducer(configuration.KafkaAddress)
	ai := insights.NewClient(configuration.GeminiAPIKey, configuration.GeminiBaseURL)

	tokens := &token.Service{
		DB:            db,
		JWTSecret:     []byte(configuration.JWTSecret),
		RefreshSecret: []byte(configuration.RefreshSecret),
	}

	settler := checkout.DelaySettler{Delay: configuration.PaymentDelay}
	manager := checkout.NewManager(db, settler, prod)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:     &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: prod, AdminPassword: configuration.AdminPassword},
		CatalogHandler:  &handlers.CatalogHandler{DB: db, Producer: prod, AI: ai},
		CartHandler:     &handlers.CartHandler{DB: db, Producer: prod, AI: ai},
		CheckoutHandler: &handlers.CheckoutHandler{DB: db, Manager: manager},
		OrderHandler:    &handlers.OrderHandler{DB: db, Producer: prod},
		ReviewHandler:   &handlers.ReviewHandler{DB: db, AI: ai},
		DeliveryHandler: &handlers.DeliveryHandler{AI: ai},
		Tokens:          tokens,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
