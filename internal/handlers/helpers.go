package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodhub75/Food-App/internal/events"
	"github.com/foodhub75/Food-App/internal/logging"
)

func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}
