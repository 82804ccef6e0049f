package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler reports liveness and the state of the optional Redis
// backend. A missing or unreachable Redis is reported but does not fail
// the check, since the console runs degraded without it.
type HealthHandler struct {
	Redis *redis.Client
}

// NewHealthHandler builds a HealthHandler; rdb may be nil.
func NewHealthHandler(rdb *redis.Client) *HealthHandler {
	return &HealthHandler{Redis: rdb}
}

// Health writes {"status":"ok","redis":"up|down|disabled"} with 200.
func (h *HealthHandler) Health(c echo.Context) error {
	state := "disabled"
	if h.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
		defer cancel()
		state = "up"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			state = "down"
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "redis": state})
}
