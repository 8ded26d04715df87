package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"queuecare/internal/response"
	"queuecare/internal/storage"
)

type HealthHandler struct {
	store storage.TicketStore
	redis *redis.Client
}

func NewHealthHandler(store storage.TicketStore, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{store: store, redis: redisClient}
}

// @Summary		Проверка состояния
// @Tags			health
// @Produce		json
// @Success		200	{object}	response.HealthResponse
// @Failure		503	{object}	response.HealthResponse
// @Router			/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := h.store.Ping(ctx); err != nil {
		checks["store"] = err.Error()
		healthy = false
	} else {
		checks["store"] = "ok"
	}

	if h.redis != nil {
		if err := storage.RedisHealthCheck(ctx, h.redis); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.HealthResponse{Status: "unhealthy", Checks: checks})
		return
	}
	c.JSON(http.StatusOK, response.HealthResponse{Status: "healthy", Checks: checks})
}
