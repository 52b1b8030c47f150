package handlers

import (
	"context"

	"clinic-queue/internal/config"
	"clinic-queue/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Pinger checks that the record store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
	Driver() string
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store Pinger
	cfg   *config.Config
	log   *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger, cfg *config.Config, log *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, cfg: cfg, log: log}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🏥 Clinic Queue API is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and record store health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status, storeStatus, code := "ok", "healthy", fiber.StatusOK
	if err := h.store.Ping(c.UserContext()); err != nil {
		status, storeStatus, code = "degraded", "unhealthy", fiber.StatusServiceUnavailable
		requestLog(c, h.log, "health").WithError(err).WithField("driver", h.store.Driver()).Warn("⚠️ record store ping failed")
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"api":   "healthy",
			"store": storeStatus,
		},
		"driver": h.store.Driver(),
	})
}
