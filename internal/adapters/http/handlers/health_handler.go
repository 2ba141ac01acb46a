package handlers

import (
	"time"

	"abonizera-api/internal/adapters/persistence/repositories"
	"abonizera-api/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health and table-connectivity probes
type HealthHandler struct {
	cfg         *config.Config
	diagnostics repositories.DiagnosticsRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, diagnostics repositories.DiagnosticsRepository) *HealthHandler {
	return &HealthHandler{
		cfg:         cfg,
		diagnostics: diagnostics,
	}
}

// Root returns the service banner
// @Summary Service banner
// @Tags Health
// @Produce json
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "Abonizera API",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck reports service and database health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	return c.JSON(fiber.Map{
		"message":   "Server irakora neza!",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// TestTable builds a connectivity probe handler for one table
func (h *HealthHandler) TestTable(label, table string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		columns, err := h.diagnostics.TableInfo(c.Context(), table)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": label + " table connection failed",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message":      label + " table connection successful",
			"table_exists": true,
			"columns":      columns,
		})
	}
}
