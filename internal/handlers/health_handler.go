package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is a dependency whose availability is reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the state of the service and its dependencies.
type HealthHandler struct {
	database Pinger
	optional map[string]Pinger
}

// NewHealthHandler creates a HealthHandler. An unreachable database makes the
// service unhealthy; optional dependencies are only reported.
func NewHealthHandler(database Pinger, optional map[string]Pinger) *HealthHandler {
	return &HealthHandler{database: database, optional: optional}
}

// RegisterRoutes registers GET /health on router.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

type healthStatus struct {
	Status   string            `json:"status"`
	Time     time.Time         `json:"time"`
	Services map[string]string `json:"services"`
}

// HandleHealth pings every dependency and reports its state.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := healthStatus{Status: "ok", Time: time.Now().UTC(), Services: map[string]string{}}
	status := fiber.StatusOK

	resp.Services["database"] = "up"
	if h.database != nil {
		if err := h.database.Ping(ctx); err != nil {
			resp.Services["database"] = "down"
			resp.Status = "unavailable"
			status = fiber.StatusServiceUnavailable
		}
	}
	for name, p := range h.optional {
		if err := p.Ping(ctx); err != nil {
			resp.Services[name] = "down"
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
			continue
		}
		resp.Services[name] = "up"
	}
	return c.Status(status).JSON(resp)
}
