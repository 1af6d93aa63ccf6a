package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// Checker pings one backing service.
type Checker func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]Checker
	version string
}

// NewHealthHandler reports each named dependency. A nil Checker marks a
// dependency the server runs without.
func NewHealthHandler(version string, checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks, version: version}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ok", fiber.StatusOK
	services := fiber.Map{}
	for _, name := range names {
		check := h.checks[name]
		switch {
		case check == nil:
			services[name] = "disabled"
		case check(ctx) != nil:
			services[name] = "unavailable"
			status, code = "degraded", fiber.StatusServiceUnavailable
		default:
			services[name] = "connected"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  h.version,
		"services": services,
	})
}
