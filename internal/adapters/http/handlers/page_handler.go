package handlers

import (
	"path/filepath"

	"clinic-queue/internal/adapters/http/middleware"
	"clinic-queue/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the role landing pages from the public directory
type PageHandler struct {
	publicDir string
}

// NewPageHandler creates a new page handler
func NewPageHandler(publicDir string) *PageHandler {
	return &PageHandler{publicDir: publicDir}
}

// Serve returns a handler for the given role's page. Other roles get a
// plain-text 403, since a browser is on the other end.
func (h *PageHandler) Serve(role domain.Role) fiber.Handler {
	page := filepath.Join(h.publicDir, string(role)+".html")
	return func(c *fiber.Ctx) error {
		identity, ok := middleware.GetIdentity(c)
		if !ok {
			return c.Redirect(middleware.LoginPage, fiber.StatusFound)
		}
		if identity.Role != role {
			return c.Status(fiber.StatusForbidden).SendString("Access Denied")
		}
		return c.SendFile(page)
	}
}
