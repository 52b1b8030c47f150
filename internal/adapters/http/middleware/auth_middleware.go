package middleware

import (
	"context"
	"errors"
	"strings"

	"clinic-queue/internal/config"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// LoginPage is where browsers are sent when they hit a page without a session
const LoginPage = "/login.html"

// Authenticator resolves a session token to the caller's identity
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthMiddleware creates authentication middleware for API routes
func AuthMiddleware(auth Authenticator, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, message := resolve(c, auth, cfg)
		if identity == nil {
			return response.Unauthorized(c, message)
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// PageAuth is AuthMiddleware for HTML pages: a missing or bad session
// redirects to the login page instead of answering 401.
func PageAuth(auth Authenticator, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := resolve(c, auth, cfg)
		if identity == nil {
			return c.Redirect(LoginPage, fiber.StatusFound)
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// SessionToken returns the session token from the cookie, falling back to
// the Authorization header
func SessionToken(c *fiber.Ctx, cfg *config.Config) string {
	// 1. Cookie first
	if token := c.Cookies(cfg.Cookie.Name); token != "" {
		return token
	}

	// 2. Then Authorization header
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func resolve(c *fiber.Ctx, auth Authenticator, cfg *config.Config) (*domain.Identity, string) {
	token := SessionToken(c, cfg)
	if token == "" {
		return nil, "Session required"
	}

	identity, err := auth.Authenticate(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, "Session expired"
		}
		return nil, "Invalid session"
	}
	return identity, ""
}

// GetIdentity returns the identity set by the auth middleware
func GetIdentity(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if identity.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Access denied")
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// DoctorOnly allows only the doctor role
func DoctorOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleDoctor)
}

// PatientOnly allows only the patient role
func PatientOnly() fiber.Handler {
	return RoleMiddleware(domain.RolePatient)
}
