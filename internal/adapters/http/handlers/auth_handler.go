package handlers

import (
	"errors"
	"time"

	"clinic-queue/internal/adapters/http/middleware"
	"clinic-queue/internal/config"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/core/services"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
	log         *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		log:         log,
	}
}

// Register handles patient registration
// @Summary Register patient
// @Description Create a patient account. HTML form posts are redirected to the login page.
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Success 302 "Form post redirected to /login.html"
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Username and password are required")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Username already exists")
		default:
			requestLog(c, h.log, "auth").WithError(err).Error("❌ register failed")
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.RedirectOr(c, middleware.LoginPage, func() error {
		return response.Created(c, "User registered successfully", account)
	})
}

// Login handles user login
// @Summary Login
// @Description Verify the credential and set the session cookie. The response names the role landing page.
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Success 302 "Form post redirected to the role page"
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	session, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid username or password")
		}
		requestLog(c, h.log, "auth").WithError(err).Error("❌ login failed")
		return response.InternalServerError(c, "Failed to login")
	}

	h.setSessionCookie(c, session.Token, session.ExpiresAt)

	return response.RedirectOr(c, session.Redirect, func() error {
		return response.Success(c, "Login successful", session)
	})
}

// Logout handles user logout
// @Summary Logout
// @Description Revoke the current session, clear the cookie and go back to the login page
// @Tags Auth
// @Produce json
// @Success 302 "Redirected to /login.html"
// @Router /logout [get]
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.SessionToken(c, h.cfg); token != "" {
		if err := h.authService.Logout(c.UserContext(), token); err != nil {
			requestLog(c, h.log, "auth").WithError(err).Error("❌ logout failed")
			return response.InternalServerError(c, "Failed to logout")
		}
	}

	h.clearSessionCookie(c)
	return c.Redirect(middleware.LoginPage, fiber.StatusFound)
}

// Me returns the current user's account
// @Summary Current user
// @Description Get the logged-in user's account view
// @Tags Auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	account, err := h.authService.Me(c.UserContext(), identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		requestLog(c, h.log, "auth").WithError(err).Error("❌ get current user failed")
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", account)
}

// setSessionCookie sets the session cookie to expire with its token
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.Cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   h.cfg.JWT.SessionMinutes * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
