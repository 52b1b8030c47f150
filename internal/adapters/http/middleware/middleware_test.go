package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-queue/internal/config"
	"clinic-queue/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth map[string]*domain.Identity

func (s stubAuth) Authenticate(_ context.Context, token string) (*domain.Identity, error) {
	if token == "expired" {
		return nil, domain.ErrTokenExpired
	}
	if id, ok := s[token]; ok {
		return id, nil
	}
	return nil, domain.ErrTokenInvalid
}

var testCfg = &config.Config{Cookie: config.CookieConfig{Name: "session"}}

func newAuthApp() *fiber.App {
	auth := stubAuth{
		"doc": {Username: "doctor1", Role: domain.RoleDoctor, Department: "General"},
		"pat": {Username: "alice", Role: domain.RolePatient},
	}

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/doctor-only", AuthMiddleware(auth, testCfg), DoctorOnly(), func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(identity.Username)
	})
	app.Get("/page", PageAuth(auth, testCfg), func(c *fiber.Ctx) error {
		return c.SendString("page")
	})
	return app
}

func request(t *testing.T, app *fiber.App, path string, mutate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func withCookie(token string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: token}) }
}

func TestAuthMiddleware(t *testing.T) {
	app := newAuthApp()

	assert.Equal(t, http.StatusUnauthorized, request(t, app, "/doctor-only", nil).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, request(t, app, "/doctor-only", withCookie("bogus")).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, request(t, app, "/doctor-only", withCookie("expired")).StatusCode)
	assert.Equal(t, http.StatusForbidden, request(t, app, "/doctor-only", withCookie("pat")).StatusCode)
	assert.Equal(t, http.StatusOK, request(t, app, "/doctor-only", withCookie("doc")).StatusCode)

	resp := request(t, app, "/doctor-only", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer doc")
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPageAuthRedirects(t *testing.T) {
	app := newAuthApp()

	resp := request(t, app, "/page", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPage, resp.Header.Get("Location"))

	assert.Equal(t, http.StatusOK, request(t, app, "/page", withCookie("pat")).StatusCode)
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/cached", CacheControl(90*time.Second), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/fresh", NoCacheHeaders(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	assert.Equal(t, "public, max-age=90", request(t, app, "/cached", nil).Header.Get("Cache-Control"))

	resp := request(t, app, "/fresh", nil)
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(c *fiber.Ctx) error { return assert.AnError })

	resp := request(t, app, "/teapot", nil)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	resp = request(t, app, "/boom", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
