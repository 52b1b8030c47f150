package handlers

import (
	"clinic-queue/internal/core/services"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/pagination"
	"clinic-queue/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
	log         *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// AllUsers handles listing all accounts (Admin only)
// @Summary List all users
// @Description List every account without its credential. Passing page or limit returns a paginated envelope instead of a bare array.
// @Tags Users
// @Produce json
// @Security CookieAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {array} models.AccountResponse
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /allUsers [get]
func (h *UserHandler) AllUsers(c *fiber.Ctx) error {
	admin, ok := adminFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}

	accounts, err := h.userService.ListAccounts(c.UserContext(), admin)
	if err != nil {
		requestLog(c, h.log, "users").WithError(err).Error("❌ list users failed")
		return response.InternalServerError(c, "Failed to list users")
	}

	if pagination.Requested(c) {
		return c.JSON(pagination.NewResponse(accounts, pagination.GetParams(c)))
	}
	return c.JSON(accounts)
}
