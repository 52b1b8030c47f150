package handlers

import (
	"errors"

	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/core/services"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// QueueHandler handles the token queue endpoints. Payloads are sent bare,
// without the response envelope.
type QueueHandler struct {
	queueService *services.QueueService
	log          *logger.Logger
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queueService *services.QueueService, log *logger.Logger) *QueueHandler {
	return &QueueHandler{
		queueService: queueService,
		log:          log,
	}
}

// ============================================================
// POST /getToken: patient takes the next number
// ============================================================

// GetToken issues a token to the calling patient
// @Summary Take a token
// @Tags Queue
// @Produce json
// @Security CookieAuth
// @Success 200 {object} services.TokenTicket
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /getToken [post]
func (h *QueueHandler) GetToken(c *fiber.Ctx) error {
	patient, ok := patientFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}

	ticket, err := h.queueService.IssueToken(c.UserContext(), patient)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "Account not found")
		}
		requestLog(c, h.log, "queue").WithError(err).Error("❌ issue token failed")
		return response.InternalServerError(c, "Failed to issue token")
	}
	return c.JSON(ticket)
}

// ============================================================
// POST /next: doctor calls the next token
// ============================================================

// Next advances the queue
// @Summary Call next token
// @Tags Queue
// @Produce json
// @Security CookieAuth
// @Success 200 {object} models.QueueState
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /next [post]
func (h *QueueHandler) Next(c *fiber.Ctx) error {
	doctor, ok := doctorFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}

	state, err := h.queueService.AdvanceQueue(c.UserContext(), doctor)
	if err != nil {
		requestLog(c, h.log, "queue").WithError(err).Error("❌ advance queue failed")
		return response.InternalServerError(c, "Failed to advance queue")
	}
	return c.JSON(state)
}

// ============================================================
// GET /status: public queue counters
// ============================================================

// Status returns the queue counters
// @Summary Queue status
// @Tags Queue
// @Produce json
// @Success 200 {object} models.QueueState
// @Router /status [get]
func (h *QueueHandler) Status(c *fiber.Ctx) error {
	state, err := h.queueService.GetStatus(c.UserContext())
	if err != nil {
		requestLog(c, h.log, "queue").WithError(err).Error("❌ queue status failed")
		return response.InternalServerError(c, "Failed to get queue status")
	}
	return c.JSON(state)
}

// ============================================================
// GET /myTokens: patient's own token history
// ============================================================

// MyTokens returns the calling patient's issued tokens
// @Summary Own token history
// @Tags Queue
// @Produce json
// @Security CookieAuth
// @Success 200 {array} models.TokenEntry
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /myTokens [get]
func (h *QueueHandler) MyTokens(c *fiber.Ctx) error {
	patient, ok := patientFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}

	tokens, err := h.queueService.GetHistory(c.UserContext(), patient)
	if err != nil {
		requestLog(c, h.log, "queue").WithError(err).Error("❌ token history failed")
		return response.InternalServerError(c, "Failed to get token history")
	}
	return c.JSON(tokens)
}
