package handlers

import (
	"strconv"

	"clinic-queue/internal/core/services"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles booking and approval endpoints
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
	log                *logger.Logger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *services.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		log:                log,
	}
}

// Book handles a patient booking
// @Summary Book appointment
// @Description Book a Pending appointment in the patient's department. HTML form posts are redirected to /patient.
// @Tags Appointments
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security CookieAuth
// @Param body body services.BookInput true "Appointment request"
// @Success 201 {object} models.Appointment
// @Success 302 "Form post redirected to /patient"
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /book [post]
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	patient, ok := patientFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}

	var req services.BookInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	appointment, err := h.appointmentService.Book(c.UserContext(), patient, &req)
	if err != nil {
		requestLog(c, h.log, "appointments").WithError(err).Error("❌ book appointment failed")
		return response.InternalServerError(c, "Failed to book appointment")
	}

	return response.RedirectOr(c, "/patient", func() error {
		return c.Status(fiber.StatusCreated).JSON(appointment)
	})
}

// List handles listing the doctor's department appointments
// @Summary Department appointments
// @Description Every appointment, of any status, in the calling doctor's department
// @Tags Appointments
// @Produce json
// @Security CookieAuth
// @Success 200 {array} models.Appointment
// @Failure 403 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	doctor, ok := doctorFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}

	appointments, err := h.appointmentService.ListByDepartment(c.UserContext(), doctor)
	if err != nil {
		requestLog(c, h.log, "appointments").WithError(err).Error("❌ list appointments failed")
		return response.InternalServerError(c, "Failed to list appointments")
	}
	return c.JSON(appointments)
}

// Approve handles approving an appointment. An unknown id still succeeds.
// @Summary Approve appointment
// @Tags Appointments
// @Produce json
// @Security CookieAuth
// @Param id path int true "Appointment ID"
// @Success 204
// @Success 302 "Form post redirected to /doctor"
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /approve/{id} [post]
func (h *AppointmentHandler) Approve(c *fiber.Ctx) error {
	doctor, ok := doctorFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	if _, err := h.appointmentService.Approve(c.UserContext(), doctor, id); err != nil {
		requestLog(c, h.log, "appointments").WithError(err).WithField("id", id).Error("❌ approve appointment failed")
		return response.InternalServerError(c, "Failed to approve appointment")
	}

	return response.RedirectOr(c, "/doctor", func() error {
		return response.NoContent(c)
	})
}
