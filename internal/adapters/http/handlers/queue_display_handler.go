package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"clinic-queue/internal/core/services"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const heartbeatInterval = 30 * time.Second

// QueueDisplayHandler streams queue events to the waiting-room screen and
// to patient pages
type QueueDisplayHandler struct {
	queueService  *services.QueueService
	notifyService *services.QueueNotifyService
	log           *logger.Logger
}

// NewQueueDisplayHandler creates a new display handler
func NewQueueDisplayHandler(queueService *services.QueueService, notifyService *services.QueueNotifyService, log *logger.Logger) *QueueDisplayHandler {
	return &QueueDisplayHandler{
		queueService:  queueService,
		notifyService: notifyService,
		log:           log,
	}
}

// ============================================================
// GET /display/events: SSE for the waiting-room screen (public)
// ============================================================

// DisplayEvents streams queue_update events
// @Summary Waiting-room event stream
// @Tags Queue
// @Produce text/event-stream
// @Success 200 {string} string "queue_update events"
// @Router /display/events [get]
func (h *QueueDisplayHandler) DisplayEvents(c *fiber.Ctx) error {
	return h.stream(c, "")
}

// ============================================================
// GET /events: SSE for a logged-in patient
// ============================================================

// PatientEvents streams queue_update events plus token_called for the
// caller's own tokens
// @Summary Patient event stream
// @Tags Queue
// @Produce text/event-stream
// @Security CookieAuth
// @Success 200 {string} string "queue_update and token_called events"
// @Failure 401 {object} response.Response
// @Router /events [get]
func (h *QueueDisplayHandler) PatientEvents(c *fiber.Ctx) error {
	patient, ok := patientFrom(c)
	if !ok {
		return response.Forbidden(c, "Access denied")
	}
	return h.stream(c, patient.Username())
}

func (h *QueueDisplayHandler) stream(c *fiber.Ctx, username string) error {
	// current counters first, so a fresh screen is not blank until the next change
	state, err := h.queueService.GetStatus(c.UserContext())
	if err != nil {
		requestLog(c, h.log, "events").WithError(err).Error("❌ queue status failed")
		return response.InternalServerError(c, "Failed to get queue status")
	}

	client := &services.EventClient{
		ID:       uuid.New().String(),
		Username: username,
		Channel:  make(chan services.QueueEvent, 50),
	}
	hub := h.notifyService.Hub

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set(fiber.HeaderTransferEncoding, "chunked")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		hub.Register(client)
		defer hub.Unregister(client.ID)

		writeEvent(w, services.QueueEvent{
			Event: services.EventConnected,
			Data:  map[string]string{"client_id": client.ID},
		})
		writeEvent(w, services.QueueEvent{Event: services.EventQueueUpdate, Data: state})
		if err := w.Flush(); err != nil {
			return
		}

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-client.Channel:
				if !ok {
					return
				}
				writeEvent(w, event)
				if err := w.Flush(); err != nil {
					return
				}

			case <-heartbeat.C:
				fmt.Fprint(w, ": heartbeat\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}

// writeEvent writes one SSE frame
func writeEvent(w *bufio.Writer, event services.QueueEvent) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		data = []byte("null")
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
}
