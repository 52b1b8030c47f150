package services

import (
	"sync"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ============================================================
// Event hub for the waiting-room display and patient pages
// ============================================================

// Queue event names
const (
	EventConnected   = "connected"
	EventQueueUpdate = "queue_update"
	EventTokenCalled = "token_called"
)

// QueueEvent is one server-sent event
type QueueEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// EventClient is a connected event stream. Display clients have no username.
type EventClient struct {
	ID       string
	Username string
	Channel  chan QueueEvent
}

// EventHub fans queue events out to connected clients
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]*EventClient
	log     *logger.Logger
}

// NewEventHub creates an empty hub
func NewEventHub(log *logger.Logger) *EventHub {
	return &EventHub{
		clients: make(map[string]*EventClient),
		log:     log,
	}
}

// Register adds a client
func (h *EventHub) Register(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.log.WithComponent("events").WithFields(logrus.Fields{
		"client":   client.ID,
		"username": client.Username,
		"total":    len(h.clients),
	}).Debug("📡 client registered")
}

// Unregister removes a client and closes its channel
func (h *EventHub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Channel)
		delete(h.clients, clientID)
		h.log.WithComponent("events").WithFields(logrus.Fields{
			"client": clientID,
			"total":  len(h.clients),
		}).Debug("📡 client unregistered")
	}
}

// Broadcast sends an event to every client. A client whose channel is full
// misses the event.
func (h *EventHub) Broadcast(event QueueEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.clients {
		if h.offer(client, event) {
			sent++
		}
	}
	return sent
}

// SendToUser sends an event to the streams opened by one patient
func (h *EventHub) SendToUser(username string, event QueueEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, client := range h.clients {
		if client.Username == username && h.offer(client, event) {
			sent++
		}
	}
	return sent
}

func (h *EventHub) offer(client *EventClient, event QueueEvent) bool {
	select {
	case client.Channel <- event:
		return true
	default:
		h.log.WithComponent("events").WithField("client", client.ID).Warn("⚠️ event channel full, skipping")
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ============================================================
// QueueNotifyService
// ============================================================

// QueueNotifyService turns queue changes into hub events
type QueueNotifyService struct {
	Hub *EventHub
}

// NewQueueNotifyService creates a notify service with its own hub
func NewQueueNotifyService(log *logger.Logger) *QueueNotifyService {
	return &QueueNotifyService{Hub: NewEventHub(log)}
}

// NotifyQueueUpdate tells every screen the new counters
func (n *QueueNotifyService) NotifyQueueUpdate(state models.QueueState) {
	if n == nil {
		return
	}
	n.Hub.Broadcast(QueueEvent{Event: EventQueueUpdate, Data: state})
}

// NotifyTokenCalled tells the token's owner it is their turn
func (n *QueueNotifyService) NotifyTokenCalled(username string, token int) {
	if n == nil {
		return
	}
	n.Hub.SendToUser(username, QueueEvent{
		Event: EventTokenCalled,
		Data: map[string]interface{}{
			"token":   token,
			"message": "Your token has been called",
		},
	})
}
