package handlers

import (
	"clinic-queue/internal/adapters/http/middleware"
	"clinic-queue/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// requestLog returns an entry tagged with the request id and, once
// authenticated, the caller
func requestLog(c *fiber.Ctx, log *logger.Logger, component string) *logrus.Entry {
	requestID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	entry := log.WithRequestID(requestID).WithField("component", component)
	if identity, ok := middleware.GetIdentity(c); ok {
		entry = entry.WithField("username", identity.Username)
	}
	return entry
}
