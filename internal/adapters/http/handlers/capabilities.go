package handlers

import (
	"clinic-queue/internal/adapters/http/middleware"
	"clinic-queue/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// The role middleware already rejected other roles; these turn the
// identity into the capability the service asks for.

func patientFrom(c *fiber.Ctx) (domain.Patient, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domain.Patient{}, false
	}
	return identity.AsPatient()
}

func doctorFrom(c *fiber.Ctx) (domain.Doctor, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domain.Doctor{}, false
	}
	return identity.AsDoctor()
}

func adminFrom(c *fiber.Ctx) (domain.Admin, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domain.Admin{}, false
	}
	return identity.AsAdmin()
}
