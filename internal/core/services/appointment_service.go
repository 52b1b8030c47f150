package services

import (
	"context"
	"sync"
	"time"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/repositories"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// AppointmentService handles booking and approval of appointments
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	metrics         *metrics.Collector
	log             *logger.Logger
	now             func() time.Time

	// mu serialises read-modify-write of the appointments collection
	mu sync.Mutex
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	collector *metrics.Collector,
	log *logger.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		metrics:         collector,
		log:             log,
		now:             time.Now,
	}
}

// BookInput represents a booking request
type BookInput struct {
	Date   string `json:"date" form:"date"`
	Time   string `json:"time" form:"time"`
	Reason string `json:"reason" form:"reason"`
}

// Book creates a Pending appointment in the patient's department
func (s *AppointmentService) Book(ctx context.Context, patient domain.Patient, input *BookInput) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := s.appointmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		ID:         s.nextID(appointments),
		Patient:    patient.Username(),
		Department: patient.Department(),
		Date:       input.Date,
		Time:       input.Time,
		Reason:     input.Reason,
		Status:     domain.StatusPending,
	}
	appointments = append(appointments, appointment)

	if err := s.appointmentRepo.SaveAll(ctx, appointments); err != nil {
		return nil, err
	}

	s.metrics.RecordBooked()
	s.log.Audit(patient.Username(), "appointment.book", true, logrus.Fields{
		"id":         appointment.ID,
		"department": appointment.Department,
	})
	return &appointment, nil
}

// nextID keeps ids time-shaped (epoch millis) but strictly above every
// existing id, so two bookings in the same millisecond never collide.
func (s *AppointmentService) nextID(existing []models.Appointment) int64 {
	id := s.now().UnixMilli()
	for _, a := range existing {
		if a.ID >= id {
			id = a.ID + 1
		}
	}
	return id
}

// ListByDepartment returns every appointment in the doctor's department,
// of any status, in booking order
func (s *AppointmentService) ListByDepartment(ctx context.Context, doctor domain.Doctor) ([]models.Appointment, error) {
	appointments, err := s.appointmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Appointment, 0)
	for _, a := range appointments {
		if a.Department == doctor.Department() {
			result = append(result, a)
		}
	}
	return result, nil
}

// Approve marks the appointment Approved. An unknown id is not an error and
// leaves the collection unwritten; so does approving twice. Any doctor may
// approve, regardless of department.
func (s *AppointmentService) Approve(ctx context.Context, doctor domain.Doctor, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointments, err := s.appointmentRepo.List(ctx)
	if err != nil {
		return false, err
	}

	matched, changed := false, false
	for i := range appointments {
		if appointments[i].ID != id {
			continue
		}
		matched = true
		if appointments[i].Status != domain.StatusApproved {
			appointments[i].Status = domain.StatusApproved
			changed = true
		}
	}

	if changed {
		if err := s.appointmentRepo.SaveAll(ctx, appointments); err != nil {
			return false, err
		}
	}

	s.metrics.RecordApproved(matched)
	s.log.Audit(doctor.Username(), "appointment.approve", matched, logrus.Fields{"id": id})
	return matched, nil
}
