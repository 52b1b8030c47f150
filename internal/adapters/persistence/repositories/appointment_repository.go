package repositories

import (
	"context"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
)

// appointmentRepository implements AppointmentRepository over the appointments collection
type appointmentRepository struct {
	store recordstore.Store
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(store recordstore.Store) AppointmentRepository {
	return &appointmentRepository{store: store}
}

// List returns all appointments in collection order
func (r *appointmentRepository) List(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := recordstore.Load(ctx, r.store, recordstore.Appointments, []models.Appointment{})
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}

// SaveAll replaces the whole collection
func (r *appointmentRepository) SaveAll(ctx context.Context, appointments []models.Appointment) error {
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return recordstore.Save(ctx, r.store, recordstore.Appointments, appointments)
}
