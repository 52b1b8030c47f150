package services

import (
	"context"
	"testing"

	"clinic-queue/internal/adapters/persistence/blob"
	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
	"clinic-queue/internal/adapters/persistence/repositories"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/metrics"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store        recordstore.Store
	accounts     repositories.AccountRepository
	queue        repositories.QueueRepository
	appointments repositories.AppointmentRepository
	sessions     repositories.SessionRepository
	metrics      *metrics.Collector
	log          *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := recordstore.NewBlobStore(blob.NewMemory())
	return &fixture{
		store:        store,
		accounts:     repositories.NewAccountRepository(store),
		queue:        repositories.NewQueueRepository(store, models.QueueState{AvgTimePerPatient: 5}),
		appointments: repositories.NewAppointmentRepository(store),
		sessions:     repositories.NewSessionRepository(store),
		metrics:      metrics.New(),
		log:          logger.Discard(),
	}
}

func (f *fixture) addPatient(t *testing.T, username, department string) domain.Patient {
	t.Helper()
	require.NoError(t, f.accounts.Create(context.Background(), &models.Account{
		Username:   username,
		Password:   "x",
		Role:       string(domain.RolePatient),
		Department: department,
	}))
	return patientCap(t, username, department)
}

func patientCap(t *testing.T, username, department string) domain.Patient {
	t.Helper()
	p, ok := domain.Identity{Username: username, Role: domain.RolePatient, Department: department}.AsPatient()
	require.True(t, ok)
	return p
}

func doctorCap(t *testing.T, username, department string) domain.Doctor {
	t.Helper()
	d, ok := domain.Identity{Username: username, Role: domain.RoleDoctor, Department: department}.AsDoctor()
	require.True(t, ok)
	return d
}
