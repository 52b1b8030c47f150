package repositories

import (
	"context"

	"clinic-queue/internal/adapters/persistence/models"
)

// AccountRepository defines account repository interface
type AccountRepository interface {
	List(ctx context.Context) ([]models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	AppendToken(ctx context.Context, username string, entry models.TokenEntry) error
}

// QueueRepository defines the singleton queue state repository interface
type QueueRepository interface {
	Get(ctx context.Context) (models.QueueState, error)
	Save(ctx context.Context, state models.QueueState) error
}

// AppointmentRepository defines appointment repository interface.
// The collection is always read and written whole.
type AppointmentRepository interface {
	List(ctx context.Context) ([]models.Appointment, error)
	SaveAll(ctx context.Context, appointments []models.Appointment) error
}

// SessionRepository defines revoked session repository interface
type SessionRepository interface {
	Revoke(ctx context.Context, session *models.RevokedSession) error
	IsRevoked(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context) (int, error)
}
