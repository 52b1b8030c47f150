package repositories

import (
	"context"
	"sync"
	"time"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
)

// sessionRepository implements SessionRepository over the sessions collection
type sessionRepository struct {
	store recordstore.Store
	mu    sync.Mutex
	now   func() time.Time
}

// NewSessionRepository creates a new revoked session repository
func NewSessionRepository(store recordstore.Store) SessionRepository {
	return &sessionRepository{store: store, now: time.Now}
}

func (r *sessionRepository) load(ctx context.Context) ([]models.RevokedSession, error) {
	sessions, err := recordstore.Load(ctx, r.store, recordstore.Sessions, []models.RevokedSession{})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Revoke records a session id as logged out. Expired entries are dropped
// on the same write.
func (r *sessionRepository) Revoke(ctx context.Context, session *models.RevokedSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	now := r.now()
	kept := make([]models.RevokedSession, 0, len(sessions)+1)
	for _, s := range sessions {
		if s.ID == session.ID || s.IsExpired(now) {
			continue
		}
		kept = append(kept, s)
	}
	if session.RevokedAt.IsZero() {
		session.RevokedAt = now
	}
	kept = append(kept, *session)
	return recordstore.Save(ctx, r.store, recordstore.Sessions, kept)
}

// IsRevoked reports whether the session id was logged out. It never
// writes the collection.
func (r *sessionRepository) IsRevoked(ctx context.Context, id string) (bool, error) {
	sessions, err := recordstore.Peek(ctx, r.store, recordstore.Sessions, []models.RevokedSession{})
	if err != nil {
		return false, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// DeleteExpired removes revocations whose session has expired anyway
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	now := r.now()
	kept := make([]models.RevokedSession, 0, len(sessions))
	for _, s := range sessions {
		if !s.IsExpired(now) {
			kept = append(kept, s)
		}
	}
	removed := len(sessions) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, recordstore.Save(ctx, r.store, recordstore.Sessions, kept)
}
