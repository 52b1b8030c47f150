package repositories

import (
	"context"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
)

// queueRepository implements QueueRepository over the queue collection
type queueRepository struct {
	store    recordstore.Store
	defaults models.QueueState
}

// NewQueueRepository creates a new queue repository. defaults is written
// when the queue document does not exist yet.
func NewQueueRepository(store recordstore.Store, defaults models.QueueState) QueueRepository {
	return &queueRepository{store: store, defaults: defaults}
}

// Get reads the current queue state
func (r *queueRepository) Get(ctx context.Context) (models.QueueState, error) {
	return recordstore.Load(ctx, r.store, recordstore.Queue, r.defaults)
}

// Save replaces the queue state
func (r *queueRepository) Save(ctx context.Context, state models.QueueState) error {
	return recordstore.Save(ctx, r.store, recordstore.Queue, state)
}
