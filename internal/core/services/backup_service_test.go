package services

import (
	"context"
	"testing"
	"time"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCopiesCollections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, recordstore.Save(ctx, f.store, recordstore.Queue, models.QueueState{LastToken: 4, AvgTimePerPatient: 5}))
	f.addPatient(t, "alice", "General")

	svc := NewBackupService(f.store, 3, f.metrics, f.log)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC) }

	prefix, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "backups/20240301T020000/", prefix)

	names, err := f.store.List(ctx, prefix)
	require.NoError(t, err)
	// appointments and sessions were never written
	assert.Equal(t, []string{prefix + "accounts", prefix + "queue"}, names)

	original, err := f.store.Read(ctx, recordstore.Queue)
	require.NoError(t, err)
	copied, err := f.store.Read(ctx, prefix+"queue")
	require.NoError(t, err)
	assert.Equal(t, original, copied)
}

func TestPruneKeepsNewest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, recordstore.Save(ctx, f.store, recordstore.Queue, models.QueueState{}))

	svc := NewBackupService(f.store, 2, nil, f.log)
	base := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	for day := 0; day < 4; day++ {
		at := base.AddDate(0, 0, day)
		svc.now = func() time.Time { return at }
		require.NoError(t, svc.Run(ctx))
	}

	ids, err := svc.Snapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240303T020000", "20240304T020000"}, ids)

	removed, err := svc.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	// live collection untouched
	_, err = f.store.Read(ctx, recordstore.Queue)
	assert.NoError(t, err)
}
