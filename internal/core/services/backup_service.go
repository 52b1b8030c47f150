package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"clinic-queue/internal/adapters/persistence/recordstore"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// ============================================================
// Collection snapshots: backups/<UTC yyyymmddThhmmss>/<name>
// ============================================================

const (
	backupPrefix       = "backups/"
	snapshotTimeLayout = "20060102T150405"
)

// BackupCollections are copied by every snapshot
var BackupCollections = []string{
	recordstore.Accounts,
	recordstore.Queue,
	recordstore.Appointments,
	recordstore.Sessions,
}

// BackupService copies every collection to a timestamped prefix in the same
// record store and keeps only the newest snapshots.
type BackupService struct {
	store   recordstore.Store
	keep    int
	metrics *metrics.Collector
	log     *logger.Logger
	now     func() time.Time
}

// NewBackupService creates a new backup service keeping the newest keep snapshots
func NewBackupService(store recordstore.Store, keep int, collector *metrics.Collector, log *logger.Logger) *BackupService {
	if keep < 1 {
		keep = 1
	}
	return &BackupService{
		store:   store,
		keep:    keep,
		metrics: collector,
		log:     log,
		now:     time.Now,
	}
}

// Snapshot copies each existing collection's raw document and returns the
// snapshot prefix. Collections that were never written are skipped.
func (s *BackupService) Snapshot(ctx context.Context) (prefix string, err error) {
	defer func() { s.metrics.RecordBackup(err) }()

	prefix = backupPrefix + s.now().UTC().Format(snapshotTimeLayout) + "/"
	copied := 0
	for _, name := range BackupCollections {
		data, err := s.store.Read(ctx, name)
		if errors.Is(err, recordstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("snapshot %s: %w", name, err)
		}
		if err := s.store.Write(ctx, prefix+name, data); err != nil {
			return "", fmt.Errorf("snapshot %s: %w", name, err)
		}
		copied++
	}

	s.log.WithComponent("backup").WithFields(logrus.Fields{
		"prefix":      prefix,
		"collections": copied,
	}).Info("snapshot written")
	return prefix, nil
}

// Snapshots lists snapshot ids, oldest first
func (s *BackupService) Snapshots(ctx context.Context) ([]string, error) {
	grouped, err := s.snapshotEntries(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Prune deletes the oldest snapshots beyond the configured count and
// returns how many snapshots were removed.
func (s *BackupService) Prune(ctx context.Context) (int, error) {
	grouped, err := s.snapshotEntries(ctx)
	if err != nil {
		return 0, err
	}
	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	if len(ids) <= s.keep {
		return 0, nil
	}
	sort.Strings(ids)

	stale := ids[:len(ids)-s.keep]
	for _, id := range stale {
		for _, name := range grouped[id] {
			if _, err := s.store.Delete(ctx, name); err != nil {
				return 0, fmt.Errorf("prune %s: %w", name, err)
			}
		}
	}

	s.log.WithComponent("backup").WithField("removed", len(stale)).Info("old snapshots pruned")
	return len(stale), nil
}

// Run takes a snapshot and prunes; it is what the scheduler calls
func (s *BackupService) Run(ctx context.Context) error {
	if _, err := s.Snapshot(ctx); err != nil {
		return err
	}
	_, err := s.Prune(ctx)
	return err
}

func (s *BackupService) snapshotEntries(ctx context.Context) (map[string][]string, error) {
	names, err := s.store.List(ctx, backupPrefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	grouped := make(map[string][]string)
	for _, name := range names {
		rest := strings.TrimPrefix(name, backupPrefix)
		id, _, ok := strings.Cut(rest, "/")
		if !ok || id == "" {
			continue
		}
		grouped[id] = append(grouped[id], name)
	}
	return grouped, nil
}
