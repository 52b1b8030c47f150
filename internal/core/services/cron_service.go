package services

import (
	"context"
	"time"

	"clinic-queue/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 5 * time.Minute

// CronService runs the periodic maintenance jobs: collection snapshots and
// pruning of expired session revocations.
type CronService struct {
	cron *cron.Cron
	log  *logger.Logger
}

// NewCronService creates a scheduler. Add jobs before Start.
func NewCronService(log *logger.Logger) *CronService {
	return &CronService{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:  log,
	}
}

// AddJob schedules fn on a standard five-field cron spec
func (s *CronService) AddJob(spec, name string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		entry := s.log.WithComponent("cron").WithField("job", name)
		if err := fn(ctx); err != nil {
			entry.WithError(err).Error("❌ job failed")
			return
		}
		entry.WithField("duration_ms", time.Since(start).Milliseconds()).Info("✅ job finished")
	})
	if err != nil {
		return err
	}
	s.log.WithComponent("cron").WithFields(map[string]interface{}{"job": name, "spec": spec}).Info("job scheduled")
	return nil
}

// Entries returns the number of scheduled jobs
func (s *CronService) Entries() int {
	return len(s.cron.Entries())
}

// Start launches the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
	s.log.WithComponent("cron").Info("🚀 CronService started")
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.WithComponent("cron").Info("🛑 CronService stopped")
}
