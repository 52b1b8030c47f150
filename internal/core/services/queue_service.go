package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/repositories"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// QueueService handles the token queue: issuing numbers to patients and
// letting doctors call the next one.
type QueueService struct {
	queueRepo   repositories.QueueRepository
	accountRepo repositories.AccountRepository
	metrics     *metrics.Collector
	notify      *QueueNotifyService
	log         *logger.Logger
	now         func() time.Time

	// mu linearises issue and advance within this process
	mu sync.Mutex
}

// NewQueueService creates a new queue service
func NewQueueService(
	queueRepo repositories.QueueRepository,
	accountRepo repositories.AccountRepository,
	collector *metrics.Collector,
	log *logger.Logger,
) *QueueService {
	return &QueueService{
		queueRepo:   queueRepo,
		accountRepo: accountRepo,
		metrics:     collector,
		log:         log,
		now:         time.Now,
	}
}

// WithNotifier streams queue changes to connected screens
func (s *QueueService) WithNotifier(notify *QueueNotifyService) *QueueService {
	s.notify = notify
	return s
}

// TokenTicket is the result of issuing a token
type TokenTicket struct {
	TokenNumber          int `json:"tokenNumber"`
	QueuePosition        int `json:"queuePosition"`
	EstimatedWaitingTime int `json:"estimatedWaitingTime"`
}

// IssueToken hands the next number to the patient and records it in their
// history. The queue document is written first and owns the numbering: if
// the history write then fails the number stays consumed.
func (s *QueueService) IssueToken(ctx context.Context, patient domain.Patient) (*TokenTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accountRepo.GetByUsername(ctx, patient.Username()); err != nil {
		return nil, err
	}

	state, err := s.queueRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	state.LastToken++
	if err := s.queueRepo.Save(ctx, state); err != nil {
		return nil, err
	}

	entry := models.TokenEntry{
		Token: state.LastToken,
		Date:  s.now().Format(models.TokenDateLayout),
	}
	if err := s.accountRepo.AppendToken(ctx, patient.Username(), entry); err != nil {
		s.log.WithComponent("queue").WithFields(logrus.Fields{
			"username": patient.Username(),
			"token":    state.LastToken,
		}).WithError(err).Error("token issued but history not recorded")
		return nil, fmt.Errorf("record token history: %w", err)
	}

	position := state.Waiting()
	s.metrics.RecordTokenIssued(position)
	s.notify.NotifyQueueUpdate(state)
	s.log.Audit(patient.Username(), "queue.issue", true, logrus.Fields{"token": state.LastToken})

	return &TokenTicket{
		TokenNumber:          state.LastToken,
		QueuePosition:        position,
		EstimatedWaitingTime: position * state.AvgTimePerPatient,
	}, nil
}

// AdvanceQueue calls the next token when anyone is waiting. With nobody
// waiting it is a no-op and nothing is written.
func (s *QueueService) AdvanceQueue(ctx context.Context, doctor domain.Doctor) (models.QueueState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.queueRepo.Get(ctx)
	if err != nil {
		return models.QueueState{}, err
	}

	moved := state.CurrentToken < state.LastToken
	if moved {
		state.CurrentToken++
		if err := s.queueRepo.Save(ctx, state); err != nil {
			return models.QueueState{}, err
		}
		s.notify.NotifyQueueUpdate(state)
		s.notifyCalled(ctx, state.CurrentToken)
	}

	s.metrics.RecordAdvance(moved, state.Waiting())
	s.log.Audit(doctor.Username(), "queue.advance", true, logrus.Fields{
		"moved":         moved,
		"current_token": state.CurrentToken,
	})
	return state, nil
}

// notifyCalled finds the owner of token through the account histories. A
// failed lookup only costs the notification.
func (s *QueueService) notifyCalled(ctx context.Context, token int) {
	if s.notify == nil {
		return
	}
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		s.log.WithComponent("queue").WithError(err).Warn("could not resolve called token owner")
		return
	}
	for _, account := range accounts {
		for _, entry := range account.Tokens {
			if entry.Token == token {
				s.notify.NotifyTokenCalled(account.Username, token)
				return
			}
		}
	}
}

// GetStatus returns the queue counters; callers need not be logged in
func (s *QueueService) GetStatus(ctx context.Context) (models.QueueState, error) {
	state, err := s.queueRepo.Get(ctx)
	if err != nil {
		return models.QueueState{}, err
	}
	s.metrics.SetWaiting(state.Waiting())
	return state, nil
}

// GetHistory returns the patient's own issued tokens, oldest first. An
// unknown account has an empty history.
func (s *QueueService) GetHistory(ctx context.Context, patient domain.Patient) ([]models.TokenEntry, error) {
	account, err := s.accountRepo.GetByUsername(ctx, patient.Username())
	if errors.Is(err, domain.ErrUserNotFound) {
		return []models.TokenEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	if account.Tokens == nil {
		return []models.TokenEntry{}, nil
	}
	return account.Tokens, nil
}
