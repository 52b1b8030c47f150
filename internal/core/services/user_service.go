package services

import (
	"context"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/repositories"
	"clinic-queue/internal/core/domain"
)

// UserService handles admin account inspection
type UserService struct {
	accountRepo repositories.AccountRepository
}

// NewUserService creates a new user service
func NewUserService(accountRepo repositories.AccountRepository) *UserService {
	return &UserService{accountRepo: accountRepo}
}

// ListAccounts lists every account without its credential
func (s *UserService) ListAccounts(ctx context.Context, _ domain.Admin) ([]*models.AccountResponse, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		result = append(result, accounts[i].ToResponse())
	}
	return result, nil
}
