package repositories

import (
	"context"
	"sync"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
	"clinic-queue/internal/core/domain"
)

// accountRepository implements AccountRepository over the accounts collection
type accountRepository struct {
	store recordstore.Store
	// mu serialises read-modify-write of the accounts document
	mu sync.Mutex
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(store recordstore.Store) AccountRepository {
	return &accountRepository{store: store}
}

func (r *accountRepository) load(ctx context.Context) ([]models.Account, error) {
	accounts, err := recordstore.Load(ctx, r.store, recordstore.Accounts, []models.Account{})
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

// List returns every account in collection order
func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {
	return r.load(ctx)
}

// GetByUsername gets an account by username
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create appends a new account, rejecting a duplicate username
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Username == account.Username {
			return domain.ErrUserAlreadyExists
		}
	}
	accounts = append(accounts, *account)
	return recordstore.Save(ctx, r.store, recordstore.Accounts, accounts)
}

// AppendToken adds an entry to the end of the account's token history
func (r *accountRepository) AppendToken(ctx context.Context, username string, entry models.TokenEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range accounts {
		if accounts[i].Username == username {
			accounts[i].Tokens = append(accounts[i].Tokens, entry)
			found = true
			break
		}
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return recordstore.Save(ctx, r.store, recordstore.Accounts, accounts)
}
