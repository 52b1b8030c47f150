package config

import (
	"context"
	"errors"
	"fmt"
	"log"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/pkg/password"
)

// Seeder initialises missing collections with their defaults
type Seeder struct {
	store recordstore.Store
	cfg   *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(store recordstore.Store, cfg *Config) *Seeder {
	return &Seeder{store: store, cfg: cfg}
}

// defaultAccount is a seed account with a plaintext credential
type defaultAccount struct {
	Username   string
	Password   string
	Role       domain.Role
	Department string
}

var defaultAccounts = []defaultAccount{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
	{Username: "doctor1", Password: "123", Role: domain.RoleDoctor, Department: "General"},
}

// Run executes all seeders. Existing collections are left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Initialising collections...")

	if err := s.seedAccounts(ctx); err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if _, err := recordstore.Load(ctx, s.store, recordstore.Queue, models.QueueState{
		AvgTimePerPatient: s.cfg.Queue.AvgTimePerPatient,
	}); err != nil {
		return fmt.Errorf("seed queue: %w", err)
	}
	if _, err := recordstore.Load(ctx, s.store, recordstore.Appointments, []models.Appointment{}); err != nil {
		return fmt.Errorf("seed appointments: %w", err)
	}
	if _, err := recordstore.Load(ctx, s.store, recordstore.Sessions, []models.RevokedSession{}); err != nil {
		return fmt.Errorf("seed sessions: %w", err)
	}

	log.Println("✅ Collections ready")
	return nil
}

// seedAccounts writes the default admin and doctor the first time only.
// Change these credentials after the first login.
func (s *Seeder) seedAccounts(ctx context.Context) error {
	_, err := s.store.Read(ctx, recordstore.Accounts)
	if err == nil {
		return nil
	}
	if !errors.Is(err, recordstore.ErrNotFound) {
		return err
	}

	accounts := make([]models.Account, 0, len(defaultAccounts))
	for _, d := range defaultAccounts {
		hashed, err := password.HashWithCost(d.Password, s.cfg.Security.BcryptCost)
		if err != nil {
			return err
		}
		accounts = append(accounts, models.Account{
			Username:   d.Username,
			Password:   hashed,
			Role:       string(d.Role),
			Department: d.Department,
		})
	}

	if _, err := recordstore.Load(ctx, s.store, recordstore.Accounts, accounts); err != nil {
		return err
	}
	log.Printf("✅ Default accounts created: %d", len(accounts))
	return nil
}
