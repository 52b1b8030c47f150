package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/repositories"
	"clinic-queue/internal/config"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/pkg/jwt"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/password"

	"github.com/google/uuid"
)

// Auth errors
var (
	ErrTokenRevoked = errors.New("session has been logged out")
	ErrInvalidRole  = errors.New("account has an unknown role")
)

// AuthService handles registration, login and session resolution
type AuthService struct {
	accountRepo repositories.AccountRepository
	sessionRepo repositories.SessionRepository
	cfg         *config.Config
	log         *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo repositories.AccountRepository,
	sessionRepo repositories.SessionRepository,
	cfg *config.Config,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		log:         log,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	Department string `json:"department" form:"department"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Session is a signed session token with its account
type Session struct {
	User      *models.AccountResponse `json:"user"`
	Redirect  string                  `json:"redirect"`
	Token     string                  `json:"-"`
	ExpiresAt time.Time               `json:"expires_at"`
}

// Register creates a patient account with an empty token history
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.AccountResponse, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hashed, err := password.HashWithCost(input.Password, s.cfg.Security.BcryptCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:   username,
		Password:   hashed,
		Role:       string(domain.RolePatient),
		Department: strings.TrimSpace(input.Department),
		Tokens:     []models.TokenEntry{},
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Audit(username, "auth.register", true, nil)
	return account.ToResponse(), nil
}

// Login verifies the credential and signs a new session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*Session, error) {
	account, err := s.accountRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, account.Password) {
		s.log.Audit(account.Username, "auth.login", false, nil)
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.Role(account.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	token, expiresAt, err := jwt.GenerateSessionToken(
		account.Username,
		account.Role,
		account.Department,
		uuid.New().String(),
		s.cfg.JWT.Secret,
		time.Duration(s.cfg.JWT.SessionMinutes)*time.Minute,
	)
	if err != nil {
		return nil, err
	}

	s.log.Audit(account.Username, "auth.login", true, nil)
	return &Session{
		User:      account.ToResponse(),
		Redirect:  role.HomePath(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the session id carried by token. A token that is already
// invalid or expired has nothing left to revoke.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := jwt.ValidateSessionToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil
	}

	revoked := &models.RevokedSession{
		ID:        claims.ID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.sessionRepo.Revoke(ctx, revoked); err != nil {
		return err
	}

	s.log.Audit(claims.Username, "auth.logout", true, nil)
	return nil
}

// Authenticate resolves a session token to the caller's identity
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := jwt.ValidateSessionToken(token, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	revoked, err := s.sessionRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Identity{
		Username:   claims.Username,
		Role:       role,
		Department: claims.Department,
	}, nil
}

// Me returns the caller's own account view
func (s *AuthService) Me(ctx context.Context, identity *domain.Identity) (*models.AccountResponse, error) {
	account, err := s.accountRepo.GetByUsername(ctx, identity.Username)
	if err != nil {
		return nil, err
	}
	return account.ToResponse(), nil
}

// PruneSessions drops revocations of sessions that have expired anyway
func (s *AuthService) PruneSessions(ctx context.Context) (int, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
