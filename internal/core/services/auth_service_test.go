package services

import (
	"context"
	"testing"

	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/config"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(f *fixture) *AuthService {
	cfg := &config.Config{
		JWT:      config.JWTConfig{Secret: "test-secret", SessionMinutes: 60},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	return NewAuthService(f.accounts, f.sessions, cfg, f.log)
}

func TestRegisterCreatesPatient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)

	view, err := svc.Register(ctx, &RegisterInput{Username: "alice", Password: "pw", Department: "General"})
	require.NoError(t, err)
	assert.Equal(t, "patient", view.Role)
	assert.Equal(t, "General", view.Department)
	assert.Equal(t, 0, view.TokenCount)

	stored, err := f.accounts.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.Password)
	assert.True(t, password.Verify("pw", stored.Password))

	_, err = svc.Register(ctx, &RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := newAuthService(newFixture(t))
	_, err := svc.Register(context.Background(), &RegisterInput{Username: "  ", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Register(context.Background(), &RegisterInput{Username: "bob"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoginAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := newAuthService(f)
	hashed, err := password.HashWithCost("123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.accounts.Create(ctx, &models.Account{Username: "doctor1", Password: hashed, Role: "doctor", Department: "General"}))

	_, err = svc.Login(ctx, &LoginInput{Username: "doctor1", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	session, err := svc.Login(ctx, &LoginInput{Username: "doctor1", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, "/doctor", session.Redirect)
	assert.NotEmpty(t, session.Token)

	identity, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Username: "doctor1", Role: domain.RoleDoctor, Department: "General"}, *identity)

	me, err := svc.Me(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "doctor1", me.Username)

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// a fresh login is unaffected by the earlier logout
	again, err := svc.Login(ctx, &LoginInput{Username: "doctor1", Password: "123"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, again.Token)
	assert.NoError(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := newAuthService(newFixture(t))
	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

func TestListAccountsHidesPasswords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addPatient(t, "alice", "General")
	admin, ok := domain.Identity{Username: "admin", Role: domain.RoleAdmin}.AsAdmin()
	require.True(t, ok)

	views, err := NewUserService(f.accounts).ListAccounts(ctx, admin)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].Username)
}
