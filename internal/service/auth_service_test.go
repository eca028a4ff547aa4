package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/landgov/landadmin-api/internal/models"
	appErrors "github.com/landgov/landadmin-api/pkg/errors"
)

type userStoreStub struct {
	users     map[string]*models.User
	lastLogin map[string]time.Time
}

func newUserStoreStub(t *testing.T) *userStoreStub {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &userStoreStub{
		users: map[string]*models.User{
			"user-1": {
				ID:           "user-1",
				Email:        "officer@landadmin.gov",
				PasswordHash: string(hash),
				FullName:     "A. Officer",
				Role:         models.RolePlanningOfficer,
				Active:       true,
			},
		},
		lastLogin: make(map[string]time.Time),
	}
}

func (s *userStoreStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userStoreStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *userStoreStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogin[id] = ts
	return nil
}

func TestAuthServiceLogin(t *testing.T) {
	store := newUserStoreStub(t)
	svc := NewAuthService(store, "test-secret", time.Hour, "landadmin-api", nil)

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "officer@landadmin.gov",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, "user-1", result.User.ID)
	require.Contains(t, store.lastLogin, "user-1")

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, models.RolePlanningOfficer, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newUserStoreStub(t), "test-secret", time.Hour, "landadmin-api", nil)
	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "officer@landadmin.gov",
		Password: "wrong",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newUserStoreStub(t), "test-secret", time.Hour, "landadmin-api", nil)
	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@landadmin.gov",
		Password: "s3cret",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	store := newUserStoreStub(t)
	store.users["user-1"].Active = false
	svc := NewAuthService(store, "test-secret", time.Hour, "landadmin-api", nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "officer@landadmin.gov",
		Password: "s3cret",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, appErrors.ErrInactiveAccount))
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newUserStoreStub(t), "test-secret", time.Hour, "landadmin-api", nil)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)

	other := NewAuthService(newUserStoreStub(t), "other-secret", time.Hour, "landadmin-api", nil)
	result, err := other.Login(context.Background(), models.LoginRequest{
		Email:    "officer@landadmin.gov",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.AccessToken)
	require.Error(t, err, "token signed with a different secret must be rejected")
}
