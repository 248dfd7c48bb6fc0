package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-slice-keeper/internal/config"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
	"github.com/MKhiriev/go-slice-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, login string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, login)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func newTestAuthService(repo store.UserRepository) AuthService {
	return NewAuthService(repo, config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "slice-keeper-test",
		TokenDuration: time.Hour,
	}, logger.Nop())
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	var persisted models.User
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user models.User) (models.User, error) {
			persisted = user
			user.UserID = 1
			return user, nil
		},
	}

	svc := newTestAuthService(repo)
	registered, err := svc.RegisterUser(context.Background(), models.User{
		Login:    "john",
		Password: "hunter2hunter2",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
	assert.Empty(t, persisted.Password, "plaintext password must not reach the repository")
	assert.NotEmpty(t, persisted.PasswordHash)
	assert.NotContains(t, persisted.PasswordHash, "hunter2")
	assert.True(t, verifyPassword(persisted.PasswordHash, "hunter2hunter2"))
	assert.False(t, verifyPassword(persisted.PasswordHash, "hunter3hunter3"))
}

func TestRegisterUser_RejectsEmptyFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestLogin_Success(t *testing.T) {
	hash, err := hashPassword("correct horse")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findFn: func(ctx context.Context, login string) (models.User, error) {
			return models.User{UserID: 1, Login: login, PasswordHash: hash}, nil
		},
	}

	svc := newTestAuthService(repo)
	user, err := svc.Login(context.Background(), models.User{Login: "john", Password: "correct horse"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Empty(t, user.Password)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := hashPassword("correct horse")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findFn: func(ctx context.Context, login string) (models.User, error) {
			return models.User{UserID: 1, Login: login, PasswordHash: hash}, nil
		},
	}

	svc := newTestAuthService(repo)
	_, err = svc.Login(context.Background(), models.User{Login: "john", Password: "battery staple"})
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), models.User{Login: "ghost", Password: "anything"})
	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
