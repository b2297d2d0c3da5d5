package usecase

import (
	"context"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	repository.UserRepository
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	repository.SessionRepository
	sessions []*entity.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	now := time.Now()
	for _, s := range f.sessions {
		if s.Token.String() == token {
			s.RevokedAt = &now
		}
	}
	return nil
}

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := &fakeUserRepo{}
	sessions := &fakeSessionRepo{}
	repo := &repository.Repository{User: users, Session: sessions}
	cfg := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	return NewAuthService(repo, cfg, zap.NewNop()), users, sessions
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	svc, users, sessions := newAuthFixture()

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.IsStaff)
	assert.NotEmpty(t, resp.Token)

	require.Len(t, users.users, 1)
	created := users.users[0]
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsStaff)

	require.Len(t, sessions.sessions, 1)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), sessions.sessions[0].ExpiresAt, time.Minute)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	t.Run("same username", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &request.RegisterRequest{
			Username: "alice", Email: "other@example.com", Password: "s3cret-pass",
		})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("same email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &request.RegisterRequest{
			Username: "alice2", Email: "alice@example.com", Password: "s3cret-pass",
		})
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestRegisterStaffSetsFlag(t *testing.T) {
	svc, users, _ := newAuthFixture()

	resp, err := svc.RegisterStaff(context.Background(), &request.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsStaff)
	assert.True(t, users.users[0].IsStaff)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &request.LoginRequest{Username: "alice", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{Username: "alice", Password: "nope-nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{Username: "mallory", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		users.users[0].IsActive = false
		defer func() { users.users[0].IsActive = true }()

		_, err := svc.Login(context.Background(), &request.LoginRequest{Username: "alice", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newAuthFixture()

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))
	assert.NotNil(t, sessions.sessions[0].RevokedAt)
}

func TestSessionTokenIsUUID(t *testing.T) {
	svc, _, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(resp.Token)
	assert.NoError(t, err)
}
