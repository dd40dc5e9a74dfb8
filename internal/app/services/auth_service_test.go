package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/auth"
)

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameTaken
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeSession struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeSessionStore struct {
	sessions map[string]*fakeSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*fakeSession)}
}

func (f *fakeSessionStore) Create(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.sessions[token] = &fakeSession{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeSessionStore) GetByToken(_ context.Context, token string) (int64, error) {
	s, ok := f.sessions[token]
	if !ok {
		return 0, apperrors.ErrSessionNotFound
	}
	if s.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if s.expiry.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return s.userID, nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, token string) error {
	s, ok := f.sessions[token]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	s.revoked = true
	return nil
}

func (f *fakeSessionStore) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, s := range f.sessions {
		if s.userID == userID {
			s.revoked = true
		}
	}
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub.test",
	})
}

func newTestAuthService() (AuthService, *fakeUserStore, *fakeSessionStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, testJWTService(), zerolog.Nop())
	return svc, users, sessions
}

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:        "ayse.yilmaz",
		Password:        "correct-horse-battery",
		PasswordConfirm: "correct-horse-battery",
		DisplayName:     "Ayşe Yılmaz",
		Consent:         true,
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, users, sessions := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ayse.yilmaz", resp.User.Username)

	stored, err := users.GetByUsername(context.Background(), "ayse.yilmaz")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", stored.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(stored.Password, "correct-horse-battery"))

	// registration logs the user in
	userID, err := sessions.GetByToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	svc, users, _ := newTestAuthService()

	req := validRegisterRequest()
	req.PasswordConfirm = "something-else"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["password"], "the two password fields didn't match")

	_, err = users.GetByUsername(context.Background(), req.Username)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "no account should be created")
}

func TestAuthService_Register_FieldErrors(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:        "has space",
		Password:        "1234",
		PasswordConfirm: "1234",
		DisplayName:     "x",
	})
	require.Error(t, err)

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "username")
	assert.Contains(t, ve.Fields, "display_name")
	assert.Contains(t, ve.Fields, "password")
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterRequest())
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ayse.yilmaz",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// wrong password and unknown user fail identically
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "ayse.yilmaz",
		Password: "wrong-password-here",
	})
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "nobody",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	first, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken, "refresh must rotate the token")

	// the presented token is revoked and cannot be replayed
	_, err = sessions.GetByToken(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
	_, err = sessions.GetByToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// logging out twice, or with a token that never existed, still succeeds
	assert.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}

func TestAuthService_LogoutAll(t *testing.T) {
	svc, users, sessions := newTestAuthService()

	first, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ayse.yilmaz",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	stored, err := users.GetByUsername(context.Background(), "ayse.yilmaz")
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(context.Background(), stored.ID))

	_, err = sessions.GetByToken(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	_, err = sessions.GetByToken(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
