package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/auth"
	"github.com/ogzkr/campushub/internal/pkg/validation"
)

// authUserStore is the user persistence surface the auth service needs
type authUserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// sessionStore persists refresh-token sessions
type sessionStore interface {
	Create(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetByToken(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// AuthService defines the interface for registration and session handling
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.SessionResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.SessionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.SessionResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID int64) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users    authUserStore
	sessions sessionStore
	jwt      *auth.JWTService
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(users authUserStore, sessions sessionStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:    users,
		sessions: sessions,
		jwt:      jwtService,
		logger:   logger,
	}
}

// validateRegistration collects every field-level failure before giving up,
// so the caller sees all problems at once.
func validateRegistration(req dto.RegisterRequest) *apperrors.ValidationError {
	ve := apperrors.NewValidationError()

	if req.Username == "" {
		ve.Add("username", "this field is required")
	} else if !validation.CompiledPatterns.Username.MatchString(req.Username) {
		ve.Add("username", "username may contain only letters, digits, dots, dashes and underscores (2-30 characters)")
	}

	nameValid := validation.NewStringValidation(req.DisplayName).
		WithMinLength(validation.DisplayNameMinLength).
		WithMaxLength(validation.DisplayNameMaxLength).
		Validate()
	if !nameValid {
		ve.Add("display_name", fmt.Sprintf("display name must be between %d and %d characters",
			validation.DisplayNameMinLength, validation.DisplayNameMaxLength))
	}

	if req.Password == "" {
		ve.Add("password", "this field is required")
	} else {
		if req.Password != req.PasswordConfirm {
			ve.Add("password", "the two password fields didn't match")
		}
		for _, msg := range validation.ValidatePassword(req.Password, req.Username, req.DisplayName) {
			ve.Add("password", msg)
		}
	}

	return ve
}

// Register creates a user account and logs it in immediately
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.SessionResponse, error) {
	if ve := validateRegistration(req); ve.HasErrors() {
		return nil, ve
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:    req.Username,
		Password:    hash,
		DisplayName: req.DisplayName,
		Consent:     req.Consent,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return nil, apperrors.NewConflictError("username already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")

	return s.issueSession(ctx, user)
}

// Login verifies credentials and issues a session. Unknown usernames and
// wrong passwords fail identically so accounts cannot be enumerated.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrAuthenticationFailed
	}

	return s.issueSession(ctx, user)
}

// Refresh rotates a session: the presented refresh token is revoked and a
// fresh token pair is issued.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.SessionResponse, error) {
	userID, err := s.sessions.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if err := s.sessions.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Logout revokes the session behind a refresh token; revoking an unknown
// token succeeds, making logout idempotent.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := s.sessions.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
		return err
	}
	return nil
}

// LogoutAll revokes every active session of a user, signing out all devices
func (s *authServiceImpl) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.sessions.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking user sessions: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("All sessions revoked")
	return nil
}

func (s *authServiceImpl) issueSession(ctx context.Context, user *models.User) (*dto.SessionResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.sessions.Create(ctx, refreshToken, user.ID, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error persisting session: %w", err)
	}

	return &dto.SessionResponse{
		User:             dto.FromUser(user),
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
