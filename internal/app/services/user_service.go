package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/validation"
)

// userStore is the user persistence surface the directory needs
type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Search(ctx context.Context, term string) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UserService defines the interface for the user directory
type UserService interface {
	GetByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	Search(ctx context.Context, term string) (*dto.UserListResponse, error)
	Me(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*dto.UserResponse, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	users userStore
}

// NewUserService creates a new user service instance
func NewUserService(users userStore) UserService {
	return &userServiceImpl{users: users}
}

// GetByID retrieves a user's public profile
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// GetByUsername resolves a fuzzy username to a single profile. An ambiguous
// term surfaces as ErrMultipleMatches rather than an arbitrary pick.
func (s *userServiceImpl) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// Search finds up to ten users whose username or display name contains the term
func (s *userServiceImpl) Search(ctx context.Context, term string) (*dto.UserListResponse, error) {
	users, err := s.users.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}

	return &dto.UserListResponse{
		Users: lo.Map(users, func(u models.User, _ int) dto.UserResponse {
			return dto.FromUser(&u)
		}),
	}, nil
}

// Me returns the authenticated user's own profile
func (s *userServiceImpl) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	return s.GetByID(ctx, userID)
}

// UpdateMe applies a partial profile update; nil fields keep current values
func (s *userServiceImpl) UpdateMe(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		nameValid := validation.NewStringValidation(*req.DisplayName).
			WithMinLength(validation.DisplayNameMinLength).
			WithMaxLength(validation.DisplayNameMaxLength).
			Validate()
		if !nameValid {
			return nil, apperrors.NewValidationError().
				Add("display_name", fmt.Sprintf("display name must be between %d and %d characters",
					validation.DisplayNameMinLength, validation.DisplayNameMaxLength))
		}
		user.DisplayName = *req.DisplayName
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Consent != nil {
		user.Consent = *req.Consent
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	resp := dto.FromUser(user)
	return &resp, nil
}
