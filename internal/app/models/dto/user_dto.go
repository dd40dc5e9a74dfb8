package dto

import "github.com/ogzkr/campushub/internal/app/models"

// UserResponse is the transport shape of a user
type UserResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	DisplayName    string  `json:"display_name"`
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateUserRequest represents a self-service profile update; absent fields
// are left unchanged
type UpdateUserRequest struct {
	DisplayName    *string `json:"display_name"`
	ProfilePicture *string `json:"profile_picture"`
	Consent        *bool   `json:"consent"`
}

// UserListResponse wraps a user search result
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// FromUser converts a user model to its transport shape
func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
	}
}
