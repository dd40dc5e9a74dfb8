package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
)

type fakeDirectoryStore struct {
	users map[int64]*models.User
}

func (f *fakeDirectoryStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeDirectoryStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	var matches []*models.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(username)) {
			matches = append(matches, u)
		}
	}
	switch len(matches) {
	case 0:
		return nil, apperrors.ErrUserNotFound
	case 1:
		copied := *matches[0]
		return &copied, nil
	default:
		return nil, apperrors.ErrMultipleMatches
	}
}

func (f *fakeDirectoryStore) Search(_ context.Context, term string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(term)) ||
			strings.Contains(strings.ToLower(u.DisplayName), strings.ToLower(term)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeDirectoryStore) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func newTestUserService() (UserService, *fakeDirectoryStore) {
	store := &fakeDirectoryStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "ayse.yilmaz", DisplayName: "Ayşe Yılmaz"},
		2: {ID: 2, Username: "mehmet.oz", DisplayName: "Mehmet Öz"},
		3: {ID: 3, Username: "mehmet.kaya", DisplayName: "Mehmet Kaya"},
	}}
	return NewUserService(store), store
}

func TestUserService_GetByUsername(t *testing.T) {
	svc, _ := newTestUserService()

	resp, err := svc.GetByUsername(context.Background(), "ayse")
	require.NoError(t, err)
	assert.Equal(t, "ayse.yilmaz", resp.Username)

	_, err = svc.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// an ambiguous term is an error, never an arbitrary pick
	_, err = svc.GetByUsername(context.Background(), "mehmet")
	assert.ErrorIs(t, err, apperrors.ErrMultipleMatches)
}

func TestUserService_Search(t *testing.T) {
	svc, _ := newTestUserService()

	resp, err := svc.Search(context.Background(), "mehmet")
	require.NoError(t, err)
	assert.Len(t, resp.Users, 2)

	resp, err = svc.Search(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, resp.Users)
}

func TestUserService_UpdateMe(t *testing.T) {
	svc, store := newTestUserService()

	picture := "https://cdn.example/a.png"
	resp, err := svc.UpdateMe(context.Background(), 1, dto.UpdateUserRequest{ProfilePicture: &picture})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", resp.DisplayName, "omitted fields keep current values")
	require.NotNil(t, resp.ProfilePicture)
	assert.Equal(t, picture, *resp.ProfilePicture)

	short := "x"
	_, err = svc.UpdateMe(context.Background(), 1, dto.UpdateUserRequest{DisplayName: &short})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "display_name")
	assert.Equal(t, "Ayşe Yılmaz", store.users[1].DisplayName, "failed validation must not persist")

	_, err = svc.UpdateMe(context.Background(), 99, dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
