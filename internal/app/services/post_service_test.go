package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
)

type fakePostStore struct {
	nextID int64
	posts  map[int64]*models.Post
	order  []int64
	likes  *fakeLikeStore
}

func newFakePostStore(likes *fakeLikeStore) *fakePostStore {
	return &fakePostStore{nextID: 1, posts: make(map[int64]*models.Post), likes: likes}
}

func (f *fakePostStore) Create(_ context.Context, post *models.Post, tags []string) error {
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	post.Tags = appendUnique(post.Tags, tags)
	if post.Author == nil {
		post.Author = &models.User{ID: post.AuthorID, Username: "author", DisplayName: "Author"}
	}
	stored := *post
	f.posts[post.ID] = &stored
	f.order = append(f.order, post.ID)
	return nil
}

func (f *fakePostStore) GetByID(_ context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) List(_ context.Context, filter dto.PostFilter) ([]models.Post, int64, error) {
	var matched []models.Post
	for _, id := range f.order {
		p := f.posts[id]
		if filter.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Type != "" {
			if p.Attachment == nil || string(p.Attachment.Kind) != filter.Type {
				continue
			}
		}
		if len(filter.Tags) > 0 && !hasAnyTag(p.Tags, filter.Tags) {
			continue
		}
		matched = append(matched, *p)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (f *fakePostStore) ListByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	var out []models.Post
	for _, id := range f.order {
		if f.posts[id].AuthorID == authorID {
			out = append(out, *f.posts[id])
		}
	}
	return out, nil
}

func (f *fakePostStore) ListLikedBy(_ context.Context, userID int64) ([]models.Post, error) {
	var out []models.Post
	for _, l := range f.likes.likes {
		if l.UserID == userID {
			if p, ok := f.posts[l.PostID]; ok {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func hasAnyTag(postTags, wanted []string) bool {
	for _, t := range postTags {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

type fakeLikeStore struct {
	nextID int64
	likes  []models.Like
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{nextID: 1}
}

func (f *fakeLikeStore) Create(_ context.Context, like *models.Like) error {
	for _, l := range f.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return apperrors.ErrAlreadyLiked
		}
	}
	like.ID = f.nextID
	f.nextID++
	f.likes = append(f.likes, *like)
	return nil
}

func (f *fakeLikeStore) Delete(_ context.Context, userID, postID int64) error {
	for i, l := range f.likes {
		if l.UserID == userID && l.PostID == postID {
			f.likes = append(f.likes[:i], f.likes[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeLikeStore) CountByPostIDs(_ context.Context, postIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, l := range f.likes {
		counts[l.PostID]++
	}
	out := make(map[int64]int64, len(postIDs))
	for _, id := range postIDs {
		out[id] = counts[id]
	}
	return out, nil
}

func (f *fakeLikeStore) ExistsForPosts(_ context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(postIDs))
	for _, l := range f.likes {
		if l.UserID == userID {
			out[l.PostID] = true
		}
	}
	return out, nil
}

type fakeCommentStore struct {
	nextID   int64
	comments []models.Comment
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentStore) ListByPostID(_ context.Context, postID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

type postServiceFixture struct {
	svc    PostService
	posts  *fakePostStore
	likes  *fakeLikeStore
	supers *fakeSuperStore
}

func newTestPostService() postServiceFixture {
	likes := newFakeLikeStore()
	posts := newFakePostStore(likes)
	supers := newFakeSuperStore()
	svc := NewPostService(posts, likes, &fakeCommentStore{}, supers, zerolog.Nop())
	return postServiceFixture{svc: svc, posts: posts, likes: likes, supers: supers}
}

func (fx postServiceFixture) addSuper(t *testing.T, kind models.SuperKind, name string) int64 {
	t.Helper()
	super := &models.Super{Kind: kind, Name: name}
	require.NoError(t, fx.supers.Create(context.Background(), super, nil, nil))
	return super.ID
}

func (fx postServiceFixture) addPost(t *testing.T, req dto.CreatePostRequest) *dto.PostResponse {
	t.Helper()
	resp, err := fx.svc.Create(context.Background(), 1, req)
	require.NoError(t, err)
	return resp
}

func TestPostService_Create_TextPost(t *testing.T) {
	fx := newTestPostService()

	resp := fx.addPost(t, dto.CreatePostRequest{
		Title: "Welcome week",
		Text:  "Schedule attached below",
		Tags:  []string{"announcement"},
	})

	assert.Equal(t, "text", resp.ContentType)
	require.NotNil(t, resp.Text)
	assert.Equal(t, "Schedule attached below", *resp.Text)
	assert.Nil(t, resp.ImageURL)
	assert.Equal(t, []string{"announcement"}, resp.Tags)
	assert.Nil(t, resp.Project.ID)
	assert.Nil(t, resp.Event.ID)
	assert.Nil(t, resp.Club.ID)
	assert.Nil(t, resp.Misc.ID)
}

func TestPostService_Create_ContentKindInference(t *testing.T) {
	fx := newTestPostService()

	imageOnly := fx.addPost(t, dto.CreatePostRequest{Title: "Poster", ImageURL: "https://cdn.example/p.png"})
	assert.Equal(t, "image", imageOnly.ContentType)

	// exactly one body field is stored: text wins, the image URL is dropped
	both := fx.addPost(t, dto.CreatePostRequest{Title: "Recap", Text: "Great turnout", ImageURL: "https://cdn.example/r.png"})
	assert.Equal(t, "text", both.ContentType)
	require.NotNil(t, both.Text)
	assert.Nil(t, both.ImageURL)
}

func TestPostService_Create_FieldErrors(t *testing.T) {
	fx := newTestPostService()

	_, err := fx.svc.Create(context.Background(), 1, dto.CreatePostRequest{})
	require.Error(t, err)

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "text")
}

func TestPostService_Create_Attachment(t *testing.T) {
	fx := newTestPostService()
	clubID := fx.addSuper(t, models.SuperKindClub, "Robotics Club")

	resp := fx.addPost(t, dto.CreatePostRequest{
		Title:  "Meeting notes",
		Text:   "Minutes from Tuesday",
		ClubID: &clubID,
	})

	require.NotNil(t, resp.Club.ID)
	assert.Equal(t, clubID, *resp.Club.ID)
	assert.Nil(t, resp.Project.ID)
}

func TestPostService_Create_MultipleAttachmentsRejected(t *testing.T) {
	fx := newTestPostService()
	clubID := fx.addSuper(t, models.SuperKindClub, "Robotics Club")
	projectID := fx.addSuper(t, models.SuperKindProject, "Line Follower")

	_, err := fx.svc.Create(context.Background(), 1, dto.CreatePostRequest{
		Title:     "Ambiguous",
		Text:      "Which one?",
		ClubID:    &clubID,
		ProjectID: &projectID,
	})
	require.Error(t, err)

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "attachment")
}

func TestPostService_Create_DanglingAttachmentTreatedAsAbsent(t *testing.T) {
	fx := newTestPostService()

	missing := int64(999)
	resp := fx.addPost(t, dto.CreatePostRequest{Title: "Dangling", Text: "hm", EventID: &missing})
	assert.Nil(t, resp.Event.ID)

	// a club id pointing at a project is equally absent
	projectID := fx.addSuper(t, models.SuperKindProject, "Line Follower")
	resp = fx.addPost(t, dto.CreatePostRequest{Title: "Mismatched", Text: "hm", ClubID: &projectID})
	assert.Nil(t, resp.Club.ID)
}

func TestPostService_List_Filters(t *testing.T) {
	fx := newTestPostService()
	clubID := fx.addSuper(t, models.SuperKindClub, "Robotics Club")

	fx.addPost(t, dto.CreatePostRequest{Title: "Robotics kickoff", Text: "x", ClubID: &clubID, Tags: []string{"robotics"}})
	fx.addPost(t, dto.CreatePostRequest{Title: "Bake sale", Text: "x", Tags: []string{"social", "food"}})
	fx.addPost(t, dto.CreatePostRequest{Title: "Robotics workshop", Text: "x", Tags: []string{"robotics", "workshop"}})

	// title substring, case-insensitive
	resp, err := fx.svc.List(context.Background(), nil, dto.PostFilter{Title: "robotics"})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	// tag list matches posts carrying any of the values
	resp, err = fx.svc.List(context.Background(), nil, dto.PostFilter{Tags: []string{"food", "workshop"}})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 2)

	// attachment type narrows to posts attached to that kind
	resp, err = fx.svc.List(context.Background(), nil, dto.PostFilter{Type: "club"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "Robotics kickoff", resp.Posts[0].Title)

	// filters combine with AND
	resp, err = fx.svc.List(context.Background(), nil, dto.PostFilter{Title: "robotics", Tags: []string{"workshop"}})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "Robotics workshop", resp.Posts[0].Title)

	// no match is an empty page, not an error
	resp, err = fx.svc.List(context.Background(), nil, dto.PostFilter{Title: "nothing here"})
	require.NoError(t, err)
	assert.Empty(t, resp.Posts)
	assert.Equal(t, int64(0), resp.Pagination.Total)
}

func TestPostService_List_Pagination(t *testing.T) {
	fx := newTestPostService()

	for i := 0; i < 15; i++ {
		fx.addPost(t, dto.CreatePostRequest{Title: "Post", Text: "x"})
	}

	resp, err := fx.svc.List(context.Background(), nil, dto.PostFilter{Offset: 10, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 5, "the last page is short")
	assert.Equal(t, int64(15), resp.Pagination.Total)
	assert.Equal(t, 10, resp.Pagination.Offset)

	// a window past the end is empty but still reports the full match count
	resp, err = fx.svc.List(context.Background(), nil, dto.PostFilter{Offset: 20, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Posts)
	assert.Equal(t, int64(15), resp.Pagination.Total)

	// a zero limit falls back to the default window
	resp, err = fx.svc.List(context.Background(), nil, dto.PostFilter{})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 10)
	assert.Equal(t, 10, resp.Pagination.Limit)
}

func TestPostService_LikeUnlike(t *testing.T) {
	fx := newTestPostService()
	post := fx.addPost(t, dto.CreatePostRequest{Title: "Likeable", Text: "x"})

	like, err := fx.svc.Like(context.Background(), 5, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), like.User)
	assert.Equal(t, post.ID, like.Post)

	_, err = fx.svc.Like(context.Background(), 5, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)

	viewer := int64(5)
	got, err := fx.svc.GetByID(context.Background(), &viewer, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeNumber)
	assert.True(t, got.Liked)

	// a different viewer sees the count but not the flag
	other := int64(6)
	got, err = fx.svc.GetByID(context.Background(), &other, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeNumber)
	assert.False(t, got.Liked)

	require.NoError(t, fx.svc.Unlike(context.Background(), 5, post.ID))
	got, err = fx.svc.GetByID(context.Background(), &viewer, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikeNumber)
	assert.False(t, got.Liked)
}

func TestPostService_Comments(t *testing.T) {
	fx := newTestPostService()
	post := fx.addPost(t, dto.CreatePostRequest{Title: "Discussable", Text: "x"})

	_, err := fx.svc.AddComment(context.Background(), 5, post.ID, "")
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "text")

	first, err := fx.svc.AddComment(context.Background(), 5, post.ID, "first!")
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.User)

	_, err = fx.svc.AddComment(context.Background(), 6, post.ID, "second")
	require.NoError(t, err)

	list, err := fx.svc.ListComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, list.Comments, 2)
	assert.Equal(t, "first!", list.Comments[0].Text, "comments keep insertion order")

	_, err = fx.svc.ListComments(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostService_ListByUser(t *testing.T) {
	fx := newTestPostService()

	mine := fx.addPost(t, dto.CreatePostRequest{Title: "Mine", Text: "x"})
	_, err := fx.svc.Create(context.Background(), 2, dto.CreatePostRequest{Title: "Theirs", Text: "x"})
	require.NoError(t, err)

	posts, err := fx.svc.ListByUser(context.Background(), nil, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Mine", posts[0].Title)

	_, err = fx.svc.Like(context.Background(), 2, mine.ID)
	require.NoError(t, err)
	liked, err := fx.svc.ListLikedByUser(context.Background(), nil, 2)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, mine.ID, liked[0].ID)
}
