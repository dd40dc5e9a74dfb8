package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/helpers"
)

// postStore is the post persistence surface
type postStore interface {
	Create(ctx context.Context, post *models.Post, tags []string) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter dto.PostFilter) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	ListLikedBy(ctx context.Context, userID int64) ([]models.Post, error)
}

// likeStore is the like persistence surface
type likeStore interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, userID, postID int64) error
	CountByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int64, error)
	ExistsForPosts(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

// commentStore is the comment persistence surface
type commentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
}

// attachmentResolver looks up community entities for attachment validation
type attachmentResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Super, error)
}

// PostService defines the interface for post operations
type PostService interface {
	List(ctx context.Context, viewerID *int64, filter dto.PostFilter) (*dto.PostListResponse, error)
	Create(ctx context.Context, authorID int64, req dto.CreatePostRequest) (*dto.PostResponse, error)
	GetByID(ctx context.Context, viewerID *int64, postID int64) (*dto.PostResponse, error)
	Like(ctx context.Context, userID, postID int64) (*dto.LikeResponse, error)
	Unlike(ctx context.Context, userID, postID int64) error
	AddComment(ctx context.Context, userID, postID int64, text string) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, postID int64) (*dto.CommentListResponse, error)
	ListByUser(ctx context.Context, viewerID *int64, userID int64) ([]dto.PostResponse, error)
	ListLikedByUser(ctx context.Context, viewerID *int64, userID int64) ([]dto.PostResponse, error)
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	posts    postStore
	likes    likeStore
	comments commentStore
	supers   attachmentResolver
	logger   zerolog.Logger
}

// NewPostService creates a new post service instance
func NewPostService(posts postStore, likes likeStore, comments commentStore, supers attachmentResolver, logger zerolog.Logger) PostService {
	return &postServiceImpl{
		posts:    posts,
		likes:    likes,
		comments: comments,
		supers:   supers,
		logger:   logger,
	}
}

// List returns the filtered, paginated post window. Filters combine with
// AND; the tag list matches posts carrying any of the values. No match is
// an empty list, not an error.
func (s *postServiceImpl) List(ctx context.Context, viewerID *int64, filter dto.PostFilter) (*dto.PostListResponse, error) {
	filter.Offset, filter.Limit = helpers.NormalizeOffsetLimit(filter.Offset, filter.Limit)

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	responses, err := s.serializePosts(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Posts:      responses,
		Pagination: helpers.NewPagination(total, filter.Offset, filter.Limit),
	}, nil
}

// attachment kinds pair each request field with its required entity kind
type attachmentCandidate struct {
	kind models.AttachmentKind
	id   *int64
}

// resolveAttachment turns the four optional attachment ids into at most one
// tagged reference. More than one provided id is rejected; an id whose
// entity does not exist (or has the wrong kind) is treated as absent.
func (s *postServiceImpl) resolveAttachment(ctx context.Context, req dto.CreatePostRequest) (*models.AttachmentRef, error) {
	candidates := []attachmentCandidate{
		{models.AttachmentProject, req.ProjectID},
		{models.AttachmentEvent, req.EventID},
		{models.AttachmentClub, req.ClubID},
		{models.AttachmentMisc, req.MiscID},
	}

	provided := lo.Filter(candidates, func(c attachmentCandidate, _ int) bool {
		return c.id != nil
	})

	if len(provided) > 1 {
		return nil, apperrors.NewValidationError().
			Add("attachment", "a post may attach to at most one of project, event, club, misc")
	}
	if len(provided) == 0 {
		return nil, nil
	}

	candidate := provided[0]
	super, err := s.supers.GetByID(ctx, *candidate.id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSuperNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving attachment: %w", err)
	}

	if !attachmentKindMatches(candidate.kind, super.Kind) {
		return nil, nil
	}

	return &models.AttachmentRef{Kind: candidate.kind, SuperID: super.ID}, nil
}

func attachmentKindMatches(kind models.AttachmentKind, superKind models.SuperKind) bool {
	switch kind {
	case models.AttachmentProject:
		return superKind == models.SuperKindProject
	case models.AttachmentEvent:
		return superKind == models.SuperKindEvent
	case models.AttachmentClub:
		return superKind == models.SuperKindClub
	case models.AttachmentMisc:
		return superKind == models.SuperKindBase
	}
	return false
}

// Create builds an immutable post. Exactly one body field is stored; when
// both text and an image URL arrive, text wins and the image URL is dropped.
func (s *postServiceImpl) Create(ctx context.Context, authorID int64, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	ve := apperrors.NewValidationError()
	if req.Title == "" {
		ve.Add("title", "this field is required")
	}
	if req.Text == "" && req.ImageURL == "" {
		ve.Add("text", "either text or image_url must be provided")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	attachment, err := s.resolveAttachment(ctx, req)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:   authorID,
		Title:      req.Title,
		Attachment: attachment,
	}

	if req.Text != "" {
		post.ContentType = models.ContentTypeText
		post.Text = &req.Text
	} else {
		post.ContentType = models.ContentTypeImage
		post.ImageURL = &req.ImageURL
	}

	if err := s.posts.Create(ctx, post, req.Tags); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Int64("authorID", authorID).Msg("Post created")

	// reload so the author and attachment name are joined in
	return s.GetByID(ctx, &authorID, post.ID)
}

// GetByID retrieves a post with a freshly computed like count; liked is
// relative to the viewer when one is present.
func (s *postServiceImpl) GetByID(ctx context.Context, viewerID *int64, postID int64) (*dto.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses, err := s.serializePosts(ctx, viewerID, []models.Post{*post})
	if err != nil {
		return nil, err
	}

	return &responses[0], nil
}

// Like records the viewer's like; liking twice is a conflict
func (s *postServiceImpl) Like(ctx context.Context, userID, postID int64) (*dto.LikeResponse, error) {
	like := &models.Like{UserID: userID, PostID: postID}
	if err := s.likes.Create(ctx, like); err != nil {
		return nil, err
	}

	resp := dto.FromLike(like)
	return &resp, nil
}

// Unlike removes the viewer's like
func (s *postServiceImpl) Unlike(ctx context.Context, userID, postID int64) error {
	return s.likes.Delete(ctx, userID, postID)
}

// AddComment appends a comment to a post
func (s *postServiceImpl) AddComment(ctx context.Context, userID, postID int64, text string) (*dto.CommentResponse, error) {
	if text == "" {
		return nil, apperrors.NewValidationError().Add("text", "this field is required")
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.FromComment(comment)
	return &resp, nil
}

// ListComments returns a post's comments in insertion order
func (s *postServiceImpl) ListComments(ctx context.Context, postID int64) (*dto.CommentListResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	return &dto.CommentListResponse{
		Comments: lo.Map(comments, func(c models.Comment, _ int) dto.CommentResponse {
			return dto.FromComment(&c)
		}),
	}, nil
}

// ListByUser returns a user's posts in insertion order
func (s *postServiceImpl) ListByUser(ctx context.Context, viewerID *int64, userID int64) ([]dto.PostResponse, error) {
	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user posts: %w", err)
	}
	return s.serializePosts(ctx, viewerID, posts)
}

// ListLikedByUser returns the posts a user has liked, in like order
func (s *postServiceImpl) ListLikedByUser(ctx context.Context, viewerID *int64, userID int64) ([]dto.PostResponse, error) {
	posts, err := s.posts.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing liked posts: %w", err)
	}
	return s.serializePosts(ctx, viewerID, posts)
}

// serializePosts maps posts to their transport shape, batch-loading like
// counts and the viewer's liked flags.
func (s *postServiceImpl) serializePosts(ctx context.Context, viewerID *int64, posts []models.Post) ([]dto.PostResponse, error) {
	ids := lo.Map(posts, func(p models.Post, _ int) int64 { return p.ID })

	counts, err := s.likes.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}

	liked := map[int64]bool{}
	if viewerID != nil {
		liked, err = s.likes.ExistsForPosts(ctx, *viewerID, ids)
		if err != nil {
			return nil, fmt.Errorf("error loading liked flags: %w", err)
		}
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		responses = append(responses, dto.FromPost(p, counts[p.ID], liked[p.ID]))
	}

	return responses, nil
}
