package dto

import (
	"time"

	"github.com/ogzkr/campushub/internal/app/models"
)

// CreatePostRequest represents post creation data. At most one of the
// attachment ids may be set.
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	ImageURL string   `json:"image_url"`
	Tags     []string `json:"tags"`

	ProjectID *int64 `json:"project"`
	EventID   *int64 `json:"event"`
	ClubID    *int64 `json:"club"`
	MiscID    *int64 `json:"misc"`
}

// PostFilter represents post list filters, combined by logical AND. Tags
// use OR semantics within the list.
type PostFilter struct {
	Title  string
	Tags   []string
	Type   string
	Offset int
	Limit  int
}

// SuperSummary is the nested {id, name} reference a post carries for each
// attachment slot; both values are null when the slot is empty.
type SuperSummary struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

// PostResponse is the transport shape of a post. Author fields are
// denormalized at read time and the like count is recomputed on every
// serialization.
type PostResponse struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Text           *string      `json:"text"`
	ImageURL       *string      `json:"image_url"`
	ContentType    string       `json:"contentType"`
	Username       string       `json:"username"`
	DisplayName    string       `json:"display_name"`
	ProfilePicture *string      `json:"profile_picture"`
	Project        SuperSummary `json:"project"`
	Event          SuperSummary `json:"event"`
	Club           SuperSummary `json:"club"`
	Misc           SuperSummary `json:"misc"`
	Tags           []string     `json:"tags"`
	LikeNumber     int64        `json:"like_number"`
	Liked          bool         `json:"liked"`
	CreatedAt      time.Time    `json:"created_at"`
}

// PostListResponse represents a filtered, paginated post listing
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

// CreateCommentRequest represents comment submission data
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse is the transport shape of a comment
type CommentResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	User      int64     `json:"user"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentListResponse wraps a post's comments
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// LikeResponse is the transport shape of a like
type LikeResponse struct {
	User int64 `json:"user"`
	Post int64 `json:"post"`
}

// FromPost converts a post model to its transport shape. likeCount and
// liked are supplied by the caller, freshly computed; the attachment slot
// matching the post's tagged reference is populated, the rest stay null.
func FromPost(p *models.Post, likeCount int64, liked bool) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Text:        p.Text,
		ImageURL:    p.ImageURL,
		ContentType: string(p.ContentType),
		Tags:        emptyIfNil(p.Tags),
		LikeNumber:  likeCount,
		Liked:       liked,
		CreatedAt:   p.CreatedAt,
	}

	if p.Author != nil {
		resp.Username = p.Author.Username
		resp.DisplayName = p.Author.DisplayName
		resp.ProfilePicture = p.Author.ProfilePicture
	}

	if p.Attachment != nil {
		summary := SuperSummary{ID: &p.Attachment.SuperID, Name: p.AttachmentName}
		switch p.Attachment.Kind {
		case models.AttachmentProject:
			resp.Project = summary
		case models.AttachmentEvent:
			resp.Event = summary
		case models.AttachmentClub:
			resp.Club = summary
		case models.AttachmentMisc:
			resp.Misc = summary
		}
	}

	return resp
}

// FromComment converts a comment model to its transport shape
func FromComment(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		User:      c.UserID,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.Username = c.User.Username
	}
	return resp
}

// FromLike converts a like model to its transport shape
func FromLike(l *models.Like) LikeResponse {
	return LikeResponse{
		User: l.UserID,
		Post: l.PostID,
	}
}
