package models

import "time"

// ContentType discriminates what a post body carries.
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
)

// AttachmentKind names the community entity variant a post attaches to.
// "misc" points at a plain super row.
type AttachmentKind string

const (
	AttachmentProject AttachmentKind = "project"
	AttachmentClub    AttachmentKind = "club"
	AttachmentEvent   AttachmentKind = "event"
	AttachmentMisc    AttachmentKind = "misc"
)

// ValidAttachmentKind reports whether the value is a known attachment kind.
func ValidAttachmentKind(kind string) bool {
	switch AttachmentKind(kind) {
	case AttachmentProject, AttachmentClub, AttachmentEvent, AttachmentMisc:
		return true
	}
	return false
}

// AttachmentRef is the single optional link from a post to a community
// entity. Modelling it as one tagged reference makes "at most one
// attachment" structural rather than conventional.
type AttachmentRef struct {
	Kind    AttachmentKind `json:"kind" db:"attached_kind"`
	SuperID int64          `json:"superId" db:"attached_id"`
}

// Post defines the post model based on the 'posts' table. Posts are
// immutable after creation.
type Post struct {
	ID          int64          `json:"id" db:"id"`
	AuthorID    int64          `json:"authorId" db:"author_id"`
	Title       string         `json:"title" db:"title"`
	ContentType ContentType    `json:"contentType" db:"content_type"`
	Text        *string        `json:"text" db:"text"`
	ImageURL    *string        `json:"imageUrl" db:"image_url"`
	Attachment  *AttachmentRef `json:"attachment,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`

	// Related data, loaded separately by the repository
	Author         *User    `json:"author,omitempty"`
	AttachmentName *string  `json:"-"`
	Tags           []string `json:"tags,omitempty"`
}
