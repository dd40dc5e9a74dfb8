package models

import "time"

// SuperKind discriminates the concrete variant of a community entity.
type SuperKind string

const (
	SuperKindProject SuperKind = "project"
	SuperKindClub    SuperKind = "club"
	SuperKindEvent   SuperKind = "event"
	// SuperKindBase is a plain community entity with no specialization;
	// posts refer to these rows through the "misc" attachment kind.
	SuperKindBase SuperKind = "super"
)

// ValidSuperKind reports whether the value is a known discriminator.
func ValidSuperKind(kind string) bool {
	switch SuperKind(kind) {
	case SuperKindProject, SuperKindClub, SuperKindEvent, SuperKindBase:
		return true
	}
	return false
}

// Super is a community entity stored as one logical record: the shared base
// payload plus at most one variant payload selected by Kind. Projects carry
// ProjectFields, events carry EventFields, clubs and plain supers carry
// neither.
type Super struct {
	ID          int64     `json:"id" db:"id"`
	Kind        SuperKind `json:"type" db:"kind"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	LeaderID    *int64    `json:"leader" db:"leader_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Project *ProjectFields `json:"project,omitempty"`
	Event   *EventFields   `json:"event,omitempty"`

	// Loaded separately by the repository
	Followers []int64  `json:"followers,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Links     []string `json:"links,omitempty"`
}

// ProjectFields is the project-specific payload
type ProjectFields struct {
	Active bool `json:"active" db:"active"`
}

// EventFields is the event-specific payload
type EventFields struct {
	StartTime time.Time `json:"startTime" db:"start_time"`
	EndTime   time.Time `json:"endTime" db:"end_time"`
	Location  *string   `json:"location" db:"location"`
	// ClubID references the hosting club's super row, when any
	ClubID *int64 `json:"clubRef" db:"club_id"`
}
