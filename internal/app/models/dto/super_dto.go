package dto

import (
	"fmt"
	"time"

	"github.com/ogzkr/campushub/internal/app/models"
)

// CreateSuperRequest represents creation data for any community entity.
// Type selects the variant; variant-specific fields are ignored for other
// kinds.
type CreateSuperRequest struct {
	Type        string   `json:"type" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Links       []string `json:"links"`

	// Project
	Active *bool `json:"active"`

	// Event; timestamps are ISO-8601 strings, defaulting to now when absent
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location"`
	ClubRef   *int64  `json:"club_ref"`
}

// EditSuperRequest represents a partial update: nil fields keep the
// entity's current values. ID is required.
type EditSuperRequest struct {
	ID          int64    `json:"id" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Links       []string `json:"links"`

	// Project
	Active *bool `json:"active"`

	// Event
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Location  *string `json:"location"`
	ClubRef   *int64  `json:"club_ref"`
}

// SuperBaseResponse carries the fields every community entity serializes:
// id, name, nullable leader id, follower id list, description, tag and link
// values, and the type discriminator literal.
type SuperBaseResponse struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Leader      *int64   `json:"leader"`
	Followers   []int64  `json:"followers"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Links       []string `json:"links"`
}

// ProjectResponse adds the project variant payload
type ProjectResponse struct {
	SuperBaseResponse
	Active bool `json:"active"`
}

// ClubResponse adds nothing beyond the base
type ClubResponse struct {
	SuperBaseResponse
}

// EventResponse adds the event variant payload; ClubRef nests the resolved
// hosting club id, null when unset
type EventResponse struct {
	SuperBaseResponse
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location"`
	ClubRef   *int64  `json:"club_ref"`
}

// SuperListResponse wraps a community entity search result keyed by kind
type SuperListResponse struct {
	Supers []interface{} `json:"supers"`
}

// FromSuper converts a community entity to its transport shape, switching
// on the kind discriminator. The set of variants is closed; an unknown kind
// is a server-side anomaly.
func FromSuper(s *models.Super) (interface{}, error) {
	base := SuperBaseResponse{
		ID:          s.ID,
		Type:        string(s.Kind),
		Name:        s.Name,
		Leader:      s.LeaderID,
		Followers:   emptyIfNilInt64(s.Followers),
		Description: s.Description,
		Tags:        emptyIfNil(s.Tags),
		Links:       emptyIfNil(s.Links),
	}

	switch s.Kind {
	case models.SuperKindProject:
		resp := ProjectResponse{SuperBaseResponse: base}
		if s.Project != nil {
			resp.Active = s.Project.Active
		}
		return resp, nil
	case models.SuperKindClub:
		return ClubResponse{SuperBaseResponse: base}, nil
	case models.SuperKindEvent:
		resp := EventResponse{SuperBaseResponse: base}
		if s.Event != nil {
			resp.StartTime = s.Event.StartTime.Format(time.RFC3339)
			resp.EndTime = s.Event.EndTime.Format(time.RFC3339)
			resp.Location = s.Event.Location
			resp.ClubRef = s.Event.ClubID
		}
		return resp, nil
	case models.SuperKindBase:
		return base, nil
	default:
		return nil, fmt.Errorf("unknown community entity kind %q", s.Kind)
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyIfNilInt64(values []int64) []int64 {
	if values == nil {
		return []int64{}
	}
	return values
}
