package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/helpers"
)

// superStore is the community entity persistence surface
type superStore interface {
	Create(ctx context.Context, super *models.Super, tags, links []string) error
	GetByID(ctx context.Context, id int64) (*models.Super, error)
	Update(ctx context.Context, super *models.Super) error
	AttachTags(ctx context.Context, superID int64, values []string) error
	AttachLinks(ctx context.Context, superID int64, values []string) error
	Follow(ctx context.Context, superID, userID int64) error
	Unfollow(ctx context.Context, superID, userID int64) error
	Search(ctx context.Context, kind models.SuperKind, term string) ([]models.Super, error)
}

// SuperService defines the interface for community entity operations
type SuperService interface {
	Create(ctx context.Context, creatorID int64, req dto.CreateSuperRequest) (interface{}, error)
	Edit(ctx context.Context, editorID int64, req dto.EditSuperRequest) (interface{}, error)
	GetByID(ctx context.Context, id int64) (interface{}, error)
	Search(ctx context.Context, kind, term string) (*dto.SuperListResponse, error)
	Follow(ctx context.Context, superID, userID int64) error
	Unfollow(ctx context.Context, superID, userID int64) error
}

// superServiceImpl implements the SuperService interface
type superServiceImpl struct {
	supers superStore
	logger zerolog.Logger
}

// NewSuperService creates a new community entity service instance
func NewSuperService(supers superStore, logger zerolog.Logger) SuperService {
	return &superServiceImpl{
		supers: supers,
		logger: logger,
	}
}

// Create builds a community entity of the requested kind. The creator
// becomes the leader; duplicate names are allowed. Tags and links are
// resolved by value, reusing existing rows.
func (s *superServiceImpl) Create(ctx context.Context, creatorID int64, req dto.CreateSuperRequest) (interface{}, error) {
	ve := apperrors.NewValidationError()
	if !models.ValidSuperKind(req.Type) {
		ve.Add("type", "type must be one of: project, club, event, super")
	}
	if req.Name == "" {
		ve.Add("name", "this field is required")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	super := &models.Super{
		Kind:        models.SuperKind(req.Type),
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    &creatorID,
	}

	switch super.Kind {
	case models.SuperKindProject:
		// new projects start active unless told otherwise
		active := true
		if req.Active != nil {
			active = *req.Active
		}
		super.Project = &models.ProjectFields{Active: active}
	case models.SuperKindEvent:
		super.Event = &models.EventFields{
			StartTime: helpers.ParseTimeOrNow(req.StartTime),
			EndTime:   helpers.ParseTimeOrNow(req.EndTime),
			Location:  req.Location,
			ClubID:    s.resolveClubRef(ctx, req.ClubRef),
		}
	}

	if err := s.supers.Create(ctx, super, req.Tags, req.Links); err != nil {
		return nil, fmt.Errorf("error creating %s: %w", req.Type, err)
	}

	s.logger.Info().Int64("superID", super.ID).Str("kind", string(super.Kind)).Int64("leaderID", creatorID).Msg("Community entity created")

	return dto.FromSuper(super)
}

// resolveClubRef returns the referenced id only when it names an existing
// club; anything else is silently dropped.
func (s *superServiceImpl) resolveClubRef(ctx context.Context, clubRef *int64) *int64 {
	if clubRef == nil {
		return nil
	}

	club, err := s.supers.GetByID(ctx, *clubRef)
	if err != nil || club.Kind != models.SuperKindClub {
		s.logger.Debug().Int64("clubRef", *clubRef).Msg("Dropping club reference that does not name a club")
		return nil
	}

	return clubRef
}

// Edit applies a partial update to an entity of the requested kind. Nil
// fields keep current values; tag and link lists are additive.
func (s *superServiceImpl) Edit(ctx context.Context, editorID int64, req dto.EditSuperRequest) (interface{}, error) {
	if !models.ValidSuperKind(req.Type) {
		return nil, apperrors.NewValidationError().Add("type", "type must be one of: project, club, event, super")
	}

	super, err := s.supers.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if super.Kind != models.SuperKind(req.Type) {
		return nil, apperrors.ErrSuperNotFound
	}

	if req.Name != nil {
		super.Name = *req.Name
	}
	if req.Description != nil {
		super.Description = *req.Description
	}

	switch super.Kind {
	case models.SuperKindProject:
		if super.Project == nil {
			super.Project = &models.ProjectFields{}
		}
		if req.Active != nil {
			super.Project.Active = *req.Active
		}
	case models.SuperKindEvent:
		if super.Event == nil {
			super.Event = &models.EventFields{}
		}
		if req.StartTime != nil {
			super.Event.StartTime = helpers.ParseTimeOrNow(*req.StartTime)
		}
		if req.EndTime != nil {
			super.Event.EndTime = helpers.ParseTimeOrNow(*req.EndTime)
		}
		if req.Location != nil {
			super.Event.Location = req.Location
		}
		if req.ClubRef != nil {
			super.Event.ClubID = s.resolveClubRef(ctx, req.ClubRef)
		}
	}

	if err := s.supers.Update(ctx, super); err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.supers.AttachTags(ctx, super.ID, req.Tags); err != nil {
			return nil, err
		}
	}
	if len(req.Links) > 0 {
		if err := s.supers.AttachLinks(ctx, super.ID, req.Links); err != nil {
			return nil, err
		}
	}

	// reload so followers/tags/links reflect the edit
	super, err = s.supers.GetByID(ctx, super.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromSuper(super)
}

// GetByID retrieves an entity in its serialized shape
func (s *superServiceImpl) GetByID(ctx context.Context, id int64) (interface{}, error) {
	super, err := s.supers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromSuper(super)
}

// Search finds up to ten entities of a kind matching the term by name,
// description or tag value.
func (s *superServiceImpl) Search(ctx context.Context, kind, term string) (*dto.SuperListResponse, error) {
	if !models.ValidSuperKind(kind) {
		return nil, apperrors.NewValidationError().Add("type", "type must be one of: project, club, event, super")
	}

	supers, err := s.supers.Search(ctx, models.SuperKind(kind), term)
	if err != nil {
		return nil, fmt.Errorf("error searching supers: %w", err)
	}

	resp := &dto.SuperListResponse{Supers: make([]interface{}, 0, len(supers))}
	for i := range supers {
		serialized, err := dto.FromSuper(&supers[i])
		if err != nil {
			return nil, err
		}
		resp.Supers = append(resp.Supers, serialized)
	}

	return resp, nil
}

// Follow records the user as a follower; following twice is a no-op
func (s *superServiceImpl) Follow(ctx context.Context, superID, userID int64) error {
	if _, err := s.supers.GetByID(ctx, superID); err != nil {
		return err
	}
	return s.supers.Follow(ctx, superID, userID)
}

// Unfollow removes the user from the followers; not a follower is a no-op
func (s *superServiceImpl) Unfollow(ctx context.Context, superID, userID int64) error {
	if _, err := s.supers.GetByID(ctx, superID); err != nil {
		return err
	}
	return s.supers.Unfollow(ctx, superID, userID)
}
