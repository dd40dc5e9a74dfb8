package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/dberrors"
	"github.com/ogzkr/campushub/internal/pkg/logger"
)

// SuperRepository handles database operations for community entities
// (projects, clubs, events and plain supers share the supers table).
type SuperRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSuperRepository creates a new SuperRepository
func NewSuperRepository(db *pgxpool.Pool) *SuperRepository {
	return &SuperRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var superColumns = []string{
	"id", "kind", "name", "description", "leader_id",
	"active", "start_time", "end_time", "location", "club_id",
	"created_at", "updated_at",
}

// scanSuper folds the flat row with its nullable variant columns back into
// the tagged model: only the payload matching the kind is populated.
func scanSuper(row pgx.Row) (*models.Super, error) {
	var s models.Super
	var active *bool
	var startTime, endTime *time.Time
	var location *string
	var clubID *int64

	err := row.Scan(
		&s.ID,
		&s.Kind,
		&s.Name,
		&s.Description,
		&s.LeaderID,
		&active,
		&startTime,
		&endTime,
		&location,
		&clubID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch s.Kind {
	case models.SuperKindProject:
		s.Project = &models.ProjectFields{}
		if active != nil {
			s.Project.Active = *active
		}
	case models.SuperKindEvent:
		s.Event = &models.EventFields{Location: location, ClubID: clubID}
		if startTime != nil {
			s.Event.StartTime = *startTime
		}
		if endTime != nil {
			s.Event.EndTime = *endTime
		}
	}

	return &s, nil
}

// variantColumns flattens the kind-specific payload into nullable column values
func variantColumns(s *models.Super) (active *bool, startTime, endTime *time.Time, location *string, clubID *int64) {
	switch s.Kind {
	case models.SuperKindProject:
		if s.Project != nil {
			active = &s.Project.Active
		}
	case models.SuperKindEvent:
		if s.Event != nil {
			startTime = &s.Event.StartTime
			endTime = &s.Event.EndTime
			location = s.Event.Location
			clubID = s.Event.ClubID
		}
	}
	return
}

// Create inserts a community entity together with its tag and link
// attachments in a single transaction.
func (r *SuperRepository) Create(ctx context.Context, super *models.Super, tags, links []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	active, startTime, endTime, location, clubID := variantColumns(super)

	sql, args, err := r.sb.Insert("supers").
		Columns("kind", "name", "description", "leader_id", "active", "start_time", "end_time", "location", "club_id").
		Values(super.Kind, super.Name, super.Description, super.LeaderID, active, startTime, endTime, location, clubID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create super query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&super.ID, &super.CreatedAt, &super.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("kind", string(super.Kind)).Msg("Error executing create super query")
		return fmt.Errorf("error creating super: %w", err)
	}

	for _, value := range tags {
		tagID, err := getOrCreateValueID(ctx, tx, "tags", value)
		if err != nil {
			return err
		}
		if err := attachValue(ctx, tx, "super_tags", "super_id", "tag_id", super.ID, tagID); err != nil {
			return err
		}
	}

	for _, value := range links {
		linkID, err := getOrCreateValueID(ctx, tx, "links", value)
		if err != nil {
			return err
		}
		if err := attachValue(ctx, tx, "super_links", "super_id", "link_id", super.ID, linkID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	super.Tags = tags
	super.Links = links
	return nil
}

// GetByID retrieves a community entity with followers, tags and links loaded
func (r *SuperRepository) GetByID(ctx context.Context, id int64) (*models.Super, error) {
	sql, args, err := r.sb.Select(superColumns...).
		From("supers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get super query: %w", err)
	}

	super, err := scanSuper(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSuperNotFound
		}
		return nil, fmt.Errorf("error retrieving super: %w", err)
	}

	if err := r.loadRelated(ctx, super); err != nil {
		return nil, err
	}

	return super, nil
}

func (r *SuperRepository) loadRelated(ctx context.Context, super *models.Super) error {
	followers, err := r.ListFollowers(ctx, super.ID)
	if err != nil {
		return err
	}
	super.Followers = followers

	super.Tags, err = valuesForOwner(ctx, r.db, "tags", "super_tags", "super_id", "tag_id", super.ID)
	if err != nil {
		return err
	}

	super.Links, err = valuesForOwner(ctx, r.db, "links", "super_links", "super_id", "link_id", super.ID)
	if err != nil {
		return err
	}

	return nil
}

// Update persists the base fields and the variant payload of an entity
func (r *SuperRepository) Update(ctx context.Context, super *models.Super) error {
	active, startTime, endTime, location, clubID := variantColumns(super)

	sql, args, err := r.sb.Update("supers").
		Set("name", super.Name).
		Set("description", super.Description).
		Set("leader_id", super.LeaderID).
		Set("active", active).
		Set("start_time", startTime).
		Set("end_time", endTime).
		Set("location", location).
		Set("club_id", clubID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": super.ID, "kind": super.Kind}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update super query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating super: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSuperNotFound
	}

	return nil
}

// AttachTags get-or-creates each value and links it to the entity
func (r *SuperRepository) AttachTags(ctx context.Context, superID int64, values []string) error {
	for _, value := range values {
		tagID, err := getOrCreateValueID(ctx, r.db, "tags", value)
		if err != nil {
			return err
		}
		if err := attachValue(ctx, r.db, "super_tags", "super_id", "tag_id", superID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// AttachLinks get-or-creates each value and links it to the entity
func (r *SuperRepository) AttachLinks(ctx context.Context, superID int64, values []string) error {
	for _, value := range values {
		linkID, err := getOrCreateValueID(ctx, r.db, "links", value)
		if err != nil {
			return err
		}
		if err := attachValue(ctx, r.db, "super_links", "super_id", "link_id", superID, linkID); err != nil {
			return err
		}
	}
	return nil
}

// Follow records a user as follower of an entity, idempotently
func (r *SuperRepository) Follow(ctx context.Context, superID, userID int64) error {
	sql := `INSERT INTO super_followers (super_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, sql, superID, userID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSuperNotFound
		}
		return fmt.Errorf("error adding follower: %w", err)
	}
	return nil
}

// Unfollow removes a user from an entity's followers; removing a
// non-follower is a no-op.
func (r *SuperRepository) Unfollow(ctx context.Context, superID, userID int64) error {
	sql := `DELETE FROM super_followers WHERE super_id = $1 AND user_id = $2`
	if _, err := r.db.Exec(ctx, sql, superID, userID); err != nil {
		return fmt.Errorf("error removing follower: %w", err)
	}
	return nil
}

// ListFollowers returns the follower user ids of an entity in follow order
func (r *SuperRepository) ListFollowers(ctx context.Context, superID int64) ([]int64, error) {
	sql := `SELECT user_id FROM super_followers WHERE super_id = $1 ORDER BY created_at, user_id`
	rows, err := r.db.Query(ctx, sql, superID)
	if err != nil {
		return nil, fmt.Errorf("error listing followers: %w", err)
	}
	defer rows.Close()

	var followers []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("error scanning follower row: %w", err)
		}
		followers = append(followers, userID)
	}

	return followers, nil
}

// Search finds entities of a kind whose name, description or tag value
// contains the term, capped at SearchResultLimit.
func (r *SuperRepository) Search(ctx context.Context, kind models.SuperKind, term string) ([]models.Super, error) {
	pattern := "%" + term + "%"

	sql := `
		SELECT DISTINCT s.id, s.kind, s.name, s.description, s.leader_id,
		       s.active, s.start_time, s.end_time, s.location, s.club_id,
		       s.created_at, s.updated_at
		FROM supers s
		LEFT JOIN super_tags st ON st.super_id = s.id
		LEFT JOIN tags t ON t.id = st.tag_id
		WHERE s.kind = $1
		  AND (s.name ILIKE $2 OR s.description ILIKE $2 OR t.value ILIKE $2)
		ORDER BY s.id
		LIMIT $3`

	rows, err := r.db.Query(ctx, sql, kind, pattern, SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("error executing search supers query: %w", err)
	}
	defer rows.Close()

	var supers []models.Super
	for rows.Next() {
		super, err := scanSuper(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning super row: %w", err)
		}
		supers = append(supers, *super)
	}
	rows.Close()

	for i := range supers {
		if err := r.loadRelated(ctx, &supers[i]); err != nil {
			return nil, err
		}
	}

	return supers, nil
}
