package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/dberrors"
)

// LikeRepository handles like database operations. The (user, post) pair is
// unique; the store is the single enforcement point for that.
type LikeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create records a like. A second like of the same post by the same user
// fails with ErrAlreadyLiked.
func (r *LikeRepository) Create(ctx context.Context, like *models.Like) error {
	sql, args, err := r.sb.Insert("likes").
		Columns("user_id", "post_id").
		Values(like.UserID, like.PostID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create like query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "likes_user_post_unique") {
			return apperrors.ErrAlreadyLiked
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("error creating like: %w", err)
	}

	return nil
}

// Delete removes a user's like of a post
func (r *LikeRepository) Delete(ctx context.Context, userID, postID int64) error {
	sql, args, err := r.sb.Delete("likes").
		Where(squirrel.Eq{"user_id": userID, "post_id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete like query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting like: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// CountByPostIDs returns like counts for a batch of posts. Posts with no
// likes are simply absent from the map.
func (r *LikeRepository) CountByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	sql := `SELECT post_id, COUNT(*) FROM likes WHERE post_id = ANY($1) GROUP BY post_id`
	rows, err := r.db.Query(ctx, sql, postIDs)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, count int64
		if err := rows.Scan(&postID, &count); err != nil {
			return nil, fmt.Errorf("error scanning like count row: %w", err)
		}
		counts[postID] = count
	}

	return counts, nil
}

// ExistsForPosts reports which of the given posts the user has liked
func (r *LikeRepository) ExistsForPosts(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	sql := `SELECT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`
	rows, err := r.db.Query(ctx, sql, userID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("error checking likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		if err := rows.Scan(&postID); err != nil {
			return nil, fmt.Errorf("error scanning like row: %w", err)
		}
		liked[postID] = true
	}

	return liked, nil
}
