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

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a comment and fills in its generated fields
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "user_id", "text").
		Values(comment.PostID, comment.UserID, comment.Text).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// ListByPostID returns a post's comments in insertion order, with the
// commenting user joined in.
func (r *CommentRepository) ListByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	sql, args, err := squirrel.Select(
		"c.id", "c.post_id", "c.user_id", "c.text", "c.created_at", "u.username").
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where("c.post_id = ?", postID).
		OrderBy("c.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list comments query: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		var user models.User
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt, &user.Username); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		user.ID = c.UserID
		c.User = &user
		comments = append(comments, c)
	}

	return comments, nil
}
