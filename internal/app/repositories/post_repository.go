package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogzkr/campushub/internal/app/models"
	"github.com/ogzkr/campushub/internal/app/models/dto"
	"github.com/ogzkr/campushub/internal/pkg/apperrors"
	"github.com/ogzkr/campushub/internal/pkg/dberrors"
	"github.com/ogzkr/campushub/internal/pkg/logger"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var postSelectColumns = []string{
	"p.id", "p.author_id", "p.title", "p.content_type", "p.text", "p.image_url",
	"p.attached_kind", "p.attached_id", "p.created_at",
	"u.username", "u.display_name", "u.profile_picture",
	"s.name AS attachment_name",
}

// applyPostFilters adds the WHERE clauses shared by the listing and count
// statements. Filters combine with AND; the tag list matches posts carrying
// any of the values.
func applyPostFilters(query squirrel.SelectBuilder, filter dto.PostFilter) squirrel.SelectBuilder {
	if filter.Title != "" {
		query = query.Where(squirrel.ILike{"p.title": "%" + filter.Title + "%"})
	}

	if len(filter.Tags) > 0 {
		query = query.Where(squirrel.Expr(
			`p.id IN (SELECT pt.post_id FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE t.value = ANY(?))`,
			filter.Tags))
	}

	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"p.attached_kind": filter.Type})
	}

	return query
}

// BuildListPostsQuery composes the filtered post listing statement. The
// window total rides along on every row via COUNT(*) OVER().
func BuildListPostsQuery(filter dto.PostFilter) (string, []interface{}, error) {
	columns := append(append([]string{}, postSelectColumns...), "COUNT(*) OVER() AS total")

	query := squirrel.Select(columns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("supers s ON s.id = p.attached_id").
		PlaceholderFormat(squirrel.Dollar)

	query = applyPostFilters(query, filter).
		OrderBy("p.id").
		Offset(uint64(filter.Offset)).
		Limit(uint64(filter.Limit))

	return query.ToSql()
}

// BuildCountPostsQuery composes the bare count of posts matching the same
// filters, with no window applied. Needed when the requested window returns
// no rows: the per-row total never materializes, but the total must still
// reflect the full filtered count.
func BuildCountPostsQuery(filter dto.PostFilter) (string, []interface{}, error) {
	query := squirrel.Select("COUNT(*)").
		From("posts p").
		PlaceholderFormat(squirrel.Dollar)

	return applyPostFilters(query, filter).ToSql()
}

func scanPost(row pgx.Row) (*models.Post, int64, error) {
	var p models.Post
	var author models.User
	var attachedKind *string
	var attachedID *int64
	var total int64

	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.ContentType,
		&p.Text,
		&p.ImageURL,
		&attachedKind,
		&attachedID,
		&p.CreatedAt,
		&author.Username,
		&author.DisplayName,
		&author.ProfilePicture,
		&p.AttachmentName,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}

	author.ID = p.AuthorID
	p.Author = &author

	if attachedKind != nil && attachedID != nil {
		p.Attachment = &models.AttachmentRef{
			Kind:    models.AttachmentKind(*attachedKind),
			SuperID: *attachedID,
		}
	}

	return &p, total, nil
}

// Create inserts a post together with its tag attachments in a single
// transaction. Posts are immutable after this point.
func (r *PostRepository) Create(ctx context.Context, post *models.Post, tags []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var attachedKind *models.AttachmentKind
	var attachedID *int64
	if post.Attachment != nil {
		attachedKind = &post.Attachment.Kind
		attachedID = &post.Attachment.SuperID
	}

	sql, args, err := r.sb.Insert("posts").
		Columns("author_id", "title", "content_type", "text", "image_url", "attached_kind", "attached_id").
		Values(post.AuthorID, post.Title, post.ContentType, post.Text, post.ImageURL, attachedKind, attachedID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSuperNotFound
		}
		logger.Error().Err(err).Int64("authorID", post.AuthorID).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}

	for _, value := range tags {
		tagID, err := getOrCreateValueID(ctx, tx, "tags", value)
		if err != nil {
			return err
		}
		if err := attachValue(ctx, tx, "post_tags", "post_id", "tag_id", post.ID, tagID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	post.Tags = tags
	return nil
}

// GetByID retrieves a post with its author, attachment name and tags
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	columns := append(append([]string{}, postSelectColumns...), "COUNT(*) OVER() AS total")
	sql, args, err := squirrel.Select(columns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("supers s ON s.id = p.attached_id").
		Where("p.id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post, _, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	post.Tags, err = valuesForOwner(ctx, r.db, "tags", "post_tags", "post_id", "tag_id", post.ID)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// List returns the filtered post window and the total match count
// independent of the window.
func (r *PostRepository) List(ctx context.Context, filter dto.PostFilter) ([]models.Post, int64, error) {
	sql, args, err := BuildListPostsQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing list posts query: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	var total int64
	for rows.Next() {
		post, rowTotal, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		total = rowTotal
		posts = append(posts, *post)
	}
	rows.Close()

	// an empty window carries no per-row total; count the matches separately
	// so offsets past the end still report the full filtered count
	if len(posts) == 0 {
		countSQL, countArgs, err := BuildCountPostsQuery(filter)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build count posts query: %w", err)
		}
		if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("error counting posts: %w", err)
		}
	}

	if err := r.loadTags(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// ListByAuthor returns all posts by a user in insertion order
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	columns := append(append([]string{}, postSelectColumns...), "COUNT(*) OVER() AS total")
	sql, args, err := squirrel.Select(columns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("supers s ON s.id = p.attached_id").
		Where("p.author_id = ?", authorID).
		OrderBy("p.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list posts by author query: %w", err)
	}

	return r.queryPosts(ctx, sql, args)
}

// ListLikedBy returns all posts a user has liked, in like order
func (r *PostRepository) ListLikedBy(ctx context.Context, userID int64) ([]models.Post, error) {
	columns := append(append([]string{}, postSelectColumns...), "COUNT(*) OVER() AS total")
	sql, args, err := squirrel.Select(columns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("supers s ON s.id = p.attached_id").
		Join("likes l ON l.post_id = p.id").
		Where("l.user_id = ?", userID).
		OrderBy("l.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list liked posts query: %w", err)
	}

	return r.queryPosts(ctx, sql, args)
}

func (r *PostRepository) queryPosts(ctx context.Context, sql string, args []interface{}) ([]models.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing list posts query: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, _, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, *post)
	}
	rows.Close()

	if err := r.loadTags(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// loadTags batch-loads tag values for the given posts
func (r *PostRepository) loadTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	index := make(map[int64]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
	}

	sql := `
		SELECT pt.post_id, t.value
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY pt.post_id, t.id`

	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return fmt.Errorf("error loading post tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var value string
		if err := rows.Scan(&postID, &value); err != nil {
			return fmt.Errorf("error scanning post tag row: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Tags = append(posts[i].Tags, value)
		}
	}

	return nil
}
