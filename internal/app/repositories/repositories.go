package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by *pgxpool.Pool and
// pgx.Tx, so helpers can run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	SessionRepository *SessionRepository
	SuperRepository   *SuperRepository
	TagRepository     *TagRepository
	PostRepository    *PostRepository
	LikeRepository    *LikeRepository
	CommentRepository *CommentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		SessionRepository: NewSessionRepository(db),
		SuperRepository:   NewSuperRepository(db),
		TagRepository:     NewTagRepository(db),
		PostRepository:    NewPostRepository(db),
		LikeRepository:    NewLikeRepository(db),
		CommentRepository: NewCommentRepository(db),
	}
}
