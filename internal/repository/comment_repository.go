package repository

import (
	"context"
	"errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// CommentRepository manages comments on photos.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByPhoto(ctx context.Context, photoID string, page Page) ([]domain.Comment, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) (*domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository constructs repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

const commentColumns = `id, text, photo_id, user_id, created_at, updated_at`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (text, photo_id, user_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		comment.Text,
		comment.PhotoID,
		comment.UserID,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *commentRepository) ListByPhoto(ctx context.Context, photoID string, page Page) ([]domain.Comment, error) {
	page = page.normalize()
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE photo_id=$1
        ORDER BY created_at LIMIT $2 OFFSET $3`

	comments := []domain.Comment{}
	if err := pgxscan.Select(ctx, r.pool, &comments, query, photoID, page.Limit, page.Offset); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id, text string) (*domain.Comment, error) {
	const query = `UPDATE comments SET text=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + commentColumns
	return r.fetchSingle(ctx, query, text, id)
}

func (r *commentRepository) Delete(ctx context.Context, id string) (*domain.Comment, error) {
	const query = `DELETE FROM comments WHERE id=$1 RETURNING ` + commentColumns
	return r.fetchSingle(ctx, query, id)
}

func (r *commentRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Comment, error) {
	var comment domain.Comment
	if err := pgxscan.Get(ctx, r.pool, &comment, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}
