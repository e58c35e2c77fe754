package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// TagRepository manages tags.
type TagRepository interface {
	GetOrCreate(ctx context.Context, title, userID string) (*domain.Tag, error)
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	UpdateTitle(ctx context.Context, id, title string) (*domain.Tag, error)
}

type tagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository constructs repository.
func NewTagRepository(pool *pgxpool.Pool) TagRepository {
	return &tagRepository{pool: pool}
}

func (r *tagRepository) GetOrCreate(ctx context.Context, title, userID string) (*domain.Tag, error) {
	const query = `
        INSERT INTO tags (title, user_id) VALUES ($1, $2)
        ON CONFLICT (title) DO UPDATE SET title=EXCLUDED.title
        RETURNING id, title, user_id, created_at`

	var tag domain.Tag
	if err := pgxscan.Get(ctx, r.pool, &tag, query, title, userID); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	const query = `SELECT id, title, user_id, created_at FROM tags WHERE id=$1`

	var tag domain.Tag
	if err := pgxscan.Get(ctx, r.pool, &tag, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.Tag, error) {
	const query = `UPDATE tags SET title=$1 WHERE id=$2 RETURNING id, title, user_id, created_at`

	var tag domain.Tag
	if err := pgxscan.Get(ctx, r.pool, &tag, query, title, id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isInvalidText(err):
			return nil, domain.ErrTagNotFound
		case isUniqueViolation(err):
			return nil, fmt.Errorf("update tag: %w", ErrDuplicate)
		}
		return nil, err
	}
	return &tag, nil
}
