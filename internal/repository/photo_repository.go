package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// PhotoFilter captures listing and search parameters.
type PhotoFilter struct {
	UserID     *string
	SearchTerm *string
	Page       Page
}

// PhotoRepository encapsulates photo and photo-tag persistence.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo, tags []string) error
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	List(ctx context.Context, filter PhotoFilter) ([]domain.Photo, error)
	Update(ctx context.Context, photo *domain.Photo) error
	ReplaceTags(ctx context.Context, photo *domain.Photo, tags []string) error
	Delete(ctx context.Context, id string) (*domain.Photo, error)
}

type photoRepository struct {
	pool *pgxpool.Pool
}

// NewPhotoRepository instantiates repository.
func NewPhotoRepository(pool *pgxpool.Pool) PhotoRepository {
	return &photoRepository{pool: pool}
}

const photoColumns = `id, user_id, photo_url, public_id, transformed_url, title, description, created_at, updated_at`

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo, tags []string) error {
	if len(tags) > domain.MaxPhotoTags {
		return domain.ErrTooManyTags
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
            INSERT INTO photos (user_id, photo_url, public_id, title, description)
            VALUES ($1,$2,$3,$4,$5)
            RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			photo.UserID,
			photo.PhotoURL,
			photo.PublicID,
			photo.Title,
			photo.Description,
		).Scan(&photo.ID, &photo.CreatedAt, &photo.UpdatedAt); err != nil {
			return fmt.Errorf("insert photo: %w", err)
		}

		attached, err := attachTags(ctx, tx, photo.ID, photo.UserID, tags)
		if err != nil {
			return err
		}
		photo.Tags = attached
		return nil
	})
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	const query = `SELECT ` + photoColumns + ` FROM photos WHERE id=$1`

	var photo domain.Photo
	if err := pgxscan.Get(ctx, r.pool, &photo, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}

	photos := []domain.Photo{photo}
	if err := r.loadTags(ctx, photos); err != nil {
		return nil, err
	}
	return &photos[0], nil
}

func (r *photoRepository) List(ctx context.Context, filter PhotoFilter) ([]domain.Photo, error) {
	base := `SELECT DISTINCT p.id, p.user_id, p.photo_url, p.public_id, p.transformed_url, p.title,
                    p.description, p.created_at, p.updated_at
             FROM photos p
             LEFT JOIN photo_tags pt ON pt.photo_id = p.id
             LEFT JOIN tags t ON t.id = pt.tag_id`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("p.user_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(p.title) LIKE %s OR LOWER(p.description) LIKE %s OR LOWER(t.title) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	page := filter.Page.normalize()
	query := fmt.Sprintf(`%s WHERE %s ORDER BY p.created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), page.Limit, page.Offset)

	photos := []domain.Photo{}
	if err := pgxscan.Select(ctx, r.pool, &photos, query, args...); err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) Update(ctx context.Context, photo *domain.Photo) error {
	const query = `
        UPDATE photos SET title=$1, description=$2, transformed_url=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		photo.Title,
		photo.Description,
		photo.TransformedURL,
		photo.ID,
	).Scan(&photo.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPhotoNotFound
		}
		return err
	}
	return nil
}

func (r *photoRepository) ReplaceTags(ctx context.Context, photo *domain.Photo, tags []string) error {
	if len(tags) > domain.MaxPhotoTags {
		return domain.ErrTooManyTags
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM photo_tags WHERE photo_id=$1`, photo.ID); err != nil {
			return fmt.Errorf("clear photo tags: %w", err)
		}
		attached, err := attachTags(ctx, tx, photo.ID, photo.UserID, tags)
		if err != nil {
			return err
		}
		photo.Tags = attached
		return nil
	})
}

func (r *photoRepository) Delete(ctx context.Context, id string) (*domain.Photo, error) {
	const query = `DELETE FROM photos WHERE id=$1 RETURNING ` + photoColumns

	var photo domain.Photo
	if err := pgxscan.Get(ctx, r.pool, &photo, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// attachTags upserts tags by title and links them to the photo.
func attachTags(ctx context.Context, tx pgx.Tx, photoID, userID string, titles []string) ([]domain.Tag, error) {
	const upsert = `
        INSERT INTO tags (title, user_id) VALUES ($1, $2)
        ON CONFLICT (title) DO UPDATE SET title=EXCLUDED.title
        RETURNING id, title, user_id, created_at`
	const link = `INSERT INTO photo_tags (photo_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	tags := make([]domain.Tag, 0, len(titles))
	for _, title := range titles {
		var tag domain.Tag
		if err := pgxscan.Get(ctx, tx, &tag, upsert, title, userID); err != nil {
			return nil, fmt.Errorf("upsert tag %q: %w", title, err)
		}
		if _, err := tx.Exec(ctx, link, photoID, tag.ID); err != nil {
			return nil, fmt.Errorf("link tag %q: %w", title, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

type photoTagRow struct {
	PhotoID string `db:"photo_id"`
	domain.Tag
}

func (r *photoRepository) loadTags(ctx context.Context, photos []domain.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	ids := make([]string, len(photos))
	index := make(map[string]int, len(photos))
	for i := range photos {
		ids[i] = photos[i].ID
		index[photos[i].ID] = i
		photos[i].Tags = []domain.Tag{}
	}

	const query = `
        SELECT pt.photo_id, t.id, t.title, t.user_id, t.created_at
        FROM photo_tags pt JOIN tags t ON t.id = pt.tag_id
        WHERE pt.photo_id = ANY($1::uuid[])
        ORDER BY t.title`

	var rows []photoTagRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, ids); err != nil {
		return fmt.Errorf("load photo tags: %w", err)
	}
	for _, row := range rows {
		i := index[row.PhotoID]
		photos[i].Tags = append(photos[i].Tags, row.Tag)
	}
	return nil
}
