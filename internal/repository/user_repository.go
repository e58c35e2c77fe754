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

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetProfile(ctx context.Context, username string) (*domain.UserProfile, error)
	List(ctx context.Context, page Page) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id string, username, avatarURL *string) (*domain.User, error)
	SetActive(ctx context.Context, email string, active bool) error
	SetRole(ctx context.Context, email string, role domain.Role) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, role, avatar_url, is_active, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, role, avatar_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, is_active, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.AvatarURL,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("create user: %w", ErrDuplicate)
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := pgxscan.Get(ctx, r.pool, &user, query, arg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	const query = `
        SELECT u.id, u.username, u.email, u.role, u.avatar_url, u.is_active, u.created_at,
               (SELECT COUNT(*) FROM photos p WHERE p.user_id = u.id) AS photo_count
        FROM users u WHERE u.username=$1`

	var profile domain.UserProfile
	if err := pgxscan.Get(ctx, r.pool, &profile, query, username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) List(ctx context.Context, page Page) ([]domain.User, error) {
	page = page.normalize()
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at LIMIT $1 OFFSET $2`

	users := []domain.User{}
	if err := pgxscan.Select(ctx, r.pool, &users, query, page.Limit, page.Offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, username, avatarURL *string) (*domain.User, error) {
	const query = `
        UPDATE users SET username=COALESCE($1, username), avatar_url=COALESCE($2, avatar_url), updated_at=NOW()
        WHERE id=$3
        RETURNING ` + userColumns

	var user domain.User
	if err := pgxscan.Get(ctx, r.pool, &user, query, username, avatarURL, id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrUserNotFound
		case isUniqueViolation(err):
			return nil, fmt.Errorf("update user: %w", ErrDuplicate)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetActive(ctx context.Context, email string, active bool) error {
	const query = `UPDATE users SET is_active=$1, updated_at=NOW() WHERE email=$2`
	return r.execAffecting(ctx, query, active, email)
}

func (r *userRepository) SetRole(ctx context.Context, email string, role domain.Role) error {
	const query = `UPDATE users SET role=$1, updated_at=NOW() WHERE email=$2`
	return r.execAffecting(ctx, query, role, email)
}

func (r *userRepository) execAffecting(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
