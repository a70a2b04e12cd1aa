package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
	"github.com/chirper-app/chirper/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Username, u.Password, u.Name)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, username, password_hash, name, COALESCE(profile_picture, ''), is_private, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, username, password_hash, name, COALESCE(profile_picture, ''), is_private, created_at, updated_at
		FROM users
		WHERE email = $1 OR username = $2
	`, email, username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.Name,
		&u.ProfilePicture, &u.IsPrivate, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

func (r *UserRepository) IsPrivate(ctx context.Context, id string) (bool, error) {
	var private bool
	row := r.pool.QueryRow(ctx, `SELECT is_private FROM users WHERE id = $1`, id)
	if err := row.Scan(&private); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return private, nil
}

func (r *UserRepository) SetPrivate(ctx context.Context, id string, private bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET is_private = $1, updated_at = now() WHERE id = $2
	`, private, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, id, key string) (string, error) {
	var stored string
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET profile_picture = $1, updated_at = now()
		WHERE id = $2
		RETURNING profile_picture
	`, key, id)
	if err := row.Scan(&stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoRows
		}
		return "", err
	}
	return stored, nil
}

// GetRecommendedPaginated suggests users followed by the users userID
// follows, skipping userID itself, ordered by id for a stable walk.
func (r *UserRepository) GetRecommendedPaginated(ctx context.Context, userID string, p pagination.Offset) ([]entity.UserView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT u.id, u.name, u.username, COALESCE(u.profile_picture, '')
		FROM users u
		JOIN follows f2 ON f2.followed_id = u.id
		JOIN follows f1 ON f1.followed_id = f2.follower_id
		WHERE f1.follower_id = $1 AND u.id <> $1
		ORDER BY u.id ASC
		LIMIT $2 OFFSET $3
	`, userID, p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUserViews(rows)
}

func (r *UserRepository) GetByUsernamePaginated(ctx context.Context, username string, p pagination.Cursor) ([]entity.UserView, error) {
	cursor, backwards := cursorID(p)

	query := `
		SELECT id, name, username, COALESCE(profile_picture, '')
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY id ASC
		LIMIT $2
	`
	args := []any{username, p.Limit}
	if cursor != "" {
		if backwards {
			query = `
				SELECT id, name, username, COALESCE(profile_picture, '')
				FROM users
				WHERE username ILIKE '%' || $1 || '%' AND id < $3
				ORDER BY id DESC
				LIMIT $2
			`
		} else {
			query = `
				SELECT id, name, username, COALESCE(profile_picture, '')
				FROM users
				WHERE username ILIKE '%' || $1 || '%' AND id > $3
				ORDER BY id ASC
				LIMIT $2
			`
		}
		args = append(args, cursor)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users, err := scanUserViews(rows)
	if err != nil {
		return nil, err
	}
	if backwards {
		reverseInPlace(users)
	}
	return users, nil
}

func scanUserViews(rows pgx.Rows) ([]entity.UserView, error) {
	views := make([]entity.UserView, 0)
	for rows.Next() {
		var v entity.UserView
		if err := rows.Scan(&v.ID, &v.Name, &v.Username, &v.ProfilePicture); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
