package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/repository"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

func (r *FollowRepository) CheckFollow(ctx context.Context, followerID, followedID string) (bool, error) {
	var one int
	row := r.pool.QueryRow(ctx, `
		SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2
	`, followerID, followedID)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *FollowRepository) Follow(ctx context.Context, followerID, followedID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2)
	`, followerID, followedID)
	return translateError(err)
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followedID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2
	`, followerID, followedID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

func (r *FollowRepository) GetFollowing(ctx context.Context, followerID string) ([]entity.UserView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.username, COALESCE(u.profile_picture, '')
		FROM users u
		JOIN follows f ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY u.id ASC
	`, followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUserViews(rows)
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
