package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/repository"
)

type ReactionRepository struct {
	pool *pgxpool.Pool
}

func NewReactionRepository(pool *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{pool: pool}
}

func (r *ReactionRepository) Check(ctx context.Context, userID, postID string, t entity.ReactionType) (bool, error) {
	var one int
	row := r.pool.QueryRow(ctx, `
		SELECT 1 FROM reactions WHERE user_id = $1 AND post_id = $2 AND type = $3
	`, userID, postID, t)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ReactionRepository) Create(ctx context.Context, userID, postID string, t entity.ReactionType) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reactions (user_id, post_id, type) VALUES ($1, $2, $3)
	`, userID, postID, t)
	return translateError(err)
}

func (r *ReactionRepository) Delete(ctx context.Context, userID, postID string, t entity.ReactionType) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM reactions WHERE user_id = $1 AND post_id = $2 AND type = $3
	`, userID, postID, t)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

var _ repository.ReactionRepository = (*ReactionRepository)(nil)
