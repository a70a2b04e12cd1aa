package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chirper-app/chirper/internal/domain/repository"
)

// Errors surface through the domain sentinels so services never depend on
// pgx directly.
var (
	ErrNoRows    = repository.ErrNotFound
	ErrDuplicate = repository.ErrDuplicate
)

const uniqueViolation = "23505"

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
