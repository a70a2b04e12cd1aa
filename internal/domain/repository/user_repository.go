package repository

import (
	"context"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmailOrUsername matches either field; used by login and by the
	// signup duplicate check.
	GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	// IsPrivate returns false for unknown users.
	IsPrivate(ctx context.Context, id string) (bool, error)
	SetPrivate(ctx context.Context, id string, private bool) error
	// SetProfilePicture stores the object key and returns it.
	SetProfilePicture(ctx context.Context, id, key string) (string, error)
	// GetRecommendedPaginated returns users followed by the users that
	// userID follows, excluding userID, ordered by id ascending.
	GetRecommendedPaginated(ctx context.Context, userID string, p pagination.Offset) ([]entity.UserView, error)
	// GetByUsernamePaginated is a contains-match over usernames, cursor
	// paginated by id.
	GetByUsernamePaginated(ctx context.Context, username string, p pagination.Cursor) ([]entity.UserView, error)
}
