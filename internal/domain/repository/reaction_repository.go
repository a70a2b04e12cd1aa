package repository

import (
	"context"

	"github.com/chirper-app/chirper/internal/domain/entity"
)

type ReactionRepository interface {
	// Check reports whether the reaction of the given type exists.
	Check(ctx context.Context, userID, postID string, t entity.ReactionType) (bool, error)
	Create(ctx context.Context, userID, postID string, t entity.ReactionType) error
	Delete(ctx context.Context, userID, postID string, t entity.ReactionType) error
}
