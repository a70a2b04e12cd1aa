package repository

import (
	"context"

	"github.com/chirper-app/chirper/internal/domain/entity"
)

type FollowRepository interface {
	// CheckFollow reports whether followerID follows followedID.
	CheckFollow(ctx context.Context, followerID, followedID string) (bool, error)
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	// GetFollowing lists the users followerID follows.
	GetFollowing(ctx context.Context, followerID string) ([]entity.UserView, error)
}
