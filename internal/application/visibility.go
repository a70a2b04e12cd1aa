package application

import (
	"context"

	"github.com/chirper-app/chirper/internal/domain/repository"
)

// VisibilityPolicy decides whether a viewer may see an author's content.
// It is the single gate for reading posts, listing an author's content,
// reacting, and viewing profiles.
type VisibilityPolicy struct {
	Users   repository.UserRepository
	Follows repository.FollowRepository
}

func NewVisibilityPolicy(users repository.UserRepository, follows repository.FollowRepository) *VisibilityPolicy {
	return &VisibilityPolicy{Users: users, Follows: follows}
}

// IsAccessible: the viewer is the author, the author is public, or the
// viewer follows the author.
func (v *VisibilityPolicy) IsAccessible(ctx context.Context, viewerID, authorID string) (bool, error) {
	if viewerID == authorID {
		return true, nil
	}
	private, err := v.Users.IsPrivate(ctx, authorID)
	if err != nil {
		return false, err
	}
	if !private {
		return true, nil
	}
	return v.Follows.CheckFollow(ctx, viewerID, authorID)
}
