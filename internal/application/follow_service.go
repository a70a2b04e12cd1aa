package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/domain/repository"
	"github.com/chirper-app/chirper/pkg/apperror"
)

type FollowService struct {
	Follows repository.FollowRepository
	Users   repository.UserRepository
	Logger  *logrus.Logger
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository, logger *logrus.Logger) *FollowService {
	return &FollowService{Follows: follows, Users: users, Logger: logger}
}

// FollowUser makes userID follow targetID. Self-follows and duplicates
// conflict; a missing target is NotFound.
func (s *FollowService) FollowUser(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return apperror.Conflict("SELF_FOLLOW")
	}

	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperror.NotFound("user")
	}

	following, err := s.Follows.CheckFollow(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if following {
		return apperror.Conflict("USER_ALREADY_FOLLOWED")
	}
	if err := s.Follows.Follow(ctx, userID, targetID); err != nil {
		if err == repository.ErrDuplicate {
			return apperror.Conflict("USER_ALREADY_FOLLOWED")
		}
		return err
	}
	return nil
}

func (s *FollowService) UnfollowUser(ctx context.Context, userID, targetID string) error {
	following, err := s.Follows.CheckFollow(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if !following {
		return apperror.Conflict("USER_NOT_FOLLOWED")
	}
	if err := s.Follows.Unfollow(ctx, userID, targetID); err != nil {
		if err == repository.ErrNotFound {
			return apperror.Conflict("USER_NOT_FOLLOWED")
		}
		return err
	}
	return nil
}
