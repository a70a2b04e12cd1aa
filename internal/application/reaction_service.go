package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
	"github.com/chirper-app/chirper/internal/domain/repository"
	"github.com/chirper-app/chirper/pkg/apperror"
	"github.com/chirper-app/chirper/pkg/helpers"
)

type ReactionService struct {
	Reactions  repository.ReactionRepository
	Posts      repository.PostRepository
	Visibility *VisibilityPolicy
	Storage    helpers.Storage
	Pages      PageLimits
	Logger     *logrus.Logger
}

func NewReactionService(reactions repository.ReactionRepository, posts repository.PostRepository, visibility *VisibilityPolicy, storage helpers.Storage, pages PageLimits, logger *logrus.Logger) *ReactionService {
	return &ReactionService{
		Reactions:  reactions,
		Posts:      posts,
		Visibility: visibility,
		Storage:    storage,
		Pages:      pages,
		Logger:     logger,
	}
}

func conflictCode(t entity.ReactionType, present bool) string {
	switch {
	case t == entity.ReactionLike && present:
		return "ALREADY_LIKED"
	case t == entity.ReactionLike:
		return "NOT_LIKED"
	case present:
		return "ALREADY_RETWEETED"
	default:
		return "NOT_RETWEETED"
	}
}

// checkTarget confirms the post exists and its author is visible to userID.
func (s *ReactionService) checkTarget(ctx context.Context, userID, postID string) error {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.NotFound("post")
	}
	accessible, err := s.Visibility.IsAccessible(ctx, userID, p.AuthorID)
	if err != nil {
		return err
	}
	if !accessible {
		return apperror.NotFound("post")
	}
	return nil
}

// React adds a reaction. Reacting twice with the same type conflicts.
func (s *ReactionService) React(ctx context.Context, userID, postID string, t entity.ReactionType) error {
	if !entity.ValidReactionType(t) {
		return apperror.Validation("reaction type must be LIKE or RETWEET")
	}
	if err := s.checkTarget(ctx, userID, postID); err != nil {
		return err
	}

	present, err := s.Reactions.Check(ctx, userID, postID, t)
	if err != nil {
		return err
	}
	if present {
		return apperror.Conflict(conflictCode(t, true))
	}
	if err := s.Reactions.Create(ctx, userID, postID, t); err != nil {
		// A concurrent React can slip past the check; the unique index
		// reports it and we answer as if the check had caught it.
		if err == repository.ErrDuplicate {
			return apperror.Conflict(conflictCode(t, true))
		}
		return err
	}
	return nil
}

// Unreact removes a reaction. Removing an absent reaction conflicts.
func (s *ReactionService) Unreact(ctx context.Context, userID, postID string, t entity.ReactionType) error {
	if !entity.ValidReactionType(t) {
		return apperror.Validation("reaction type must be LIKE or RETWEET")
	}

	present, err := s.Reactions.Check(ctx, userID, postID, t)
	if err != nil {
		return err
	}
	if !present {
		return apperror.Conflict(conflictCode(t, false))
	}
	if err := s.Reactions.Delete(ctx, userID, postID, t); err != nil {
		if err == repository.ErrNotFound {
			return apperror.Conflict(conflictCode(t, false))
		}
		return err
	}
	return nil
}

// GetReactedPosts lists posts targetUserID reacted to with the given type,
// gated on the target user's visibility.
func (s *ReactionService) GetReactedPosts(ctx context.Context, viewerID, targetUserID string, t entity.ReactionType, p pagination.Cursor) ([]ExtendedPostDTO, error) {
	if !entity.ValidReactionType(t) {
		return nil, apperror.Validation("reaction type must be LIKE or RETWEET")
	}
	accessible, err := s.Visibility.IsAccessible(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperror.NotFound("user")
	}

	posts, err := s.Posts.GetReactedPaginated(ctx, targetUserID, t, s.Pages.cursor(p))
	if err != nil {
		return nil, err
	}
	return toExtendedPostDTOs(ctx, s.Storage, posts)
}
