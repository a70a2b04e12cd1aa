package repository

import (
	"context"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
)

// PostRepository covers both posts and comments; comments are posts with a
// parent id.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	// GetByID returns nil, nil when the post does not exist.
	GetByID(ctx context.Context, id string) (*entity.ExtendedPost, error)
	// GetFeedPaginated returns top-level posts visible to viewerID ordered
	// by createdAt descending, id ascending as tiebreak post-filtered in SQL
	// by the visibility rule.
	GetFeedPaginated(ctx context.Context, viewerID string, p pagination.Cursor) ([]entity.ExtendedPost, error)
	GetByAuthor(ctx context.Context, authorID string, t entity.PostType) ([]entity.ExtendedPost, error)
	// GetCommentsPaginated returns comments on postID ordered by total
	// reaction count descending, id ascending as tiebreak.
	GetCommentsPaginated(ctx context.Context, postID string, p pagination.Cursor) ([]entity.ExtendedPost, error)
	// GetReactedPaginated returns posts userID reacted to with the given type.
	GetReactedPaginated(ctx context.Context, userID string, t entity.ReactionType, p pagination.Cursor) ([]entity.ExtendedPost, error)
}
