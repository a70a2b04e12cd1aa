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

// CommentService reuses the post repository; a comment is a post with a
// parent id.
type CommentService struct {
	Posts      repository.PostRepository
	Visibility *VisibilityPolicy
	PostSvc    *PostService
	Storage    helpers.Storage
	Pages      PageLimits
	Logger     *logrus.Logger
}

func NewCommentService(posts repository.PostRepository, visibility *VisibilityPolicy, postSvc *PostService, storage helpers.Storage, pages PageLimits, logger *logrus.Logger) *CommentService {
	return &CommentService{
		Posts:      posts,
		Visibility: visibility,
		PostSvc:    postSvc,
		Storage:    storage,
		Pages:      pages,
		Logger:     logger,
	}
}

// CommentPost creates a comment on postID. The parent must exist and be
// visible to the commenter.
func (s *CommentService) CommentPost(ctx context.Context, userID, postID string, in CreatePostInput) (*PostDTO, error) {
	if err := validateImages(in.Images); err != nil {
		return nil, err
	}

	parent, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NotFound("post")
	}
	accessible, err := s.Visibility.IsAccessible(ctx, userID, parent.AuthorID)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperror.NotFound("post")
	}

	c := &entity.Post{
		AuthorID: userID,
		Content:  in.Content,
		Images:   s.PostSvc.imageKeys(userID, in.Images),
		Type:     entity.PostTypeComment,
		ParentID: postID,
	}
	if err := s.Posts.Create(ctx, c); err != nil {
		return nil, err
	}

	urls, err := signedPutURLs(ctx, s.Storage, c.Images)
	if err != nil {
		return nil, err
	}
	dto := toPostDTO(c)
	dto.Images = urls
	return &dto, nil
}

// GetCommentsByPost pages comments by reaction count, most reacted first.
func (s *CommentService) GetCommentsByPost(ctx context.Context, viewerID, postID string, p pagination.Cursor) ([]ExtendedPostDTO, error) {
	parent, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NotFound("post")
	}
	accessible, err := s.Visibility.IsAccessible(ctx, viewerID, parent.AuthorID)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperror.NotFound("post")
	}

	comments, err := s.Posts.GetCommentsPaginated(ctx, postID, s.Pages.cursor(p))
	if err != nil {
		return nil, err
	}
	return toExtendedPostDTOs(ctx, s.Storage, comments)
}

func (s *CommentService) GetCommentsByUser(ctx context.Context, viewerID, targetUserID string) ([]ExtendedPostDTO, error) {
	accessible, err := s.Visibility.IsAccessible(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperror.NotFound("user")
	}

	comments, err := s.Posts.GetByAuthor(ctx, targetUserID, entity.PostTypeComment)
	if err != nil {
		return nil, err
	}
	return toExtendedPostDTOs(ctx, s.Storage, comments)
}
