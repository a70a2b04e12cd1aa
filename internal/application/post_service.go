package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
	"github.com/chirper-app/chirper/internal/domain/repository"
	"github.com/chirper-app/chirper/pkg/apperror"
	"github.com/chirper-app/chirper/pkg/helpers"
)

const maxPostImages = 4

type PostService struct {
	Posts      repository.PostRepository
	Visibility *VisibilityPolicy
	Storage    helpers.Storage
	Pages      PageLimits
	Logger     *logrus.Logger

	// now is swappable so tests get deterministic image keys.
	now func() time.Time
}

func NewPostService(posts repository.PostRepository, visibility *VisibilityPolicy, storage helpers.Storage, pages PageLimits, logger *logrus.Logger) *PostService {
	return &PostService{
		Posts:      posts,
		Visibility: visibility,
		Storage:    storage,
		Pages:      pages,
		Logger:     logger,
		now:        time.Now,
	}
}

type CreatePostInput struct {
	Content string
	Images  []string // client-side filenames
}

func validateImages(images []string) error {
	if len(images) > maxPostImages {
		return apperror.Validation(fmt.Sprintf("at most %d images per post", maxPostImages))
	}
	for _, name := range images {
		dot := strings.LastIndex(name, ".")
		if dot < 0 || !allowedExtensions[strings.ToLower(name[dot+1:])] {
			return apperror.UnsupportedMedia("image extension must be one of png, jpg, jpeg")
		}
	}
	return nil
}

// imageKeys derives the stored object keys from the uploaded filenames.
func (s *PostService) imageKeys(userID string, images []string) []string {
	ts := s.now().UnixMilli()
	keys := make([]string, len(images))
	for i, name := range images {
		keys[i] = fmt.Sprintf("postImages/%s/%d%d%s", userID, ts, i, name)
	}
	return keys
}

// CreatePost persists the post and hands back one signed PUT URL per image
// for the client to upload against.
func (s *PostService) CreatePost(ctx context.Context, userID string, in CreatePostInput) (*PostDTO, error) {
	if err := validateImages(in.Images); err != nil {
		return nil, err
	}

	p := &entity.Post{
		AuthorID: userID,
		Content:  in.Content,
		Images:   s.imageKeys(userID, in.Images),
		Type:     entity.PostTypePost,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}

	urls, err := signedPutURLs(ctx, s.Storage, p.Images)
	if err != nil {
		return nil, err
	}
	dto := toPostDTO(p)
	dto.Images = urls
	return &dto, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.NotFound("post")
	}
	if p.AuthorID != userID {
		return apperror.Forbidden()
	}
	return s.Posts.Delete(ctx, postID)
}

// GetPost hides inaccessible posts behind the same NotFound as missing ones.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID string) (*ExtendedPostDTO, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("post")
	}

	accessible, err := s.Visibility.IsAccessible(ctx, viewerID, p.AuthorID)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperror.NotFound("post")
	}

	dto, err := toExtendedPostDTO(ctx, s.Storage, p)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// GetLatestPosts returns the viewer's feed. Visibility is applied in the
// repository query, not per row here.
func (s *PostService) GetLatestPosts(ctx context.Context, viewerID string, p pagination.Cursor) ([]ExtendedPostDTO, error) {
	posts, err := s.Posts.GetFeedPaginated(ctx, viewerID, s.Pages.cursor(p))
	if err != nil {
		return nil, err
	}
	return toExtendedPostDTOs(ctx, s.Storage, posts)
}

func (s *PostService) GetPostsByAuthor(ctx context.Context, viewerID, authorID string) ([]ExtendedPostDTO, error) {
	accessible, err := s.Visibility.IsAccessible(ctx, viewerID, authorID)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperror.NotFound("post")
	}

	posts, err := s.Posts.GetByAuthor(ctx, authorID, entity.PostTypePost)
	if err != nil {
		return nil, err
	}
	return toExtendedPostDTOs(ctx, s.Storage, posts)
}
