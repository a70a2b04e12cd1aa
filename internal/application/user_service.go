package application

import (
	"context"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/domain/pagination"
	"github.com/chirper-app/chirper/internal/domain/repository"
	"github.com/chirper-app/chirper/pkg/apperror"
	"github.com/chirper-app/chirper/pkg/helpers"
)

// Allowed profile picture extensions.
var allowedExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true}

type UserService struct {
	Users        repository.UserRepository
	Follows      repository.FollowRepository
	Visibility   *VisibilityPolicy
	Storage      helpers.Storage
	ES           *elasticsearch.Client
	ESUsersIndex string
	Pages        PageLimits
	Logger       *logrus.Logger
}

func NewUserService(users repository.UserRepository, follows repository.FollowRepository, visibility *VisibilityPolicy, storage helpers.Storage, es *elasticsearch.Client, esUsersIndex string, pages PageLimits, logger *logrus.Logger) *UserService {
	return &UserService{
		Users:        users,
		Follows:      follows,
		Visibility:   visibility,
		Storage:      storage,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Pages:        pages,
		Logger:       logger,
	}
}

// GetLoggedUser returns the caller's own view, with the accounts they follow.
func (s *UserService) GetLoggedUser(ctx context.Context, userID string) (*LoggedUserViewDTO, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("user")
	}

	view, err := toUserViewDTO(ctx, s.Storage, u.View())
	if err != nil {
		return nil, err
	}
	following, err := s.Follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followingDTOs, err := toUserViewDTOs(ctx, s.Storage, following)
	if err != nil {
		return nil, err
	}
	return &LoggedUserViewDTO{
		UserViewDTO: view,
		Email:       u.Email,
		IsPrivate:   u.IsPrivate,
		Following:   followingDTOs,
	}, nil
}

// GetUser returns another user's profile with relationship flags.
func (s *UserService) GetUser(ctx context.Context, viewerID, otherUserID string) (*ExtendedUserViewDTO, error) {
	u, err := s.Users.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("user")
	}

	view, err := toUserViewDTO(ctx, s.Storage, u.View())
	if err != nil {
		return nil, err
	}
	followsYou, err := s.Follows.CheckFollow(ctx, otherUserID, viewerID)
	if err != nil {
		return nil, err
	}
	following, err := s.Follows.CheckFollow(ctx, viewerID, otherUserID)
	if err != nil {
		return nil, err
	}
	return &ExtendedUserViewDTO{
		UserViewDTO: view,
		IsPrivate:   u.IsPrivate,
		FollowsYou:  followsYou,
		Following:   following,
	}, nil
}

// GetRecommendations suggests users followed by the users the caller follows.
func (s *UserService) GetRecommendations(ctx context.Context, userID string, p pagination.Offset) ([]UserViewDTO, error) {
	users, err := s.Users.GetRecommendedPaginated(ctx, userID, s.Pages.offset(p))
	if err != nil {
		return nil, err
	}
	return toUserViewDTOs(ctx, s.Storage, users)
}

func (s *UserService) GetUsersByUsername(ctx context.Context, username string, p pagination.Cursor) ([]UserViewDTO, error) {
	users, err := s.Users.GetByUsernamePaginated(ctx, username, s.Pages.cursor(p))
	if err != nil {
		return nil, err
	}
	return toUserViewDTOs(ctx, s.Storage, users)
}

// SearchUsers queries the Elasticsearch index. Results may lag the store.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return searchUsers(ctx, s.ES, s.ESUsersIndex, q, size)
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	err := s.Users.Delete(ctx, userID)
	if err == repository.ErrNotFound {
		return apperror.NotFound("user")
	}
	return err
}

func (s *UserService) SetPrivate(ctx context.Context, userID string, private bool) error {
	if err := s.Users.SetPrivate(ctx, userID, private); err != nil {
		if err == repository.ErrNotFound {
			return apperror.NotFound("user")
		}
		return err
	}
	s.reindex(ctx, userID)
	return nil
}

// UpdateProfilePicture stores the deterministic key profile/{id}.{ext} and
// returns a signed PUT URL the client uploads to.
func (s *UserService) UpdateProfilePicture(ctx context.Context, userID, extension string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	if !allowedExtensions[ext] {
		return "", apperror.UnsupportedMedia("extension must be one of png, jpg, jpeg")
	}
	key, err := s.Users.SetProfilePicture(ctx, userID, "profile/"+userID+"."+ext)
	if err != nil {
		if err == repository.ErrNotFound {
			return "", apperror.NotFound("user")
		}
		return "", err
	}
	return s.Storage.SignedPutURL(ctx, key)
}

func (s *UserService) reindex(ctx context.Context, userID string) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return
	}
	indexUser(ctx, s.ES, s.ESUsersIndex, s.Logger, u)
}
