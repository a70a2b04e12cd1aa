package application

import (
	"context"
	"time"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/pkg/helpers"
)

// DTOs are read-only projections recomputed per request. By the time one
// leaves a service every image field holds a signed URL, never a raw key.

type AuthorDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type PostDTO struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	ParentID  string    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ExtendedPostDTO struct {
	PostDTO
	Author      AuthorDTO `json:"author"`
	QtyLikes    int       `json:"qtyLikes"`
	QtyRetweets int       `json:"qtyRetweets"`
	QtyComments int       `json:"qtyComments"`
}

type UserViewDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type ExtendedUserViewDTO struct {
	UserViewDTO
	IsPrivate  bool `json:"isPrivate"`
	FollowsYou bool `json:"followsYou"`
	Following  bool `json:"following"`
}

type LoggedUserViewDTO struct {
	UserViewDTO
	Email     string        `json:"email"`
	IsPrivate bool          `json:"isPrivate"`
	Following []UserViewDTO `json:"following"`
}

// signedGetURLs resolves each stored key to a read URL, one round-trip per
// image.
func signedGetURLs(ctx context.Context, store helpers.Storage, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return []string{}, nil
	}
	urls := make([]string, len(keys))
	for i, key := range keys {
		u, err := store.SignedGetURL(ctx, key)
		if err != nil {
			return nil, err
		}
		urls[i] = u
	}
	return urls, nil
}

func signedPutURLs(ctx context.Context, store helpers.Storage, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return []string{}, nil
	}
	urls := make([]string, len(keys))
	for i, key := range keys {
		u, err := store.SignedPutURL(ctx, key)
		if err != nil {
			return nil, err
		}
		urls[i] = u
	}
	return urls, nil
}

func toPostDTO(p *entity.Post) PostDTO {
	return PostDTO{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		Images:    p.Images,
		ParentID:  p.ParentID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// toExtendedPostDTO shapes one row, resolving post images and the author's
// profile picture.
func toExtendedPostDTO(ctx context.Context, store helpers.Storage, p *entity.ExtendedPost) (ExtendedPostDTO, error) {
	images, err := signedGetURLs(ctx, store, p.Images)
	if err != nil {
		return ExtendedPostDTO{}, err
	}
	author := AuthorDTO{ID: p.Author.ID, Name: p.Author.Name, Username: p.Author.Username}
	if p.Author.ProfilePicture != "" {
		url, err := store.SignedGetURL(ctx, p.Author.ProfilePicture)
		if err != nil {
			return ExtendedPostDTO{}, err
		}
		author.ProfilePicture = url
	}
	dto := ExtendedPostDTO{
		PostDTO:     toPostDTO(&p.Post),
		Author:      author,
		QtyLikes:    p.QtyLikes,
		QtyRetweets: p.QtyRetweets,
		QtyComments: p.QtyComments,
	}
	dto.Images = images
	return dto, nil
}

func toExtendedPostDTOs(ctx context.Context, store helpers.Storage, posts []entity.ExtendedPost) ([]ExtendedPostDTO, error) {
	out := make([]ExtendedPostDTO, 0, len(posts))
	for i := range posts {
		dto, err := toExtendedPostDTO(ctx, store, &posts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func toUserViewDTO(ctx context.Context, store helpers.Storage, v entity.UserView) (UserViewDTO, error) {
	dto := UserViewDTO{ID: v.ID, Name: v.Name, Username: v.Username}
	if v.ProfilePicture != "" {
		url, err := store.SignedGetURL(ctx, v.ProfilePicture)
		if err != nil {
			return UserViewDTO{}, err
		}
		dto.ProfilePicture = url
	}
	return dto, nil
}

func toUserViewDTOs(ctx context.Context, store helpers.Storage, views []entity.UserView) ([]UserViewDTO, error) {
	out := make([]UserViewDTO, 0, len(views))
	for _, v := range views {
		dto, err := toUserViewDTO(ctx, store, v)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}
