// Copyright (c) 2026 Niramaya. All rights reserved.

package community

import (
	"context"
	"log/slog"

	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/internal/platform/validate"
	"github.com/niramaya/api/pkg/pagination"
	"github.com/niramaya/api/pkg/slug"
	"github.com/niramaya/api/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the fields for a new community.
type CreateInput struct {
	Name        string
	Description string
	Category    string
}

func (service *Service) Create(context context.Context, creatorID string, input CreateInput) (*Community, error) {
	validator := &validate.Validator{}
	validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, 100).
		MaxLen("description", input.Description, 2000)

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	community := &Community{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		Category:    input.Category,
		CreatedBy:   creatorID,
	}

	if err := service.repo.Create(context, community); err != nil {
		return nil, err
	}

	// The creator is the first member.
	if err := service.repo.Join(context, &Membership{
		ID:          uuidv7.New(),
		CommunityID: community.ID,
		UserID:      creatorID,
	}); err != nil {
		service.logger.Warn("community_creator_join_failed",
			slog.String("community_id", community.ID), slog.Any("error", err))
	}

	return community, nil
}

func (service *Service) GetBySlug(context context.Context, communitySlug string) (*Community, error) {
	// A malformed slug can never match a row, so skip the lookup.
	validator := &validate.Validator{}
	if validator.Slug("slug", communitySlug).HasErrors() {
		return nil, apperr.NotFound("community")
	}

	return service.repo.FindBySlug(context, communitySlug)
}

func (service *Service) List(context context.Context, params pagination.Params) ([]*Community, int, error) {
	return service.repo.List(context, params)
}

func (service *Service) Join(context context.Context, communityID, userID string) error {
	member, err := service.repo.IsMember(context, communityID, userID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}

	return service.repo.Join(context, &Membership{
		ID:          uuidv7.New(),
		CommunityID: communityID,
		UserID:      userID,
	})
}

func (service *Service) Leave(context context.Context, communityID, userID string) error {
	return service.repo.Leave(context, communityID, userID)
}

// PostInput holds the writable post fields.
type PostInput struct {
	Title   string
	Content string
}

// CreatePost requires membership: lurking is open, posting is not.
func (service *Service) CreatePost(context context.Context, communityID, authorID string, input PostInput) (*Post, error) {
	validator := &validate.Validator{}
	validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("content", input.Content).
		MaxLen("content", input.Content, 10000)

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	member, err := service.repo.IsMember(context, communityID, authorID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperr.Forbidden("Join the community before posting")
	}

	post := &Post{
		ID:          uuidv7.New(),
		CommunityID: communityID,
		AuthorID:    authorID,
		Title:       input.Title,
		Content:     input.Content,
	}

	if err := service.repo.CreatePost(context, post); err != nil {
		return nil, err
	}

	return service.repo.FindPostByID(context, post.ID)
}

func (service *Service) ListPosts(context context.Context, communityID string, params pagination.Params) ([]*Post, int, error) {
	return service.repo.ListPosts(context, communityID, params)
}

// CommentInput holds the writable comment fields.
type CommentInput struct {
	Content string
}

func (service *Service) CreateComment(context context.Context, postID, authorID string, input CommentInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.
		Required("content", input.Content).
		MaxLen("content", input.Content, 5000)

	if validator.HasErrors() {
		return nil, validator.Err()
	}

	post, err := service.repo.FindPostByID(context, postID)
	if err != nil {
		return nil, err
	}

	member, err := service.repo.IsMember(context, post.CommunityID, authorID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperr.Forbidden("Join the community before commenting")
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  input.Content,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (service *Service) ListComments(context context.Context, postID string, params pagination.Params) ([]*Comment, int, error) {
	return service.repo.ListComments(context, postID, params)
}
