// Copyright (c) 2026 Niramaya. All rights reserved.

package community_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/internal/social/community"
	"github.com/niramaya/api/pkg/pagination"
)

// memoryRepository is a minimal in-memory Repository for service tests.
type memoryRepository struct {
	communities map[string]*community.Community
	members     map[string]map[string]bool
	posts       map[string]*community.Post
	comments    map[string][]*community.Comment
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		communities: make(map[string]*community.Community),
		members:     make(map[string]map[string]bool),
		posts:       make(map[string]*community.Post),
		comments:    make(map[string][]*community.Comment),
	}
}

func (repo *memoryRepository) Create(_ context.Context, created *community.Community) error {
	copied := *created
	repo.communities[created.ID] = &copied
	return nil
}

func (repo *memoryRepository) FindBySlug(_ context.Context, slug string) (*community.Community, error) {
	for _, found := range repo.communities {
		if found.Slug == slug {
			copied := *found
			copied.MemberCount = len(repo.members[found.ID])
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("community")
}

func (repo *memoryRepository) List(_ context.Context, _ pagination.Params) ([]*community.Community, int, error) {
	result := make([]*community.Community, 0)
	for _, found := range repo.communities {
		result = append(result, found)
	}
	return result, len(result), nil
}

func (repo *memoryRepository) Join(_ context.Context, membership *community.Membership) error {
	if repo.members[membership.CommunityID] == nil {
		repo.members[membership.CommunityID] = make(map[string]bool)
	}
	repo.members[membership.CommunityID][membership.UserID] = true
	return nil
}

func (repo *memoryRepository) Leave(_ context.Context, communityID, userID string) error {
	delete(repo.members[communityID], userID)
	return nil
}

func (repo *memoryRepository) IsMember(_ context.Context, communityID, userID string) (bool, error) {
	return repo.members[communityID][userID], nil
}

func (repo *memoryRepository) CreatePost(_ context.Context, post *community.Post) error {
	copied := *post
	repo.posts[post.ID] = &copied
	return nil
}

func (repo *memoryRepository) FindPostByID(_ context.Context, id string) (*community.Post, error) {
	post, ok := repo.posts[id]
	if !ok {
		return nil, apperr.NotFound("post")
	}
	copied := *post
	return &copied, nil
}

func (repo *memoryRepository) ListPosts(_ context.Context, communityID string, _ pagination.Params) ([]*community.Post, int, error) {
	result := make([]*community.Post, 0)
	for _, post := range repo.posts {
		if post.CommunityID == communityID {
			result = append(result, post)
		}
	}
	return result, len(result), nil
}

func (repo *memoryRepository) CreateComment(_ context.Context, comment *community.Comment) error {
	copied := *comment
	repo.comments[comment.PostID] = append(repo.comments[comment.PostID], &copied)
	return nil
}

func (repo *memoryRepository) ListComments(_ context.Context, postID string, _ pagination.Params) ([]*community.Comment, int, error) {
	result := repo.comments[postID]
	return result, len(result), nil
}

func newService(repo community.Repository) *community.Service {
	return community.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CreateSlugsNameAndJoinsCreator verifies a new community gets a
URL slug derived from its name and counts the creator as its first member.
*/
func TestService_CreateSlugsNameAndJoinsCreator(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	// 1. Create a community with a name that needs slugging.
	created, err := service.Create(context.Background(), "user-1", community.CreateInput{
		Name:        "Anxiety & Stress Support",
		Description: "A space to talk about anxious days.",
	})
	require.NoError(t, err)
	assert.Equal(t, "anxiety-stress-support", created.Slug)

	// 2. The creator is already a member.
	member, err := repo.IsMember(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, member)
}

/*
TestService_CreatePostRequiresMembership verifies non-members are rejected
with a forbidden error and members can post.
*/
func TestService_CreatePostRequiresMembership(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	created, err := service.Create(context.Background(), "founder", community.CreateInput{Name: "Sleep Club"})
	require.NoError(t, err)

	input := community.PostInput{Title: "First night", Content: "Slept seven hours."}

	// 1. A stranger cannot post.
	_, err = service.CreatePost(context.Background(), created.ID, "stranger", input)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeForbidden, appErr.Code)

	// 2. After joining, the same user can.
	require.NoError(t, service.Join(context.Background(), created.ID, "stranger"))
	post, err := service.CreatePost(context.Background(), created.ID, "stranger", input)
	require.NoError(t, err)
	assert.Equal(t, "stranger", post.AuthorID)
}

/*
TestService_CreateCommentRequiresMembership verifies commenting is gated on
membership of the post's community, not of the comment author's choosing.
*/
func TestService_CreateCommentRequiresMembership(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	created, err := service.Create(context.Background(), "founder", community.CreateInput{Name: "Mindful Mornings"})
	require.NoError(t, err)

	post, err := service.CreatePost(context.Background(), created.ID, "founder", community.PostInput{
		Title:   "Day one",
		Content: "Ten minutes of breathing.",
	})
	require.NoError(t, err)

	// 1. Non-member comment is forbidden.
	_, err = service.CreateComment(context.Background(), post.ID, "outsider", community.CommentInput{Content: "Nice"})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeForbidden, appErr.Code)

	// 2. Member comment lands.
	require.NoError(t, service.Join(context.Background(), created.ID, "outsider"))
	comment, err := service.CreateComment(context.Background(), post.ID, "outsider", community.CommentInput{Content: "Nice"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
}

/*
TestService_JoinIsIdempotent verifies joining twice neither errors nor
duplicates membership.
*/
func TestService_JoinIsIdempotent(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	created, err := service.Create(context.Background(), "founder", community.CreateInput{Name: "Gratitude"})
	require.NoError(t, err)

	require.NoError(t, service.Join(context.Background(), created.ID, "member"))
	require.NoError(t, service.Join(context.Background(), created.ID, "member"))

	found, err := service.GetBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, found.MemberCount)
}

/*
TestService_CreateValidation verifies a community without a name is rejected.
*/
func TestService_CreateValidation(t *testing.T) {
	service := newService(newMemoryRepository())

	_, err := service.Create(context.Background(), "user-1", community.CreateInput{Name: "  "})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
}
