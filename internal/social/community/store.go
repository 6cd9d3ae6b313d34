// Copyright (c) 2026 Niramaya. All rights reserved.

package community

import (
	"context"

	"github.com/niramaya/api/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, community *Community) error
	FindBySlug(context context.Context, slug string) (*Community, error)
	List(context context.Context, params pagination.Params) ([]*Community, int, error)

	Join(context context.Context, membership *Membership) error
	Leave(context context.Context, communityID, userID string) error
	IsMember(context context.Context, communityID, userID string) (bool, error)

	CreatePost(context context.Context, post *Post) error
	FindPostByID(context context.Context, id string) (*Post, error)
	ListPosts(context context.Context, communityID string, params pagination.Params) ([]*Post, int, error)

	CreateComment(context context.Context, comment *Comment) error
	ListComments(context context.Context, postID string, params pagination.Params) ([]*Comment, int, error)
}
