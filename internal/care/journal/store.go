// Copyright (c) 2026 Niramaya. All rights reserved.

package journal

import (
	"context"

	"github.com/niramaya/api/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, entry *Entry) error
	FindByID(context context.Context, id string) (*Entry, error)
	// ListByUser returns the member's own entries, newest first. A non-empty
	// tags slice restricts the listing to entries carrying every given tag.
	ListByUser(context context.Context, userID string, tags []string, params pagination.Params) ([]*Entry, int, error)

	// ListSharedByUser returns only the entries a member opted to share,
	// for consumption by their actively linked provider.
	ListSharedByUser(context context.Context, userID string, params pagination.Params) ([]*Entry, int, error)

	Update(context context.Context, entry *Entry) error
	SoftDelete(context context.Context, id string) error
}
