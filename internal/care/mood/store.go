// Copyright (c) 2026 Niramaya. All rights reserved.

package mood

import (
	"context"

	"github.com/niramaya/api/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, checkIn *CheckIn) error
	ListByUser(context context.Context, userID string, params pagination.Params) ([]*CheckIn, int, error)
	Summarize(context context.Context, userID string, days int) (*Summary, error)
}
