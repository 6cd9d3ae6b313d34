package admin

import (
	"context"

	"github.com/niramaya/api/pkg/pagination"
)

type Repository interface {
	CountAccountsByRole(context context.Context, role string) (int, error)
	CountActiveSessions(context context.Context) (int, error)
	ListAccounts(context context.Context, params pagination.Params) ([]*Account, int, error)
}
