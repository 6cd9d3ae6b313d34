package admin

import (
	"context"

	"github.com/niramaya/api/internal/auth"
	"github.com/niramaya/api/pkg/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) Stats(context context.Context) (*Stats, error) {
	users, err := service.repo.CountAccountsByRole(context, string(auth.RoleUser))
	if err != nil {
		return nil, err
	}

	providers, err := service.repo.CountAccountsByRole(context, string(auth.RoleProvider))
	if err != nil {
		return nil, err
	}

	sessions, err := service.repo.CountActiveSessions(context)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:     users,
		TotalProviders: providers,
		ActiveSessions: sessions,
	}, nil
}

func (service *Service) Accounts(context context.Context, params pagination.Params) ([]*Account, int, error) {
	return service.repo.ListAccounts(context, params)
}
