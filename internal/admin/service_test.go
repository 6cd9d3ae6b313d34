package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/admin"
	"github.com/niramaya/api/pkg/pagination"
)

// memoryRepository is a minimal in-memory Repository for service tests.
type memoryRepository struct {
	accounts []*admin.Account
	sessions int
}

func (repo *memoryRepository) CountAccountsByRole(_ context.Context, role string) (int, error) {
	count := 0
	for _, account := range repo.accounts {
		if account.Role == role {
			count++
		}
	}
	return count, nil
}

func (repo *memoryRepository) CountActiveSessions(_ context.Context) (int, error) {
	return repo.sessions, nil
}

func (repo *memoryRepository) ListAccounts(_ context.Context, params pagination.Params) ([]*admin.Account, int, error) {
	total := len(repo.accounts)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return repo.accounts[start:end], total, nil
}

func seededRepository(count int) *memoryRepository {
	repo := &memoryRepository{sessions: 2}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for index := 0; index < count; index++ {
		role := "user"
		if index%5 == 0 {
			role = "provider"
		}
		repo.accounts = append(repo.accounts, &admin.Account{
			ID:          string(rune('a' + index)),
			Email:       "member@example.com",
			DisplayName: "Member",
			Role:        role,
			CreatedAt:   base.Add(time.Duration(index) * time.Hour),
		})
	}
	return repo
}

/*
TestService_Stats verifies the usage snapshot composes the per-role counts
and the live session count.
*/
func TestService_Stats(t *testing.T) {
	service := admin.NewService(seededRepository(10))

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalProviders)
	assert.Equal(t, 2, stats.ActiveSessions)
}

/*
TestService_Accounts verifies the operator listing pages through every
member with the full record count in the metadata.
*/
func TestService_Accounts(t *testing.T) {
	service := admin.NewService(seededRepository(7))

	// 1. First page carries the overall total
	page, total, err := service.Accounts(context.Background(), pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, page, 5)

	// 2. Last page holds the remainder
	page, total, err = service.Accounts(context.Background(), pagination.Params{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, page, 2)
}
