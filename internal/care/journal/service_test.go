// Copyright (c) 2026 Niramaya. All rights reserved.

package journal_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/care/journal"
	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/pkg/pagination"
)

// memoryRepository is a minimal in-memory Repository for service tests.
type memoryRepository struct {
	entries map[string]*journal.Entry
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{entries: make(map[string]*journal.Entry)}
}

func (repo *memoryRepository) Create(_ context.Context, entry *journal.Entry) error {
	copied := *entry
	repo.entries[entry.ID] = &copied
	return nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*journal.Entry, error) {
	entry, ok := repo.entries[id]
	if !ok || entry.DeletedAt != nil {
		return nil, apperr.NotFound("journal entry")
	}
	copied := *entry
	return &copied, nil
}

func (repo *memoryRepository) ListByUser(_ context.Context, userID string, tags []string, _ pagination.Params) ([]*journal.Entry, int, error) {
	result := make([]*journal.Entry, 0)
	for _, entry := range repo.entries {
		if entry.UserID == userID && entry.DeletedAt == nil && hasAllTags(entry.Tags, tags) {
			result = append(result, entry)
		}
	}
	return result, len(result), nil
}

func hasAllTags(entryTags, wanted []string) bool {
	for _, tag := range wanted {
		found := false
		for _, have := range entryTags {
			if have == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (repo *memoryRepository) ListSharedByUser(_ context.Context, userID string, _ pagination.Params) ([]*journal.Entry, int, error) {
	result := make([]*journal.Entry, 0)
	for _, entry := range repo.entries {
		if entry.UserID == userID && entry.SharedWithProvider && entry.DeletedAt == nil {
			result = append(result, entry)
		}
	}
	return result, len(result), nil
}

func (repo *memoryRepository) Update(_ context.Context, entry *journal.Entry) error {
	copied := *entry
	repo.entries[entry.ID] = &copied
	return nil
}

func (repo *memoryRepository) SoftDelete(_ context.Context, id string) error {
	delete(repo.entries, id)
	return nil
}

func newService(repo journal.Repository) *journal.Service {
	return journal.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CreateNormalizesTags verifies tags are trimmed, lowercased, and
deduplicated while preserving first-seen order.
*/
func TestService_CreateNormalizesTags(t *testing.T) {
	service := newService(newMemoryRepository())

	entry, err := service.Create(context.Background(), "user-1", journal.EntryInput{
		Title:   "Morning pages",
		Content: "Slept well.",
		Tags:    []string{" Sleep ", "gratitude", "SLEEP", "", "anxiety"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"sleep", "gratitude", "anxiety"}, entry.Tags)
}

/*
TestService_GetHidesForeignEntries verifies a wrong-owner read is
indistinguishable from a missing entry.
*/
func TestService_GetHidesForeignEntries(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	entry, err := service.Create(context.Background(), "user-1", journal.EntryInput{
		Title:   "Private",
		Content: "Only mine.",
	})
	require.NoError(t, err)

	// 1. Owner reads fine
	_, err = service.Get(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)

	// 2. Anyone else sees NotFound, not Forbidden
	_, err = service.Get(context.Background(), "user-2", entry.ID)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_ValidationRejectsEmptyTitle verifies boundary validation.
*/
func TestService_ValidationRejectsEmptyTitle(t *testing.T) {
	service := newService(newMemoryRepository())

	_, err := service.Create(context.Background(), "user-1", journal.EntryInput{
		Title:   "",
		Content: "Body without a title.",
	})

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestService_ListFiltersByTag verifies the tag filter narrows the listing and
that requested tags are normalized before matching.
*/
func TestService_ListFiltersByTag(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	tagged, err := service.Create(ctx, "user-1", journal.EntryInput{
		Title: "Rough night", Content: "x", Tags: []string{"sleep", "anxiety"},
	})
	require.NoError(t, err)

	_, err = service.Create(ctx, "user-1", journal.EntryInput{
		Title: "Walk", Content: "y", Tags: []string{"exercise"},
	})
	require.NoError(t, err)

	// 1. Unfiltered listing returns both
	_, total, err := service.List(ctx, "user-1", nil, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// 2. A filter in the wrong case still matches the stored form
	entries, total, err := service.List(ctx, "user-1", []string{" Sleep "}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, tagged.ID, entries[0].ID)
}

/*
TestService_ListSharedFiltersPrivate verifies only opted-in entries are
visible through the provider-facing listing.
*/
func TestService_ListSharedFiltersPrivate(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, "client-1", journal.EntryInput{
		Title: "Private", Content: "x",
	})
	require.NoError(t, err)

	shared, err := service.Create(ctx, "client-1", journal.EntryInput{
		Title: "Shared", Content: "y", SharedWithProvider: true,
	})
	require.NoError(t, err)

	entries, total, err := service.ListShared(ctx, "client-1", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, shared.ID, entries[0].ID)
}
