// Copyright (c) 2026 Niramaya. All rights reserved.

package journal

import (
	"context"
	"log/slog"
	"strings"

	"github.com/niramaya/api/internal/platform/apperr"
	"github.com/niramaya/api/internal/platform/validate"
	"github.com/niramaya/api/pkg/pagination"
	"github.com/niramaya/api/pkg/slice"
	"github.com/niramaya/api/pkg/uuidv7"
)

const maxTags = 10

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

// EntryInput holds the writable fields of a journal entry.
type EntryInput struct {
	Title              string
	Content            string
	Tags               []string
	SharedWithProvider bool
}

func (service *Service) Create(context context.Context, userID string, input EntryInput) (*Entry, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:                 uuidv7.New(),
		UserID:             userID,
		Title:              input.Title,
		Content:            input.Content,
		Tags:               normalizeTags(input.Tags),
		SharedWithProvider: input.SharedWithProvider,
	}

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (service *Service) Get(context context.Context, userID, entryID string) (*Entry, error) {
	entry, err := service.repo.FindByID(context, entryID)
	if err != nil {
		return nil, err
	}

	// Journal entries are private. A wrong-owner read looks identical to a
	// missing entry so entry IDs cannot be probed.
	if entry.UserID != userID {
		return nil, apperr.NotFound("journal entry")
	}

	return entry, nil
}

// List returns the member's entries, optionally narrowed to those carrying
// every requested tag. Requested tags go through the same normalization as
// stored ones so "Sleep" matches an entry tagged "sleep".
func (service *Service) List(context context.Context, userID string, tags []string, params pagination.Params) ([]*Entry, int, error) {
	return service.repo.ListByUser(context, userID, normalizeTags(tags), params)
}

// ListShared returns a client's shared entries for their provider. Link
// verification is the caller's responsibility (see the provider service).
func (service *Service) ListShared(context context.Context, clientID string, params pagination.Params) ([]*Entry, int, error) {
	return service.repo.ListSharedByUser(context, clientID, params)
}

func (service *Service) Update(context context.Context, userID, entryID string, input EntryInput) (*Entry, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry, err := service.Get(context, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Title = input.Title
	entry.Content = input.Content
	entry.Tags = normalizeTags(input.Tags)
	entry.SharedWithProvider = input.SharedWithProvider

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (service *Service) Delete(context context.Context, userID, entryID string) error {
	if _, err := service.Get(context, userID, entryID); err != nil {
		return err
	}
	return service.repo.SoftDelete(context, entryID)
}

func validateInput(input EntryInput) error {
	validator := &validate.Validator{}
	validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("content", input.Content).
		MaxLen("content", input.Content, 50000).
		Custom("tags", len(input.Tags) > maxTags, "Too many tags")

	return validator.Err()
}

// normalizeTags trims, lowercases, and deduplicates while preserving order.
func normalizeTags(tags []string) []string {
	trimmed := slice.Map(tags, func(tag string) string {
		return strings.ToLower(strings.TrimSpace(tag))
	})

	seen := make(map[string]bool, len(trimmed))
	return slice.Filter(trimmed, func(tag string) bool {
		if tag == "" || seen[tag] {
			return false
		}
		seen[tag] = true
		return true
	})
}
