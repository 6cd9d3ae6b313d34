// Copyright (c) 2026 Niramaya. All rights reserved.

package provider

import (
	"context"
	"log/slog"

	"github.com/niramaya/api/internal/platform/apperr"
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

// RequestLink opens a pending link from a provider to a client. The client
// must accept before any data becomes visible.
func (service *Service) RequestLink(context context.Context, providerID, clientID string) (*Link, error) {
	if providerID == clientID {
		return nil, apperr.Unprocessable("Cannot link to yourself")
	}

	existing, err := service.repo.FindLinkByPair(context, providerID, clientID)
	if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status != LinkStatusEnded {
		return nil, apperr.Conflict("A link with this client already exists")
	}

	link := &Link{
		ID:         uuidv7.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Status:     LinkStatusPending,
	}

	if err := service.repo.CreateLink(context, link); err != nil {
		return nil, err
	}

	return link, nil
}

// AcceptLink is the client's consent step. Only the named client may accept.
func (service *Service) AcceptLink(context context.Context, clientID, linkID string) (*Link, error) {
	link, err := service.repo.FindLinkByID(context, linkID)
	if err != nil {
		return nil, err
	}

	if link.ClientID != clientID {
		return nil, apperr.NotFound("link")
	}
	if link.Status != LinkStatusPending {
		return nil, apperr.Unprocessable("Link is not pending")
	}

	if err := service.repo.UpdateStatus(context, link.ID, LinkStatusActive); err != nil {
		return nil, err
	}

	link.Status = LinkStatusActive
	return link, nil
}

// EndLink terminates the relationship. Either party may end it at any time.
func (service *Service) EndLink(context context.Context, callerID, linkID string) error {
	link, err := service.repo.FindLinkByID(context, linkID)
	if err != nil {
		return err
	}

	if link.ProviderID != callerID && link.ClientID != callerID {
		return apperr.NotFound("link")
	}
	if link.Status == LinkStatusEnded {
		return nil
	}

	return service.repo.UpdateStatus(context, link.ID, LinkStatusEnded)
}

// ListClients returns the provider's active links.
func (service *Service) ListClients(context context.Context, providerID string) ([]*Link, error) {
	return service.repo.ListLinksByProvider(context, providerID, LinkStatusActive)
}

// ListPending returns the provider's not-yet-accepted requests.
func (service *Service) ListPending(context context.Context, providerID string) ([]*Link, error) {
	return service.repo.ListLinksByProvider(context, providerID, LinkStatusPending)
}

// ListLinksForClient returns every link involving the client, any status.
func (service *Service) ListLinksForClient(context context.Context, clientID string) ([]*Link, error) {
	return service.repo.ListLinksByClient(context, clientID)
}

// VerifyActiveLink confirms the provider may see the client's shared data.
// Failures are reported as NotFound so client IDs cannot be probed.
func (service *Service) VerifyActiveLink(context context.Context, providerID, clientID string) error {
	link, err := service.repo.FindLinkByPair(context, providerID, clientID)
	if err != nil {
		return apperr.NotFound("client")
	}
	if link.Status != LinkStatusActive {
		return apperr.NotFound("client")
	}
	return nil
}
